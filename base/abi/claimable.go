package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ClaimableABI covers the view accessor of the reward token contract which
// reports the amount accumulated by an nft, scaled by 10^18.
var ClaimableABI abi.ABI

func init() {
	_abi, err := abi.JSON(strings.NewReader(claimableABIJson))
	if err != nil {
		panic("Failed to parse ABI")
	}
	ClaimableABI = _abi
}

var claimableABIJson = `
[
	{
		"inputs":[
			{
				"internalType":"uint256",
				"name":"tokenIndex",
				"type":"uint256"
			}
		],
		"name":"accumulated",
		"outputs":[
			{
				"internalType":"uint256",
				"name":"",
				"type":"uint256"
			}
		],
		"stateMutability":"view",
		"type":"function"
	}
]
`
