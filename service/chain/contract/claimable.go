package contract

import (
	"math/big"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/x-xyz/claimscore/base/abi"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/service/chain"
)

// ClaimableContract reads the reward token accumulated by an nft
type ClaimableContract interface {
	Accumulated(ctx bCtx.Ctx, tokenIndex *big.Int) (*big.Int, error)
}

type Claimable struct {
	chainService chain.Client
	chainId      int32
	addr         common.Address
	abi          ethabi.ABI
}

func NewClaimable(chainService chain.Client, chainId int32, addr string) *Claimable {
	return &Claimable{
		chainService: chainService,
		chainId:      chainId,
		addr:         common.HexToAddress(addr),
		abi:          baseabi.ClaimableABI,
	}
}

// Accumulated returns the raw amount scaled by 10^18
func (c *Claimable) Accumulated(ctx bCtx.Ctx, tokenIndex *big.Int) (*big.Int, error) {
	method := "accumulated"
	unpacked, err := c.chainService.Call(ctx, c.chainId, c.addr, nil, c.abi, method, tokenIndex)
	if err != nil {
		return nil, err
	}
	return unpacked[0].(*big.Int), nil
}
