package contract

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/require"
	baseabi "github.com/x-xyz/claimscore/base/abi"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
	bEthereum "github.com/x-xyz/claimscore/base/ethereum"
	"github.com/x-xyz/claimscore/service/chain"
)

const claimableAddr = "0x3c8D2FCE49906e11e71cB16Fa0fFeB2B16C29638"

// accumulatedCaller answers accumulated(id) with id * 10^18 and reverts for id 13
type accumulatedCaller struct{}

func (accumulatedCaller) BlockNumber(ctx context.Context) (uint64, error) {
	return 1, nil
}

func (accumulatedCaller) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	args, err := baseabi.ClaimableABI.Methods["accumulated"].Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}
	id := args[0].(*big.Int)
	if id.Int64() == 13 {
		return nil, errors.New("execution reverted")
	}
	out := new(big.Int).Mul(id, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	return baseabi.ClaimableABI.Methods["accumulated"].Outputs.Pack(out)
}

func TestClaimable_Accumulated(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	chainService := chain.NewClientWithCallers(map[int32]bEthereum.Caller{1: accumulatedCaller{}}, 4)
	c := NewClaimable(chainService, 1, claimableAddr)

	got, err := c.Accumulated(ctx, big.NewInt(2500))
	req.NoError(err)
	req.Equal("2500000000000000000000", got.String())

	_, err = c.Accumulated(ctx, big.NewInt(13))
	req.Error(err)
}

func TestClaimable_UnsupportedChain(t *testing.T) {
	req := require.New(t)
	chainService := chain.NewClientWithCallers(map[int32]bEthereum.Caller{1: accumulatedCaller{}}, 4)
	c := NewClaimable(chainService, 5, claimableAddr)

	_, err := c.Accumulated(bCtx.Background(), big.NewInt(1))
	req.ErrorIs(err, chain.ErrUnsupportedChain)
}
