package repository

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/claimscore/base/ctx"
	bEthereum "github.com/x-xyz/claimscore/base/ethereum"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/service/cache/provider/primitive"
	"github.com/x-xyz/claimscore/service/chain"
	"github.com/x-xyz/claimscore/stores/healthcheck/usecase"
)

type caller struct {
	err error
}

func (c caller) BlockNumber(ctx context.Context) (uint64, error) {
	return 1, c.err
}

func (c caller) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	return nil, c.err
}

func TestCheck(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	cache := primitive.NewPrimitive("healthcheck_test", 1)
	chainService := chain.NewClientWithCallers(map[int32]bEthereum.Caller{
		1: caller{},
		5: caller{err: errors.New("connection refused")},
	}, 0)

	req.NoError(usecase.New(New(chainService, 1, cache)).Check(c))
	val, _, err := cache.Get(c, keys.RedisKey(keys.PfxHealthCheck, "testset"))
	req.NoError(err)
	req.Equal([]byte("1"), val)

	req.Error(usecase.New(New(chainService, 5, cache)).Check(c))
	req.ErrorIs(usecase.New(New(chainService, 10, cache)).Check(c), chain.ErrUnsupportedChain)
}
