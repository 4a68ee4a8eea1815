package usecase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/balance"
	mContract "github.com/x-xyz/claimscore/service/chain/contract/mocks"
)

func tokenIndex(id int64) interface{} {
	return mock.MatchedBy(func(v *big.Int) bool { return v.Cmp(big.NewInt(id)) == 0 })
}

func TestReadAllKeepsOrder(t *testing.T) {
	req := require.New(t)
	m := &mContract.ClaimableContract{}
	for _, id := range []int64{1, 2, 4, 5} {
		m.On("Accumulated", mock.Anything, tokenIndex(id)).Return(new(big.Int).Mul(big.NewInt(id), big.NewInt(1e18)), nil)
	}
	m.On("Accumulated", mock.Anything, tokenIndex(3)).Return(nil, errors.New("execution reverted"))

	im := New(&BalanceUseCaseCfg{Contract: m, Workers: 3})
	ids := []domain.TokenId{"5", "3", "x", "1", "4", "2"}
	got := im.ReadAll(ctx.Background(), ids)

	req.Len(got, len(ids))
	for i, id := range ids {
		req.Equal(id, got[i].TokenId)
	}
	req.True(got[0].Ok())
	req.Equal("5000000000000000000", got[0].RawAmount.String())
	req.Equal(balance.StatusFailure, got[1].Status)
	req.Equal("execution reverted", got[1].Reason)
	req.Equal(balance.StatusFailure, got[2].Status)
	req.True(got[3].Ok())
	req.Equal("1000000000000000000", got[3].RawAmount.String())
	req.True(got[5].Ok())
	m.AssertExpectations(t)
}

func TestReadAllEmpty(t *testing.T) {
	m := &mContract.ClaimableContract{}
	got := New(&BalanceUseCaseCfg{Contract: m}).ReadAll(ctx.Background(), nil)
	require.Empty(t, got)
	m.AssertNotCalled(t, "Accumulated", mock.Anything, mock.Anything)
}

func TestReadAllRecoversPanic(t *testing.T) {
	req := require.New(t)
	m := &mContract.ClaimableContract{}
	m.On("Accumulated", mock.Anything, tokenIndex(1)).Return(big.NewInt(7), nil)
	m.On("Accumulated", mock.Anything, tokenIndex(2)).Run(func(mock.Arguments) {
		panic("abi: cannot unmarshal")
	}).Return(nil, nil)

	im := New(&BalanceUseCaseCfg{Contract: m, Workers: 2})
	got := im.ReadAll(ctx.Background(), []domain.TokenId{"1", "2"})

	req.Len(got, 2)
	req.True(got[0].Ok())
	req.Equal("7", got[0].RawAmount.String())
	req.Equal(domain.TokenId("2"), got[1].TokenId)
	req.Equal(balance.StatusFailure, got[1].Status)
	req.Equal("abi: cannot unmarshal", got[1].Reason)
}
