package usecase

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/domain/price"
	"github.com/x-xyz/claimscore/service/alchemy"
	mAlchemy "github.com/x-xyz/claimscore/service/alchemy/mocks"
	"github.com/x-xyz/claimscore/service/cache"
	"github.com/x-xyz/claimscore/service/cache/provider/primitive"
	mCoingecko "github.com/x-xyz/claimscore/service/coingecko/mocks"
)

const (
	nftl = domain.Address("0xD5d86FC8d5C0Ea1aC1Ac5Dfab6E529c9967a45E9")
	weth = domain.Address("0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2")
)

var fetchedAt = time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)

type priceSuite struct {
	suite.Suite

	ctx       ctx.Ctx
	alchemy   *mAlchemy.Client
	coingecko *mCoingecko.Client
}

func (s *priceSuite) SetupTest() {
	s.ctx = ctx.Background()
	s.alchemy = &mAlchemy.Client{}
	s.coingecko = &mCoingecko.Client{}
}

func (s *priceSuite) TearDownTest() {
	s.alchemy.AssertExpectations(s.T())
	s.coingecko.AssertExpectations(s.T())
}

func TestPriceSuite(t *testing.T) {
	suite.Run(t, new(priceSuite))
}

func (s *priceSuite) newAlchemy(apikey string) price.Source {
	return NewAlchemy(&AlchemyUseCaseCfg{
		Client:         s.alchemy,
		Apikey:         apikey,
		ClaimableToken: nftl,
		NativeToken:    weth,
		Now:            func() time.Time { return fetchedAt },
	})
}

func usd(v string) alchemy.TokenPrice {
	return alchemy.TokenPrice{Prices: []alchemy.PriceEntry{{Currency: "usd", Value: v}}}
}

var tokens = []alchemy.TokenAddress{
	{Network: alchemy.NetworkEthMainnet, Address: "0xd5d86fc8d5c0ea1ac1ac5dfab6e529c9967a45e9"},
	{Network: alchemy.NetworkEthMainnet, Address: "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2"},
}

func (s *priceSuite) TestAlchemySnapshot() {
	s.alchemy.On("GetTokenPricesByAddress", mock.Anything, tokens).Return(&alchemy.PricesResp{
		Data: []alchemy.TokenPrice{usd("0.0125"), usd("1650.5")},
	}, nil).Once()

	got, err := s.newAlchemy("key").Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal("0.0125", got.ClaimableUsd.String())
	s.Equal("1650.5", got.NativeUsd.String())
	s.Equal(ProviderAlchemy, got.Provider)
	s.Equal(fetchedAt, got.FetchedAt)
}

func (s *priceSuite) TestAlchemyFailures() {
	tests := []struct {
		name string
		resp *alchemy.PricesResp
		err  error
	}{
		{name: "transport", err: alchemy.ErrStatusCodeNotOk},
		{name: "short", resp: &alchemy.PricesResp{Data: []alchemy.TokenPrice{usd("1")}}},
		{name: "missing usd", resp: &alchemy.PricesResp{Data: []alchemy.TokenPrice{{}, usd("1")}}},
		{name: "zero price", resp: &alchemy.PricesResp{Data: []alchemy.TokenPrice{usd("1"), usd("0")}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			m := &mAlchemy.Client{}
			m.On("GetTokenPricesByAddress", mock.Anything, tokens).Return(tt.resp, tt.err).Once()
			im := NewAlchemy(&AlchemyUseCaseCfg{Client: m, Apikey: "key", ClaimableToken: nftl, NativeToken: weth})

			got, err := im.Snapshot(s.ctx)
			s.Nil(got)
			s.True(errors.Is(err, domain.ErrPriceUnavailable))
			m.AssertExpectations(s.T())
		})
	}
}

func (s *priceSuite) TestAlchemyMissingKey() {
	_, err := s.newAlchemy("").Snapshot(s.ctx)
	s.True(errors.Is(err, domain.ErrMissingCredential))
}

func (s *priceSuite) newCoingecko() price.Source {
	return NewCoingecko(&CoingeckoUseCaseCfg{
		Client:      s.coingecko,
		ClaimableId: "nft-worlds",
		NativeId:    "ethereum",
		Now:         func() time.Time { return fetchedAt },
	})
}

func (s *priceSuite) TestCoingeckoSnapshot() {
	s.coingecko.On("GetPrices", mock.Anything, "nft-worlds", "ethereum").Return(map[string]decimal.Decimal{
		"nft-worlds": decimal.RequireFromString("0.02"),
		"ethereum":   decimal.RequireFromString("1600"),
	}, nil).Once()

	got, err := s.newCoingecko().Snapshot(s.ctx)
	s.Require().NoError(err)
	s.Equal("0.02", got.ClaimableUsd.String())
	s.Equal("1600", got.NativeUsd.String())
	s.Equal(ProviderCoingecko, got.Provider)
}

func (s *priceSuite) TestCoingeckoMissingId() {
	s.coingecko.On("GetPrices", mock.Anything, "nft-worlds", "ethereum").Return(map[string]decimal.Decimal{
		"ethereum": decimal.RequireFromString("1600"),
	}, nil).Once()

	_, err := s.newCoingecko().Snapshot(s.ctx)
	s.True(errors.Is(err, domain.ErrPriceUnavailable))
}

func (s *priceSuite) TestCachedSnapshot() {
	s.coingecko.On("GetPrices", mock.Anything, "nft-worlds", "ethereum").Return(nil, errors.New("timeout")).Once()
	s.coingecko.On("GetPrices", mock.Anything, "nft-worlds", "ethereum").Return(map[string]decimal.Decimal{
		"nft-worlds": decimal.RequireFromString("0.02"),
		"ethereum":   decimal.RequireFromString("1600"),
	}, nil).Once()

	im := NewCached(s.newCoingecko(), cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxPriceSnapshot,
		Cache: primitive.NewPrimitive("price_test", 1),
	}))
	s.Equal(ProviderCoingecko, im.Name())

	// failures are not cached
	_, err := im.Snapshot(s.ctx)
	s.True(errors.Is(err, domain.ErrPriceUnavailable))

	first, err := im.Snapshot(s.ctx)
	s.Require().NoError(err)
	second, err := im.Snapshot(s.ctx)
	s.Require().NoError(err)
	s.True(first.NativeUsd.Equal(second.NativeUsd))
	s.True(first.ClaimableUsd.Equal(second.ClaimableUsd))
	s.Equal(first.FetchedAt.Unix(), second.FetchedAt.Unix())
}

func (s *priceSuite) TestCachedSnapshotOutlivesCancelledCaller() {
	var (
		entered = make(chan struct{})
		release = make(chan struct{})
		loadErr error
	)
	s.coingecko.On("GetPrices", mock.Anything, "nft-worlds", "ethereum").Run(func(args mock.Arguments) {
		close(entered)
		<-release
		loadErr = args.Get(0).(ctx.Ctx).Err()
	}).Return(map[string]decimal.Decimal{
		"nft-worlds": decimal.RequireFromString("0.02"),
		"ethereum":   decimal.RequireFromString("1600"),
	}, nil).Once()

	im := NewCached(s.newCoingecko(), cache.New(cache.ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   keys.PfxPriceSnapshot,
		Cache: primitive.NewPrimitive("price_test", 1),
	}))

	first, cancel := ctx.WithCancel(s.ctx)
	wg := sync.WaitGroup{}
	errs := make([]error, 2)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[0] = im.Snapshot(first)
	}()
	<-entered
	cancel()

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, errs[1] = im.Snapshot(s.ctx)
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.NoError(loadErr)
	s.NoError(errs[0])
	s.NoError(errs[1])
}
