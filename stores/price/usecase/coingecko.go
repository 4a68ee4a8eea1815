package usecase

import (
	"errors"
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain/price"
	"github.com/x-xyz/claimscore/service/coingecko"
)

var (
	errNonPositive = errors.New("price is not positive")
	errIdMissing   = errors.New("coingecko id missing from response")
)

type CoingeckoUseCaseCfg struct {
	Client coingecko.Client
	// ClaimableId and NativeId are coingecko coin ids, ex: nft-worlds and ethereum
	ClaimableId string
	NativeId    string
	Now         func() time.Time
}

type coingeckoImpl struct {
	client      coingecko.Client
	claimableId string
	nativeId    string
	now         func() time.Time
}

func NewCoingecko(cfg *CoingeckoUseCaseCfg) price.Source {
	im := &coingeckoImpl{
		client:      cfg.Client,
		claimableId: cfg.ClaimableId,
		nativeId:    cfg.NativeId,
		now:         cfg.Now,
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *coingeckoImpl) Name() string {
	return ProviderCoingecko
}

func (im *coingeckoImpl) Snapshot(c ctx.Ctx) (*price.FiatRates, error) {
	defer met.BumpTime("snapshot.time", "provider", ProviderCoingecko).End()

	prices, err := im.client.GetPrices(c, im.claimableId, im.nativeId)
	if err != nil {
		c.WithField("err", err).Error("client.GetPrices failed")
		return nil, unavailable(ProviderCoingecko, err)
	}
	claimableUsd, ok := prices[im.claimableId]
	if !ok {
		c.WithField("id", im.claimableId).Error("price missing")
		return nil, unavailable(ProviderCoingecko, errIdMissing)
	}
	nativeUsd, ok := prices[im.nativeId]
	if !ok {
		c.WithField("id", im.nativeId).Error("price missing")
		return nil, unavailable(ProviderCoingecko, errIdMissing)
	}

	rates := &price.FiatRates{
		NativeUsd:    nativeUsd,
		ClaimableUsd: claimableUsd,
		Provider:     ProviderCoingecko,
		FetchedAt:    im.now(),
	}
	if !rates.Valid() {
		return nil, unavailable(ProviderCoingecko, errNonPositive)
	}
	return rates, nil
}
