package usecase

import (
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/base/metrics"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/price"
	"github.com/x-xyz/claimscore/service/alchemy"
	"golang.org/x/xerrors"
)

const (
	ProviderAlchemy   = "alchemy"
	ProviderCoingecko = "coingecko"
)

var met = metrics.New("price")

type AlchemyUseCaseCfg struct {
	Client  alchemy.Client
	Apikey  string
	Network string
	// ClaimableToken and NativeToken are erc20 addresses, NativeToken is the wrapped native token
	ClaimableToken domain.Address
	NativeToken    domain.Address
	Now            func() time.Time
}

type alchemyImpl struct {
	client    alchemy.Client
	apikey    string
	network   string
	claimable domain.Address
	native    domain.Address
	now       func() time.Time
}

func NewAlchemy(cfg *AlchemyUseCaseCfg) price.Source {
	im := &alchemyImpl{
		client:    cfg.Client,
		apikey:    cfg.Apikey,
		network:   cfg.Network,
		claimable: cfg.ClaimableToken,
		native:    cfg.NativeToken,
		now:       cfg.Now,
	}
	if im.network == "" {
		im.network = alchemy.NetworkEthMainnet
	}
	if im.now == nil {
		im.now = time.Now
	}
	return im
}

func (im *alchemyImpl) Name() string {
	return ProviderAlchemy
}

func (im *alchemyImpl) Snapshot(c ctx.Ctx) (*price.FiatRates, error) {
	if im.apikey == "" {
		return nil, xerrors.Errorf("alchemy prices: %w", domain.ErrMissingCredential)
	}
	defer met.BumpTime("snapshot.time", "provider", ProviderAlchemy).End()

	resp, err := im.client.GetTokenPricesByAddress(c, []alchemy.TokenAddress{
		{Network: im.network, Address: im.claimable.ToLowerStr()},
		{Network: im.network, Address: im.native.ToLowerStr()},
	})
	if err != nil {
		c.WithField("err", err).Error("client.GetTokenPricesByAddress failed")
		return nil, unavailable(ProviderAlchemy, err)
	}
	if len(resp.Data) != 2 {
		c.WithField("len", len(resp.Data)).Error("unexpected price count")
		return nil, unavailable(ProviderAlchemy, alchemy.ErrPriceMissing)
	}
	claimableUsd, err := resp.Data[0].Usd()
	if err != nil {
		c.WithFields(log.Fields{
			"token": im.claimable,
			"err":   err,
		}).Error("Usd failed")
		return nil, unavailable(ProviderAlchemy, err)
	}
	nativeUsd, err := resp.Data[1].Usd()
	if err != nil {
		c.WithFields(log.Fields{
			"token": im.native,
			"err":   err,
		}).Error("Usd failed")
		return nil, unavailable(ProviderAlchemy, err)
	}

	rates := &price.FiatRates{
		NativeUsd:    nativeUsd,
		ClaimableUsd: claimableUsd,
		Provider:     ProviderAlchemy,
		FetchedAt:    im.now(),
	}
	if !rates.Valid() {
		return nil, unavailable(ProviderAlchemy, errNonPositive)
	}
	return rates, nil
}

func unavailable(provider string, err error) error {
	met.BumpSum("unavailable", 1, "provider", provider)
	return xerrors.Errorf("%s prices: %v: %w", provider, err, domain.ErrPriceUnavailable)
}
