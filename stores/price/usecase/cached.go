package usecase

import (
	"errors"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/price"
	"github.com/x-xyz/claimscore/service/cache"
)

type cachedImpl struct {
	source price.Source
	cache  cache.Service
}

// NewCached serves snapshots of source from cache. Failed snapshots are not cached.
func NewCached(source price.Source, c cache.Service) price.Source {
	return &cachedImpl{
		source: source,
		cache:  c,
	}
}

func (im *cachedImpl) Name() string {
	return im.source.Name()
}

func (im *cachedImpl) Snapshot(c ctx.Ctx) (*price.FiatRates, error) {
	rates := &price.FiatRates{}
	// the load is shared by every run missing the snapshot, it must not end
	// with the request that happened to start it
	load := ctx.Detach(c)
	err := im.cache.GetByFunc(c, im.source.Name(), rates, func() (interface{}, error) {
		return im.source.Snapshot(load)
	})
	if err == nil {
		return rates, nil
	}
	if errors.Is(err, domain.ErrPriceUnavailable) || errors.Is(err, domain.ErrMissingCredential) {
		return nil, err
	}
	// the cache itself failed
	c.WithField("err", err).Warn("cache.GetByFunc failed, bypassing cache")
	return im.source.Snapshot(c)
}
