package repository

import (
	"time"

	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	hcdomain "github.com/x-xyz/claimscore/domain/healthcheck"
	"github.com/x-xyz/claimscore/domain/keys"
	"github.com/x-xyz/claimscore/service/cache/provider"
	"github.com/x-xyz/claimscore/service/chain"
)

const pingTimeout = 2 * time.Second

type impl struct {
	chain   chain.Client
	chainId int32
	cache   provider.Provider
}

// New creates new healthCheckRepo object representation of HealthCheckRepo interface
func New(
	chain chain.Client,
	chainId int32,
	cache provider.Provider,
) hcdomain.HealthCheckRepo {
	return &impl{
		chain:   chain,
		chainId: chainId,
		cache:   cache,
	}
}

func (im *impl) PingChain(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if _, err := im.chain.BlockNumber(ctx, im.chainId); err != nil {
		context.WithFields(log.Fields{
			"chainId": im.chainId,
			"err":     err,
		}).Error("ping chain error")
		return err
	}
	return nil
}

func (im *impl) PingCache(context ctx.Ctx) error {
	ctx, cancel := ctx.WithTimeout(context, pingTimeout)
	defer cancel()
	if err := im.cache.Set(ctx, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		context.WithField("err", err).Error("test cache set failed")
		return err
	}
	return nil
}
