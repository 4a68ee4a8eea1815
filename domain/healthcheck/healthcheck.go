package healthcheck

import (
	"github.com/x-xyz/claimscore/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	// PingChain reads the latest block of the chain balances are read from
	PingChain(context ctx.Ctx) error
	// PingCache writes a short lived key to the run cache
	PingCache(context ctx.Ctx) error
}
