package dashboard

import (
	"github.com/google/uuid"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain/enrichment"
)

// UseCase runs the enrichment pipeline for the dashboard, either blocking or
// as tracked background runs
type UseCase interface {
	Variants() []string
	DefaultVariant() string
	// Run blocks until the run finished. A Failed result comes with its error.
	Run(ctx ctx.Ctx, variant string) (*enrichment.Result, error)
	// Start schedules a run and returns it in the Pending state
	Start(ctx ctx.Ctx, variant string) (*enrichment.Result, error)
	// Get returns a started run, domain.ErrNotFound once expired or unknown
	Get(ctx ctx.Ctx, runId uuid.UUID) (*enrichment.Result, error)
}
