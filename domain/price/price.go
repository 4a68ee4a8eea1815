package price

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/base/ctx"
)

// FiatRates is one usd price snapshot shared by every row of a run
type FiatRates struct {
	NativeUsd    decimal.Decimal `json:"nativeUsd"`
	ClaimableUsd decimal.Decimal `json:"claimableUsd"`
	Provider     string          `json:"provider"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// Valid reports whether both prices are usable for scoring
func (r *FiatRates) Valid() bool {
	return r != nil && r.NativeUsd.IsPositive() && r.ClaimableUsd.IsPositive()
}

// Source returns a snapshot or an error wrapping domain.ErrPriceUnavailable
type Source interface {
	Name() string
	Snapshot(ctx ctx.Ctx) (*FiatRates, error)
}
