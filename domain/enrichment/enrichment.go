package enrichment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain/listing"
)

// Scoring selects the score formula of a run
type Scoring string

const (
	// ScoringListingOnly scores claimable value against the listing price
	ScoringListingOnly Scoring = "listingOnly"
	// ScoringOfferAware adds the best collection offer to the claimable value
	ScoringOfferAware Scoring = "offerAware"
)

func (s Scoring) IsValid() bool {
	return s == ScoringListingOnly || s == ScoringOfferAware
}

type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Row is a listing enriched with its claimable balance and score
type Row struct {
	listing.Listing
	ClaimableQuantity  decimal.Decimal `json:"claimableQuantity"`
	ClaimableFiatValue decimal.Decimal `json:"claimableFiatValue"`
	ListingFiatValue   decimal.Decimal `json:"listingFiatValue"`
	Score              decimal.Decimal `json:"score"`
	// HighestCollectionOfferFiatValue is only set by the offer aware scoring
	HighestCollectionOfferFiatValue *decimal.Decimal `json:"highestCollectionOfferFiatValue,omitempty"`
}

type Summary struct {
	Count          int             `json:"count"`
	TotalClaimable decimal.Decimal `json:"totalClaimable"`
	MaxPrice       decimal.Decimal `json:"maxPrice"`
	MaxClaimable   decimal.Decimal `json:"maxClaimable"`
}

// Result is the outcome of one pipeline run
type Result struct {
	RunId      uuid.UUID  `json:"runId"`
	Variant    string     `json:"variant"`
	State      State      `json:"state"`
	Rows       []Row      `json:"rows,omitempty"`
	Summary    Summary    `json:"summary"`
	Reason     string     `json:"reason,omitempty"`
	Degraded   []string   `json:"degraded,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

// UseCase runs the enrichment pipeline of one variant
type UseCase interface {
	Variants() []string
	// Run blocks until the run is Ready or Failed
	Run(ctx ctx.Ctx, variant string) (*Result, error)
}

// Summarize computes the table metrics over rows
func Summarize(rows []Row) Summary {
	s := Summary{Count: len(rows)}
	for i, r := range rows {
		s.TotalClaimable = s.TotalClaimable.Add(r.ClaimableQuantity)
		if i == 0 || r.PriceInNative.GreaterThan(s.MaxPrice) {
			s.MaxPrice = r.PriceInNative
		}
		if i == 0 || r.ClaimableQuantity.GreaterThan(s.MaxClaimable) {
			s.MaxClaimable = r.ClaimableQuantity
		}
	}
	return s
}
