package offer

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain/price"
)

// MinRemainingValidity is how long an offer must still be valid to be kept
const MinRemainingValidity = 6 * time.Hour

// CollectionOffer is a standing bid on any token of the collection
type CollectionOffer struct {
	PriceInNative decimal.Decimal `json:"priceInNative"`
	// PriceInFiat is null when the upstream reports no usd amount
	PriceInFiat decimal.NullDecimal `json:"priceInFiat"`
	SourceName  string              `json:"sourceName"`
	ExpiresAt   time.Time           `json:"expiresAt"`
}

// Candidate is a normalized upstream offer before filtering
type Candidate struct {
	Offer CollectionOffer
	// HasTrait is true when the offer targets a trait subset
	HasTrait bool
	// Wildcard is true when any token of the collection satisfies the offer
	Wildcard bool
}

// Source returns filtered collection offers, best first.
// An upstream failure returns an empty slice with an error wrapping
// domain.ErrSourceDegraded. A missing api key is domain.ErrMissingCredential.
type Source interface {
	Name() string
	FetchAll(ctx ctx.Ctx) ([]CollectionOffer, error)
}

// Filter keeps trait free wildcard offers expiring strictly after now + MinRemainingValidity
func Filter(candidates []Candidate, now time.Time) []CollectionOffer {
	deadline := now.Add(MinRemainingValidity)
	res := []CollectionOffer{}
	for _, c := range candidates {
		if c.HasTrait || !c.Wildcard {
			continue
		}
		if !c.Offer.ExpiresAt.After(deadline) {
			continue
		}
		res = append(res, c.Offer)
	}
	return res
}

// SortByNative orders offers by native price, highest first
func SortByNative(offers []CollectionOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].PriceInNative.GreaterThan(offers[j].PriceInNative)
	})
}

// SortByFiat orders offers by the upstream usd price, highest first. Offers
// without a usd price go last.
func SortByFiat(offers []CollectionOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		a, b := offers[i].PriceInFiat, offers[j].PriceInFiat
		if !a.Valid || !b.Valid {
			return a.Valid && !b.Valid
		}
		return a.Decimal.GreaterThan(b.Decimal)
	})
}

// FiatValue is the upstream usd price, or the native price at the snapshot rate
func FiatValue(o CollectionOffer, rates *price.FiatRates) decimal.Decimal {
	if o.PriceInFiat.Valid {
		return o.PriceInFiat.Decimal
	}
	if rates == nil {
		return decimal.Zero
	}
	return o.PriceInNative.Mul(rates.NativeUsd)
}

// HighestFiatValue is the max fiat value over offers, zero for no offers
func HighestFiatValue(offers []CollectionOffer, rates *price.FiatRates) decimal.Decimal {
	best := decimal.Zero
	for i, o := range offers {
		v := FiatValue(o, rates)
		if i == 0 || v.GreaterThan(best) {
			best = v
		}
	}
	return best
}
