package enrichment

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/balance"
	"github.com/x-xyz/claimscore/domain/listing"
	"github.com/x-xyz/claimscore/domain/offer"
	"github.com/x-xyz/claimscore/domain/price"
	"golang.org/x/xerrors"
)

const ScorePrecision = 2

var hundred = decimal.NewFromInt(100)

// Input is the frozen snapshot one enrichment pass works on
type Input struct {
	Scoring  Scoring
	Listings []listing.Listing
	// Balances are aligned with Listings by position
	Balances []balance.Result
	Offers   []offer.CollectionOffer
	Rates    *price.FiatRates
}

// Enrich joins listings with their balances and scores every row. Rows keep
// the listing order. A zero listing fiat value scores 0 under both formulas.
func Enrich(in Input) ([]Row, error) {
	if !in.Rates.Valid() {
		return nil, domain.ErrPriceUnavailable
	}
	if len(in.Balances) != len(in.Listings) {
		return nil, xerrors.Errorf("%d balances for %d listings: %w", len(in.Balances), len(in.Listings), domain.ErrBalanceMisaligned)
	}

	var bestOffer *decimal.Decimal
	if in.Scoring == ScoringOfferAware {
		v := offer.HighestFiatValue(in.Offers, in.Rates)
		bestOffer = &v
	}

	rows := make([]Row, len(in.Listings))
	for i, l := range in.Listings {
		b := in.Balances[i]
		if b.TokenId != l.TokenId {
			return nil, xerrors.Errorf("position %d: balance of %s for listing %s: %w", i, b.TokenId, l.TokenId, domain.ErrBalanceMisaligned)
		}
		rows[i] = enrichRow(l, b, in.Rates, bestOffer)
	}
	return rows, nil
}

func enrichRow(l listing.Listing, b balance.Result, rates *price.FiatRates, bestOffer *decimal.Decimal) Row {
	row := Row{Listing: l}
	row.ClaimableQuantity = ClaimableQuantity(b)
	row.ClaimableFiatValue = row.ClaimableQuantity.Mul(rates.ClaimableUsd)
	row.ListingFiatValue = l.PriceInNative.Mul(rates.NativeUsd)

	if bestOffer == nil {
		row.Score = score(row.ClaimableFiatValue, row.ListingFiatValue)
		return row
	}

	v := *bestOffer
	row.HighestCollectionOfferFiatValue = &v
	if row.ClaimableQuantity.IsZero() {
		row.Score = decimal.Zero
		return row
	}
	row.Score = score(row.ClaimableFiatValue.Add(v), row.ListingFiatValue)
	return row
}

// ClaimableQuantity is the whole token amount of a balance, 0 for failed reads
func ClaimableQuantity(b balance.Result) decimal.Decimal {
	if !b.Ok() {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(new(big.Int).Quo(b.RawAmount, domain.Big1e18), 0)
}

func score(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	return numerator.Div(denominator).Mul(hundred).Round(ScorePrecision)
}
