package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/domain"
	"github.com/x-xyz/claimscore/domain/enrichment"
	"golang.org/x/xerrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type SortKey = string

const (
	SortKeyPrice        SortKey = "price"
	SortKeyPriceUsd     SortKey = "priceUsd"
	SortKeyClaimable    SortKey = "claimable"
	SortKeyClaimableUsd SortKey = "claimableUsd"
	SortKeyScore        SortKey = "score"
	SortKeyOfferUsd     SortKey = "offerUsd"
	SortKeyTokenId      SortKey = "tokenId"
)

var sortValues = map[SortKey]func(r *enrichment.Row) decimal.Decimal{
	SortKeyPrice:        func(r *enrichment.Row) decimal.Decimal { return r.PriceInNative },
	SortKeyPriceUsd:     func(r *enrichment.Row) decimal.Decimal { return r.ListingFiatValue },
	SortKeyClaimable:    func(r *enrichment.Row) decimal.Decimal { return r.ClaimableQuantity },
	SortKeyClaimableUsd: func(r *enrichment.Row) decimal.Decimal { return r.ClaimableFiatValue },
	SortKeyScore:        func(r *enrichment.Row) decimal.Decimal { return r.Score },
	SortKeyOfferUsd: func(r *enrichment.Row) decimal.Decimal {
		if r.HighestCollectionOfferFiatValue == nil {
			return decimal.Zero
		}
		return *r.HighestCollectionOfferFiatValue
	},
}

// View is the client side table state. Zero values mean no sort, no filter,
// first page of DefaultPageSize rows.
type View struct {
	SortBy       SortKey
	SortDir      string
	PriceMin     decimal.NullDecimal
	PriceMax     decimal.NullDecimal
	ClaimableMin decimal.NullDecimal
	ClaimableMax decimal.NullDecimal
	Page         int
	PageSize     int
}

type Page struct {
	Rows       []enrichment.Row   `json:"rows"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
	Summary    enrichment.Summary `json:"summary"`
}

func (v View) Validate() error {
	if v.SortBy != "" && v.SortBy != SortKeyTokenId {
		if _, ok := sortValues[v.SortBy]; !ok {
			return xerrors.Errorf("invalid sortBy %q: %w", v.SortBy, domain.ErrBadParamInput)
		}
	}
	if _, err := domain.ParseSortDir(v.SortDir); err != nil {
		return err
	}
	if v.Page < 0 {
		return xerrors.Errorf("invalid page %d: %w", v.Page, domain.ErrBadParamInput)
	}
	if v.PageSize < 0 || v.PageSize > MaxPageSize {
		return xerrors.Errorf("invalid pageSize %d: %w", v.PageSize, domain.ErrBadParamInput)
	}
	if v.PriceMin.Valid && v.PriceMax.Valid && v.PriceMin.Decimal.GreaterThan(v.PriceMax.Decimal) {
		return xerrors.Errorf("priceMin above priceMax: %w", domain.ErrBadParamInput)
	}
	if v.ClaimableMin.Valid && v.ClaimableMax.Valid && v.ClaimableMin.Decimal.GreaterThan(v.ClaimableMax.Decimal) {
		return xerrors.Errorf("claimableMin above claimableMax: %w", domain.ErrBadParamInput)
	}
	return nil
}

// Apply filters, sorts and pages rows. rows is never modified. Summary covers
// the unfiltered rows so range controls keep their bounds.
func Apply(rows []enrichment.Row, v View) (*Page, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	dir, _ := domain.ParseSortDir(v.SortDir)

	filtered := make([]enrichment.Row, 0, len(rows))
	for _, r := range rows {
		if inRange(r.PriceInNative, v.PriceMin, v.PriceMax) && inRange(r.ClaimableQuantity, v.ClaimableMin, v.ClaimableMax) {
			filtered = append(filtered, r)
		}
	}

	if v.SortBy != "" {
		sortRows(filtered, v.SortBy, dir)
	}

	size := v.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	start := v.Page * size
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + size
	if end > len(filtered) {
		end = len(filtered)
	}

	return &Page{
		Rows:       filtered[start:end],
		Total:      len(filtered),
		Page:       v.Page,
		PageSize:   size,
		TotalPages: (len(filtered) + size - 1) / size,
		Summary:    enrichment.Summarize(rows),
	}, nil
}

func inRange(x decimal.Decimal, min, max decimal.NullDecimal) bool {
	if min.Valid && x.LessThan(min.Decimal) {
		return false
	}
	if max.Valid && x.GreaterThan(max.Decimal) {
		return false
	}
	return true
}

func sortRows(rows []enrichment.Row, key SortKey, dir domain.SortDir) {
	var less func(a, b *enrichment.Row) bool
	if key == SortKeyTokenId {
		less = func(a, b *enrichment.Row) bool { return a.TokenId.Less(b.TokenId) }
	} else {
		value := sortValues[key]
		less = func(a, b *enrichment.Row) bool { return value(a).LessThan(value(b)) }
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if dir == domain.SortDirAsc {
			return less(&rows[i], &rows[j])
		}
		return less(&rows[j], &rows[i])
	})
}
