package listing

import (
	"github.com/shopspring/decimal"
	"github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
)

// Listing is one active sell order of the tracked collection
type Listing struct {
	TokenId       domain.TokenId  `json:"tokenId"`
	PriceInNative decimal.Decimal `json:"priceInNative"`
	Marketplace   string          `json:"marketplace"`
	OpenseaLink   string          `json:"openseaLink"`
	BlurLink      string          `json:"blurLink"`
	ImageUrl      string          `json:"imageUrl"`
}

// Source returns the complete deduplicated listing set of the tracked collection.
// An upstream failure returns an empty slice with an error wrapping
// domain.ErrSourceDegraded. A missing api key is domain.ErrMissingCredential.
type Source interface {
	Name() string
	FetchAll(ctx ctx.Ctx) ([]Listing, error)
}

// Dedup keeps the cheapest listing per token id. The survivors keep the order
// in which their token id was first seen.
func Dedup(listings []Listing) []Listing {
	idx := make(map[domain.TokenId]int, len(listings))
	res := make([]Listing, 0, len(listings))
	for _, l := range listings {
		i, ok := idx[l.TokenId]
		if !ok {
			idx[l.TokenId] = len(res)
			res = append(res, l)
			continue
		}
		if l.PriceInNative.LessThan(res[i].PriceInNative) {
			res[i] = l
		}
	}
	return res
}

// TokenIds returns the token ids of listings in order
func TokenIds(listings []Listing) []domain.TokenId {
	ids := make([]domain.TokenId, len(listings))
	for i, l := range listings {
		ids[i] = l.TokenId
	}
	return ids
}
