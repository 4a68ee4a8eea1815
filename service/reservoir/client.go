package reservoir

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/domain"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

const (
	SideSell = "sell"
	SideBuy  = "buy"

	StatusActive = "active"

	CriteriaKindToken      = "token"
	CriteriaKindCollection = "collection"
	CriteriaKindAttribute  = "attribute"
)

type Client interface {
	// GetAsks returns one page of active asks of a contract, continuation is "" for the first page
	GetAsks(ctx bCtx.Ctx, contract domain.Address, continuation string) (*OrdersResp, error)
	// GetBids returns one page of active bids of a collection, continuation is "" for the first page
	GetBids(ctx bCtx.Ctx, collection string, continuation string) (*OrdersResp, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Apikey     string
	// BaseUrl defaults to the ethereum mainnet api
	BaseUrl string
	// RateLimit is the max requests per second, 0 disables limiting
	RateLimit float64
}

type OrdersResp struct {
	Orders       []Order `json:"orders"`
	Continuation *string `json:"continuation"`
}

// Next returns the continuation of the following page, "" when exhausted
func (r *OrdersResp) Next() string {
	if r.Continuation == nil {
		return ""
	}
	return *r.Continuation
}

type Order struct {
	Id         string    `json:"id"`
	Kind       string    `json:"kind"`
	Side       string    `json:"side"`
	Status     string    `json:"status"`
	TokenSetId string    `json:"tokenSetId"`
	Contract   string    `json:"contract"`
	Maker      string    `json:"maker"`
	Price      Price     `json:"price"`
	ValidFrom  int64     `json:"validFrom"`
	ValidUntil int64     `json:"validUntil"`
	Source     Source    `json:"source"`
	Criteria   *Criteria `json:"criteria"`
}

type Price struct {
	Currency struct {
		Contract string `json:"contract"`
		Symbol   string `json:"symbol"`
		Decimals int32  `json:"decimals"`
	} `json:"currency"`
	Amount Amount `json:"amount"`
}

type Amount struct {
	Raw     string              `json:"raw"`
	Decimal decimal.NullDecimal `json:"decimal"`
	Usd     decimal.NullDecimal `json:"usd"`
	Native  decimal.NullDecimal `json:"native"`
}

type Source struct {
	Id     string `json:"id"`
	Domain string `json:"domain"`
	Name   string `json:"name"`
	Url    string `json:"url"`
}

type Criteria struct {
	Kind string `json:"kind"`
	Data struct {
		Token *struct {
			TokenId string `json:"tokenId"`
			Name    string `json:"name"`
			Image   string `json:"image"`
		} `json:"token"`
		Collection *struct {
			Id   string `json:"id"`
			Name string `json:"name"`
		} `json:"collection"`
		Attribute *struct {
			Key   string `json:"key"`
			Value string `json:"value"`
		} `json:"attribute"`
	} `json:"data"`
}

// TokenId reads the token id from the criteria, falling back to the
// token set id "token:<contract>:<id>"
func (o Order) TokenId() (domain.TokenId, bool) {
	if o.Criteria != nil && o.Criteria.Data.Token != nil && o.Criteria.Data.Token.TokenId != "" {
		return domain.TokenId(o.Criteria.Data.Token.TokenId), true
	}
	parts := strings.Split(o.TokenSetId, ":")
	if len(parts) == 3 && parts[0] == "token" && parts[2] != "" {
		return domain.TokenId(parts[2]), true
	}
	return "", false
}

// IsCollectionWide reports a bid on any token of the collection without trait
func (o Order) IsCollectionWide() bool {
	return o.Criteria != nil && o.Criteria.Kind == CriteriaKindCollection
}

func (o Order) HasTrait() bool {
	return o.Criteria != nil && (o.Criteria.Kind == CriteriaKindAttribute || o.Criteria.Data.Attribute != nil)
}

func (o Order) ExpiresAt() time.Time {
	return time.Unix(o.ValidUntil, 0)
}
