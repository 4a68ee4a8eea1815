package opensea

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrParsePrice      = errors.New("parse opensea price error")
	ErrParseEndTime    = errors.New("parse opensea end time error")
)

// EncodedTokenIdsAll is the token criteria of an offer valid for any token
const EncodedTokenIdsAll = "*"

type Client interface {
	// GetListings returns one page of active listings of a collection, next is "" for the first page
	GetListings(ctx bCtx.Ctx, slug string, next string) (*ListingsResp, error)
	// GetCollectionOffers returns one page of collection offers, next is "" for the first page
	GetCollectionOffers(ctx bCtx.Ctx, slug string, next string) (*OffersResp, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Apikey     string
	// BaseUrl defaults to the public v2 api
	BaseUrl string
	// RateLimit is the max requests per second, 0 disables limiting
	RateLimit float64
}

type ListingsResp struct {
	Listings []Order `json:"listings"`
	Next     string  `json:"next"`
}

type OffersResp struct {
	Offers []Order `json:"offers"`
	Next   string  `json:"next"`
}

// Order is a seaport order as returned by the listings and offers endpoints
type Order struct {
	OrderHash    string       `json:"order_hash"`
	Chain        string       `json:"chain"`
	Price        OrderPrice   `json:"price"`
	Criteria     *Criteria    `json:"criteria"`
	ProtocolData ProtocolData `json:"protocol_data"`
}

// OrderPrice accepts both the listing shape {"current": {...}} and the offer shape {...}
type OrderPrice struct {
	Current *Price `json:"current"`
	Price
}

func (p OrderPrice) Amount() Price {
	if p.Current != nil {
		return *p.Current
	}
	return p.Price
}

type Price struct {
	Currency string `json:"currency"`
	Decimals int32  `json:"decimals"`
	Value    string `json:"value"`
}

// Decimal scales the raw integer value by decimals
func (p Price) Decimal() (decimal.Decimal, error) {
	n, ok := new(big.Int).SetString(p.Value, 10)
	if !ok {
		return decimal.Zero, ErrParsePrice
	}
	return decimal.NewFromBigInt(n, -p.Decimals), nil
}

type Criteria struct {
	Collection struct {
		Slug string `json:"slug"`
	} `json:"collection"`
	Contract struct {
		Address string `json:"address"`
	} `json:"contract"`
	Trait           *Trait  `json:"trait"`
	EncodedTokenIds *string `json:"encoded_token_ids"`
}

type Trait struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type ProtocolData struct {
	Parameters Parameters `json:"parameters"`
}

type Parameters struct {
	Offer         []Item `json:"offer"`
	Consideration []Item `json:"consideration"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
}

// EndTimeAt parses the epoch seconds end time
func (p Parameters) EndTimeAt() (time.Time, error) {
	sec, err := strconv.ParseInt(p.EndTime, 10, 64)
	if err != nil {
		return time.Time{}, ErrParseEndTime
	}
	return time.Unix(sec, 0), nil
}

type Item struct {
	ItemType             int    `json:"itemType"`
	Token                string `json:"token"`
	IdentifierOrCriteria string `json:"identifierOrCriteria"`
	StartAmount          string `json:"startAmount"`
	EndAmount            string `json:"endAmount"`
}
