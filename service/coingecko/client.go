package coingecko

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrMarketsLen      = errors.New("len(markets) != len(ids)")
)

type Client interface {
	// GetPrices returns the usd price of every coingecko id (ex: ethereum)
	GetPrices(ctx bCtx.Ctx, ids ...string) (map[string]decimal.Decimal, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	// Apikey is optional, sent as the demo api key header
	Apikey string
	// BaseUrl defaults to the public v3 api
	BaseUrl string
}

type Markets []Market

type Market struct {
	Id           string          `json:"id"`
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}
