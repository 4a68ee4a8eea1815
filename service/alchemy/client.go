package alchemy

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
	ErrPriceMissing    = errors.New("usd price missing")
)

const (
	NetworkEthMainnet = "eth-mainnet"
	CurrencyUsd       = "usd"
)

type Client interface {
	// GetTokenPricesByAddress returns one entry per token, in request order
	GetTokenPricesByAddress(ctx bCtx.Ctx, tokens []TokenAddress) (*PricesResp, error)
}

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Apikey     string
	// BaseUrl defaults to the public prices api
	BaseUrl string
}

type TokenAddress struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

type pricesReq struct {
	Addresses []TokenAddress `json:"addresses"`
}

type PricesResp struct {
	Data []TokenPrice `json:"data"`
}

type TokenPrice struct {
	Network string       `json:"network"`
	Address string       `json:"address"`
	Prices  []PriceEntry `json:"prices"`
	Error   interface{}  `json:"error"`
}

type PriceEntry struct {
	Currency      string `json:"currency"`
	Value         string `json:"value"`
	LastUpdatedAt string `json:"lastUpdatedAt"`
}

// Usd returns the usd quote of the token
func (p TokenPrice) Usd() (decimal.Decimal, error) {
	for _, e := range p.Prices {
		if strings.EqualFold(e.Currency, CurrencyUsd) {
			return decimal.NewFromString(e.Value)
		}
	}
	return decimal.Zero, ErrPriceMissing
}
