package coingecko

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Timeout:    5 * time.Second,
		BaseUrl:    srv.URL,
	})
}

func Test_CoinGecko(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/coins/markets", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "ethereum,nifty-league", r.URL.Query().Get("ids"))
		assert.Empty(t, r.Header.Get(apikeyKey))
		w.Write([]byte(`[
			{"id": "ethereum", "symbol": "eth", "current_price": 3412.55},
			{"id": "nifty-league", "symbol": "nftl", "current_price": 0.00213}
		]`))
	})

	prices, err := c.GetPrices(bCtx.Background(), "ethereum", "nifty-league")
	req.NoError(err)
	req.Equal("3412.55", prices["ethereum"].String())
	req.Equal("0.00213", prices["nifty-league"].String())
}

func Test_CoinGeckoMissingMarket(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id": "ethereum", "current_price": 3412.55}]`))
	})

	_, err := c.GetPrices(bCtx.Background(), "ethereum", "nifty-league")
	req.ErrorIs(err, ErrMarketsLen)
}

func Test_CoinGeckoStatus(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.GetPrices(bCtx.Background(), "ethereum")
	req.ErrorIs(err, ErrStatusCodeNotOk)
}
