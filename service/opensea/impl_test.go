package opensea

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
)

const listingsPage = `{
  "listings": [
    {
      "order_hash": "0xabc",
      "chain": "ethereum",
      "price": {"current": {"currency": "ETH", "decimals": 18, "value": "25000000000000000"}},
      "protocol_data": {"parameters": {
        "offer": [{"itemType": 2, "token": "0x986aea67c7d6a15036e18678065eb663fc5be883", "identifierOrCriteria": "1234", "startAmount": "1", "endAmount": "1"}],
        "endTime": "1893456000"
      }}
    }
  ],
  "next": "cursor-2"
}`

const offersPage = `{
  "offers": [
    {
      "order_hash": "0xdef",
      "price": {"currency": "WETH", "decimals": 18, "value": "10000000000000000"},
      "criteria": {"collection": {"slug": "niftydegen"}, "trait": null, "encoded_token_ids": "*"},
      "protocol_data": {"parameters": {"endTime": "1893456000"}}
    },
    {
      "order_hash": "0x123",
      "price": {"currency": "WETH", "decimals": 18, "value": "20000000000000000"},
      "criteria": {"collection": {"slug": "niftydegen"}, "trait": {"type": "Background", "value": "Gold"}},
      "protocol_data": {"parameters": {"endTime": "1893456000"}}
    }
  ]
}`

func newTestClient(t *testing.T, h http.HandlerFunc, rateLimit float64) Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&ClientCfg{
		HttpClient: http.Client{},
		Timeout:    5 * time.Second,
		Apikey:     "api_key",
		BaseUrl:    srv.URL,
		RateLimit:  rateLimit,
	})
}

func TestGetListings(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api_key", r.Header.Get("X-API-KEY"))
		assert.Equal(t, "/listings/collection/niftydegen/all", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		assert.Equal(t, "cursor-1", r.URL.Query().Get("next"))
		w.Write([]byte(listingsPage))
	}, 0)

	resp, err := c.GetListings(bCtx.Background(), "niftydegen", "cursor-1")
	req.NoError(err)
	req.Equal("cursor-2", resp.Next)
	req.Len(resp.Listings, 1)

	o := resp.Listings[0]
	req.Equal("1234", o.ProtocolData.Parameters.Offer[0].IdentifierOrCriteria)
	p, err := o.Price.Amount().Decimal()
	req.NoError(err)
	req.Equal("0.025", p.String())
}

func TestGetListingsFirstPageHasNoCursor(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.URL.Query()["next"]
		assert.False(t, ok)
		w.Write([]byte(`{"listings": []}`))
	}, 0)

	resp, err := c.GetListings(bCtx.Background(), "niftydegen", "")
	req.NoError(err)
	req.Empty(resp.Next)
}

func TestGetCollectionOffers(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/offers/collection/niftydegen", r.URL.Path)
		w.Write([]byte(offersPage))
	}, 0)

	resp, err := c.GetCollectionOffers(bCtx.Background(), "niftydegen", "")
	req.NoError(err)
	req.Len(resp.Offers, 2)

	first := resp.Offers[0]
	req.Nil(first.Criteria.Trait)
	req.Equal(EncodedTokenIdsAll, *first.Criteria.EncodedTokenIds)
	p, err := first.Price.Amount().Decimal()
	req.NoError(err)
	req.Equal("0.01", p.String())
	end, err := first.ProtocolData.Parameters.EndTimeAt()
	req.NoError(err)
	req.Equal(int64(1893456000), end.Unix())

	req.NotNil(resp.Offers[1].Criteria.Trait)
	req.Equal("Gold", resp.Offers[1].Criteria.Trait.Value)
}

func TestStatusNotOk(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, 0)

	_, err := c.GetListings(bCtx.Background(), "niftydegen", "")
	req.ErrorIs(err, ErrStatusCodeNotOk)
}

func TestBadJson(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"offers": [`))
	}, 0)

	_, err := c.GetCollectionOffers(bCtx.Background(), "niftydegen", "")
	req.Error(err)
}

func TestRateLimit(t *testing.T) {
	req := require.New(t)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"listings": []}`))
	}, 20)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.GetListings(bCtx.Background(), "niftydegen", "")
		req.NoError(err)
	}
	// burst of 1 then 50ms per request
	req.GreaterOrEqual(time.Since(start), 90*time.Millisecond)
}

func TestPriceDecimal(t *testing.T) {
	req := require.New(t)
	_, err := Price{Value: "abc", Decimals: 18}.Decimal()
	req.ErrorIs(err, ErrParsePrice)
	_, err = Parameters{EndTime: ""}.EndTimeAt()
	req.ErrorIs(err, ErrParseEndTime)
}
