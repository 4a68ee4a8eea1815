package coingecko

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	bCtx "github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
)

const (
	api       = "https://api.coingecko.com/api/v3"
	apikeyKey = "x-cg-demo-api-key"

	defaultTimeout = 10 * time.Second
)

func NewClient(cfg *ClientCfg) Client {
	base := cfg.BaseUrl
	if base == "" {
		base = api
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: timeout,
		apikey:  cfg.Apikey,
		base:    base,
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	apikey  string
	base    string
}

func (c *client) GetPrices(ctx bCtx.Ctx, ids ...string) (map[string]decimal.Decimal, error) {
	params := url.Values{
		"vs_currency": {"usd"},
		"ids":         {strings.Join(ids, ",")},
	}
	url := fmt.Sprintf("%s/coins/markets?%s", c.base, params.Encode())
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := Markets{}
	if err := json.Unmarshal(data, &resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	if len(resp) != len(ids) {
		ctx.WithFields(log.Fields{
			"ids":     ids,
			"markets": len(resp),
		}).Error(ErrMarketsLen)
		return nil, ErrMarketsLen
	}
	prices := make(map[string]decimal.Decimal, len(resp))
	for _, m := range resp {
		prices[m.Id] = m.CurrentPrice
	}
	return prices, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("NewRequestWithContext failed")
		return nil, err
	}
	if c.apikey != "" {
		req.Header.Set(apikeyKey, c.apikey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("failed to read body")
		return nil, err
	}
	return body, nil
}
