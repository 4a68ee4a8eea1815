package reservoir

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	bCtx "github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
	"github.com/x-xyz/claimscore/domain"
)

const (
	apikeyHeader = "x-api-key"
	mainnetApi   = "https://api.reservoir.tools"
	pageLimit    = "1000"

	defaultTimeout = 10 * time.Second
)

func NewClient(cfg *ClientCfg) Client {
	base := cfg.BaseUrl
	if base == "" {
		base = mainnetApi
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return &client{
		client:  cfg.HttpClient,
		timeout: timeout,
		apikey:  cfg.Apikey,
		base:    base,
		limiter: limiter,
	}
}

type client struct {
	client  http.Client
	timeout time.Duration
	apikey  string
	base    string
	limiter *rate.Limiter
}

func (c *client) GetAsks(ctx bCtx.Ctx, contract domain.Address, continuation string) (*OrdersResp, error) {
	params := url.Values{
		"contracts": {contract.ToLowerStr()},
		"status":    {StatusActive},
		"limit":     {pageLimit},
	}
	if continuation != "" {
		params.Set("continuation", continuation)
	}
	return c.getOrders(ctx, fmt.Sprintf("%s/orders/asks/v5?%s", c.base, params.Encode()))
}

func (c *client) GetBids(ctx bCtx.Ctx, collection string, continuation string) (*OrdersResp, error) {
	params := url.Values{
		"collection": {collection},
		"status":     {StatusActive},
		"limit":      {pageLimit},
	}
	if continuation != "" {
		params.Set("continuation", continuation)
	}
	return c.getOrders(ctx, fmt.Sprintf("%s/orders/bids/v6?%s", c.base, params.Encode()))
}

func (c *client) getOrders(ctx bCtx.Ctx, url string) (*OrdersResp, error) {
	data, err := c.get(ctx, url)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.get failed")
		return nil, err
	}
	resp := &OrdersResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) get(ctx bCtx.Ctx, url string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			ctx.WithFields(log.Fields{
				"url": url,
				"err": err,
			}).Error("limiter.Wait failed")
			return nil, err
		}
	}
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
	req.Header.Set(apikeyHeader, c.apikey)
	req.Header.Set("Accept", "application/json")
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
