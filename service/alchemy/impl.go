package alchemy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	bCtx "github.com/x-xyz/claimscore/base/ctx"
	"github.com/x-xyz/claimscore/base/log"
)

const (
	pricesApi = "https://api.g.alchemy.com/prices/v1"

	defaultTimeout = 10 * time.Second
)

func NewClient(cfg *ClientCfg) Client {
	base := cfg.BaseUrl
	if base == "" {
		base = pricesApi
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

func (c *client) GetTokenPricesByAddress(ctx bCtx.Ctx, tokens []TokenAddress) (*PricesResp, error) {
	url := fmt.Sprintf("%s/%s/tokens/by-address", c.base, c.apikey)
	body, err := json.Marshal(pricesReq{Addresses: tokens})
	if err != nil {
		ctx.WithField("err", err).Error("json.Marshal failed")
		return nil, err
	}
	data, err := c.post(ctx, url, body)
	if err != nil {
		// the api key is part of the path
		ctx.WithFields(log.Fields{
			"url": c.base,
			"err": err,
		}).Error("c.post failed")
		return nil, err
	}
	resp := &PricesResp{}
	if err := json.Unmarshal(data, resp); err != nil {
		ctx.WithField("err", err).Error("json.Unmarshal failed")
		return nil, err
	}
	return resp, nil
}

func (c *client) post(ctx bCtx.Ctx, url string, body []byte) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		ctx.WithField("err", err).Error("NewRequestWithContext failed")
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithField("err", err).Error("client.Do failed")
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		ctx.WithField("statusCode", resp.StatusCode).Error("resp.StatusCode != 200")
		return nil, ErrStatusCodeNotOk
	}
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		ctx.WithField("err", err).Error("failed to read body")
		return nil, err
	}
	return data, nil
}
