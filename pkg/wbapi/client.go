// Package wbapi is a thin client for the Wildberries common API, scoped
// to the box tariff endpoint this pipeline consumes.
package wbapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"tariffsync/pkg/models"
)

// ErrNoData marks a response whose shape did not contain a usable
// warehouse list. Callers treat it as "nothing to write this cycle",
// not as a transport failure.
var ErrNoData = errors.New("wbapi: response contains no warehouse tariff list")

const (
	requestTimeout = 30 * time.Second
	retryMax       = 3
	retryWaitMin   = 1 * time.Second
	retryWaitMax   = 30 * time.Second
)

type Client struct {
	baseURL string
	token   string
	http    *retryablehttp.Client
}

type boxTariffsResponse struct {
	Response struct {
		Data struct {
			DtNextBox     string                   `json:"dtNextBox"`
			DtTillMax     string                   `json:"dtTillMax"`
			WarehouseList []models.WarehouseTariff `json:"warehouseList"`
		} `json:"data"`
	} `json:"response"`
}

// New builds a client with a fixed request timeout and a bounded
// exponential-backoff retry policy. The default retryablehttp policy
// retries connection errors and 5xx responses only, which is safe for
// this idempotent GET.
func New(baseURL, token string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = retryWaitMin
	rc.RetryWaitMax = retryWaitMax
	rc.HTTPClient.Timeout = requestTimeout
	rc.Logger = nil

	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    rc,
	}
}

// BoxTariffs fetches the box tariff list for one calendar date.
func (c *Client) BoxTariffs(ctx context.Context, date time.Time) ([]models.WarehouseTariff, error) {
	u := fmt.Sprintf("%s/api/v1/tariffs/box?%s", c.baseURL,
		url.Values{"date": {date.Format("2006-01-02")}}.Encode())

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build tariff request: %w", err)
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch box tariffs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch box tariffs: unexpected status %d", resp.StatusCode)
	}

	var body boxTariffsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode box tariffs: %w", err)
	}
	if len(body.Response.Data.WarehouseList) == 0 {
		return nil, ErrNoData
	}
	return body.Response.Data.WarehouseList, nil
}
