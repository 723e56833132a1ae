// Package remote implements ports.Catalog over the catalog service's JSON API.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.trai.ch/cellar/internal/core/domain"
	"go.trai.ch/zerr"
)

// IdempotencyHeader carries the queued operation id on writes so the service
// can discard duplicate replays.
const IdempotencyHeader = "Idempotency-Key"

// maxErrorBody bounds how much of an error response is kept for diagnostics.
const maxErrorBody = 512

// Client talks to the catalog service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for cfg.BaseURL with cfg.Timeout per request.
func New(cfg domain.RemoteConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultRemoteTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListWines fetches GET /wines.
func (c *Client) ListWines(ctx context.Context) ([]domain.Wine, error) {
	var wines []domain.Wine
	if err := c.do(ctx, http.MethodGet, "/wines", nil, "", &wines); err != nil {
		return nil, err
	}
	return wines, nil
}

// SetInventory calls PUT /wines/{id}/inventory with the absolute count.
func (c *Client) SetInventory(ctx context.Context, wineID string, inventory int, idempotencyKey string) error {
	body := map[string]int{"inventory": inventory}
	path := "/wines/" + url.PathEscape(wineID) + "/inventory"
	return c.do(ctx, http.MethodPut, path, body, idempotencyKey, nil)
}

// ListOrders fetches GET /orders.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, "", &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetOrderStatus calls PUT /orders/{id}/status with the absolute status.
func (c *Client) SetOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, idempotencyKey string) error {
	body := map[string]domain.OrderStatus{"status": status}
	path := "/orders/" + url.PathEscape(orderID) + "/status"
	return c.do(ctx, http.MethodPut, path, body, idempotencyKey, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, idempotencyKey string, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return zerr.Wrap(err, domain.ErrInvalidPayload.Error())
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return c.fail(err, method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(err, method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		err := zerr.With(domain.ErrRemoteStatus, "status", resp.StatusCode)
		if len(snippet) > 0 {
			err = zerr.With(err, "body", strings.TrimSpace(string(snippet)))
		}
		return c.fail(err, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(zerr.Wrap(err, domain.ErrInvalidPayload.Error()), method, path)
	}
	return nil
}

func (c *Client) fail(err error, method, path string) error {
	wrapped := zerr.Wrap(err, domain.ErrRemoteFailure.Error())
	wrapped = zerr.With(wrapped, "method", method)
	return zerr.With(wrapped, "path", path)
}
