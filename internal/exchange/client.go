// Package exchange is the HTTP client for the remote execution service: it
// fetches market groups, places and cancels orders, and polls order status.
// The service is opaque; this package owns transport concerns only.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// Client is an HTTP client for the execution service.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a new execution service client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "scalar-terminal/1.0")

	return &Client{
		http:   rc,
		logger: logger,
	}
}

// FetchMarkets fetches all market groups from GET /markets.
func (c *Client) FetchMarkets(ctx context.Context) ([]types.MarketGroup, error) {
	start := time.Now()

	resp, err := c.http.R().SetContext(ctx).Get("/markets")
	if err != nil {
		RequestsTotal.WithLabelValues("markets", "error").Inc()
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	RequestDuration.WithLabelValues("markets").Observe(time.Since(start).Seconds())

	if resp.StatusCode() != http.StatusOK {
		RequestsTotal.WithLabelValues("markets", "error").Inc()
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode(), resp.Body())
	}

	var groups []types.MarketGroup
	err = json.Unmarshal(resp.Body(), &groups)
	if err != nil {
		RequestsTotal.WithLabelValues("markets", "error").Inc()
		return nil, fmt.Errorf("unmarshal markets: %w", err)
	}

	RequestsTotal.WithLabelValues("markets", "ok").Inc()
	c.logger.Debug("markets-fetched", zap.Int("groups", len(groups)))
	return groups, nil
}

// PlaceOrder submits an order via POST /orders/place. A 2xx response with
// success=false is returned to the caller as a response, not an error; the
// submission flow owns that distinction.
func (c *Client) PlaceOrder(ctx context.Context, req *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error) {
	requestID := uuid.NewString()
	start := time.Now()

	c.logger.Info("placing-order",
		zap.String("request-id", requestID),
		zap.String("market-id", req.MarketID),
		zap.String("side", req.Side),
		zap.Float64("size", req.Size),
		zap.Int("leverage", req.Leverage))

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-ID", requestID).
		SetBody(req).
		Post("/orders/place")
	if err != nil {
		RequestsTotal.WithLabelValues("place", "error").Inc()
		return nil, fmt.Errorf("place order: %w", err)
	}
	RequestDuration.WithLabelValues("place").Observe(time.Since(start).Seconds())

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		RequestsTotal.WithLabelValues("place", "error").Inc()
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode(), resp.Body())
	}

	var placeResp types.PlaceOrderResponse
	err = json.Unmarshal(resp.Body(), &placeResp)
	if err != nil {
		RequestsTotal.WithLabelValues("place", "error").Inc()
		return nil, fmt.Errorf("unmarshal place response: %w", err)
	}

	RequestsTotal.WithLabelValues("place", "ok").Inc()
	return &placeResp, nil
}

// OrderStatus polls the status endpoint and returns the raw payload. The
// response shape is heterogeneous; normalization belongs to the reconcile
// package.
func (c *Client) OrderStatus(ctx context.Context) (json.RawMessage, error) {
	start := time.Now()

	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		RequestsTotal.WithLabelValues("status", "error").Inc()
		return nil, fmt.Errorf("poll order status: %w", err)
	}
	RequestDuration.WithLabelValues("status").Observe(time.Since(start).Seconds())

	if resp.StatusCode() != http.StatusOK {
		RequestsTotal.WithLabelValues("status", "error").Inc()
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode(), resp.Body())
	}

	RequestsTotal.WithLabelValues("status", "ok").Inc()

	body := make(json.RawMessage, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

// CancelOrder requests cancellation via POST /orders/cancel. Success is
// indicated by the HTTP status only; the response body is ignored.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return types.ErrEmptyOrderID
	}

	start := time.Now()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(&types.CancelOrderRequest{OrderID: orderID}).
		Post("/orders/cancel")
	if err != nil {
		RequestsTotal.WithLabelValues("cancel", "error").Inc()
		return fmt.Errorf("cancel order: %w", err)
	}
	RequestDuration.WithLabelValues("cancel").Observe(time.Since(start).Seconds())

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		RequestsTotal.WithLabelValues("cancel", "error").Inc()
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode(), resp.Body())
	}

	RequestsTotal.WithLabelValues("cancel", "ok").Inc()
	c.logger.Info("order-cancel-requested", zap.String("order-id", orderID))
	return nil
}
