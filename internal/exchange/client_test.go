package exchange

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second, zap.NewNop())
}

func TestFetchMarkets(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/markets", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": "nobel_peace_2025",
			"title": "Nobel Peace Prize Winner 2025",
			"subtitle": "Announced 10 October",
			"mark_price": 1,
			"expiry": "2025-10-10T00:00:00",
			"markets": [{"title": "Candidate A", "history": [{"t": 1756400000, "p": 0.42}]}]
		}]`))
	})

	groups, err := client.FetchMarkets(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "nobel_peace_2025", groups[0].ID)
	require.Len(t, groups[0].Markets, 1)
	assert.Equal(t, 0.42, groups[0].Markets[0].History[0].P)
}

func TestFetchMarkets_Non200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.FetchMarkets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestPlaceOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/place", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		body, _ := io.ReadAll(r.Body)
		var req types.PlaceOrderRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, 10.0, req.Size)
		assert.Equal(t, 2, req.Leverage)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "Trade placed successfully",
			"order_id": "A1",
			"trade_details": {"market": "X", "side": "YES", "size": 10, "leverage": 2, "notional_size": 20, "mark_price": 5},
			"hl_response": {"response": {"data": {"statuses": [{"resting": {}}]}}}
		}`))
	})

	resp, err := client.PlaceOrder(context.Background(), &types.PlaceOrderRequest{
		MarketID: "nobel_peace_2025",
		Size:     10,
		Leverage: 2,
		Side:     "YES",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "A1", resp.OrderID)
	require.NotNil(t, resp.TradeDetails)
	assert.Equal(t, 20.0, resp.TradeDetails.NotionalSize)
	assert.NotEmpty(t, resp.HLResponse)
}

func TestPlaceOrder_ServerRejection(t *testing.T) {
	// success=false with a 200 status is a response, not a transport error.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "message": "Leverage cannot exceed 3x"}`))
	})

	resp, err := client.PlaceOrder(context.Background(), &types.PlaceOrderRequest{Size: 1, Leverage: 5})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Leverage cannot exceed 3x", resp.Message)
}

func TestOrderStatus_PassesRawPayloadThrough(t *testing.T) {
	payload := `[{"order":{"order":{"oid":42},"status":"open"}}]`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})

	raw, err := client.OrderStatus(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestCancelOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/cancel", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var req types.CancelOrderRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "A1", req.OrderID)

		w.WriteHeader(http.StatusOK)
	})

	err := client.CancelOrder(context.Background(), "A1")
	assert.NoError(t, err)
}

func TestCancelOrder_EmptyID(t *testing.T) {
	client := NewClient("http://unused", time.Second, zap.NewNop())

	err := client.CancelOrder(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrEmptyOrderID)
}

func TestCancelOrder_Non2xx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	err := client.CancelOrder(context.Background(), "A1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
