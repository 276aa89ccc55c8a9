package types

import "encoding/json"

// PlaceOrderRequest is the body of POST /orders/place.
type PlaceOrderRequest struct {
	MarketID   string  `json:"market_id"`
	Size       float64 `json:"size"`
	Leverage   int     `json:"leverage"`
	EntryPrice float64 `json:"entry_price"`
	Side       string  `json:"side"`
}

// TradeDetails is the server-echoed view of a placed trade. Fields may be
// omitted by the server; callers fall back to locally-known values.
type TradeDetails struct {
	OrderID      string  `json:"order_id,omitempty"`
	Market       string  `json:"market,omitempty"`
	Side         string  `json:"side,omitempty"`
	Size         float64 `json:"size,omitempty"`
	Leverage     float64 `json:"leverage,omitempty"`
	NotionalSize float64 `json:"notional_size,omitempty"`
	MarkPrice    float64 `json:"mark_price,omitempty"`
	OraclePrice  float64 `json:"oracle_price,omitempty"`
	Timestamp    string  `json:"timestamp,omitempty"`
}

// PlaceOrderResponse is the body of a POST /orders/place response.
// HLResponse carries the execution venue's raw response; its nested status
// payload is decoded by the reconcile package.
type PlaceOrderResponse struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	OrderID      string          `json:"order_id,omitempty"`
	TradeDetails *TradeDetails   `json:"trade_details,omitempty"`
	HLResponse   json.RawMessage `json:"hl_response,omitempty"`
}

// CancelOrderRequest is the body of POST /orders/cancel. Success is indicated
// by the HTTP status only.
type CancelOrderRequest struct {
	OrderID string `json:"order_id"`
}
