package types

// OrderStatus is the normalized lifecycle status of a submitted order.
type OrderStatus string

const (
	StatusResting  OrderStatus = "resting"
	StatusFilled   OrderStatus = "filled"
	StatusCanceled OrderStatus = "canceled"
	StatusUnknown  OrderStatus = "unknown"
)

// Valid reports whether s is one of the four normalized statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusResting, StatusFilled, StatusCanceled, StatusUnknown:
		return true
	}
	return false
}

// TradeRecord is one entry in the local trade ledger. OrderID is externally
// assigned and is the reconciliation key, but it is neither guaranteed unique
// nor non-empty: an entry with an empty OrderID can never be matched by a
// refresh or cancel.
type TradeRecord struct {
	OrderID      string      `json:"order_id"`
	Time         string      `json:"time"` // ISO 8601 local submission time
	Market       string      `json:"market"`
	Side         string      `json:"side"` // selected outcome title, not buy/sell
	Size         float64     `json:"size"`
	Leverage     int         `json:"leverage"`
	NotionalSize float64     `json:"notional_size"`
	MarkPrice    float64     `json:"mark_price"`
	Status       OrderStatus `json:"status"`
}
