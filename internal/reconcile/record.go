package reconcile

import (
	"time"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// LocalFill carries the locally-known trade parameters used as fallbacks when
// the server echoes an incomplete trade_details object.
type LocalFill struct {
	Market    string
	Side      string
	Size      float64
	Leverage  int
	MarkPrice float64
}

// BuildRecord assembles the ledger entry for a successful submission.
// Server-reported values take precedence; anything the server omitted falls
// back to the local parameters, with the notional derived as size*leverage.
func BuildRecord(resp *types.PlaceOrderResponse, local LocalFill, now time.Time) types.TradeRecord {
	rec := types.TradeRecord{
		Time:         now.UTC().Format(time.RFC3339),
		Market:       local.Market,
		Side:         local.Side,
		Size:         local.Size,
		Leverage:     local.Leverage,
		NotionalSize: local.Size * float64(local.Leverage),
		MarkPrice:    local.MarkPrice,
		Status:       SubmissionStatus(resp),
	}

	if resp == nil {
		return rec
	}

	rec.OrderID = resp.OrderID

	td := resp.TradeDetails
	if td == nil {
		return rec
	}

	if rec.OrderID == "" && td.OrderID != "" {
		rec.OrderID = td.OrderID
	}
	if td.Market != "" {
		rec.Market = td.Market
	}
	if td.Side != "" {
		rec.Side = td.Side
	}
	if td.Size > 0 {
		rec.Size = td.Size
	}
	if td.Leverage > 0 {
		rec.Leverage = int(td.Leverage)
	}
	if td.NotionalSize > 0 {
		rec.NotionalSize = td.NotionalSize
	} else {
		rec.NotionalSize = rec.Size * float64(rec.Leverage)
	}
	if td.MarkPrice > 0 {
		rec.MarkPrice = td.MarkPrice
	}

	return rec
}
