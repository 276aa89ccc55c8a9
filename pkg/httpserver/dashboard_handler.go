package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/markets"
	"github.com/scalarlabs/scalar-terminal/internal/series"
	"github.com/scalarlabs/scalar-terminal/internal/submit"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// DashboardHandler handles HTTP requests for the trading dashboard.
type DashboardHandler struct {
	markets *markets.CachedClient
	clock   *series.Clock
	ledger  *ledger.Ledger
	flow    *submit.Flow
	logger  *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(
	m *markets.CachedClient,
	clock *series.Clock,
	l *ledger.Ledger,
	flow *submit.Flow,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		markets: m,
		clock:   clock,
		ledger:  l,
		flow:    flow,
		logger:  logger,
	}
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HandleMarkets handles GET /api/markets requests.
func (h *DashboardHandler) HandleMarkets(w http.ResponseWriter, r *http.Request) {
	groups, err := h.markets.Groups(r.Context())
	if err != nil {
		h.logger.Warn("markets-request-failed", zap.Error(err))
		h.writeError(w, "markets unavailable", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, groups)
}

// HandleSeries handles GET /api/series requests. The series is built from the
// primary market group.
func (h *DashboardHandler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	group, err := h.markets.Primary(r.Context())
	if err != nil {
		if errors.Is(err, types.ErrNoMarkets) {
			h.writeError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Warn("series-request-failed", zap.Error(err))
		h.writeError(w, "markets unavailable", http.StatusBadGateway)
		return
	}

	h.writeJSON(w, series.Build(group))
}

// CountdownResponse represents the HTTP response for countdown data.
type CountdownResponse struct {
	ExpiryMs  int64            `json:"expiry_ms"`
	Remaining series.Remaining `json:"remaining"`
	Display   string           `json:"display"`
}

// HandleCountdown handles GET /api/countdown requests.
func (h *DashboardHandler) HandleCountdown(w http.ResponseWriter, r *http.Request) {
	var resp CountdownResponse
	if h.clock != nil {
		rem := h.clock.Remaining()
		resp = CountdownResponse{
			ExpiryMs:  h.clock.ExpiryMs(),
			Remaining: rem,
			Display:   rem.String(),
		}
	} else {
		// No clock means no known expiry; report expired-at-zero.
		rem := series.CountdownAt(0, time.Now().UnixMilli())
		resp = CountdownResponse{Remaining: rem, Display: rem.String()}
	}

	h.writeJSON(w, resp)
}

// HandleTrades handles GET /api/trades requests. Records come back newest
// first.
func (h *DashboardHandler) HandleTrades(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, h.ledger.Records())
}

// PlaceOrderBody is the request body for POST /api/orders.
type PlaceOrderBody struct {
	Size     float64 `json:"size"`
	Leverage int     `json:"leverage"`
	Category string  `json:"category"`
}

// HandlePlaceOrder handles POST /api/orders requests.
func (h *DashboardHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var body PlaceOrderBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	group, err := h.markets.Primary(r.Context())
	if err != nil {
		if errors.Is(err, types.ErrNoMarkets) {
			h.writeError(w, err.Error(), http.StatusNotFound)
			return
		}
		h.writeError(w, "markets unavailable", http.StatusBadGateway)
		return
	}

	form := &submit.EntryForm{
		Size:     body.Size,
		Leverage: body.Leverage,
		Category: body.Category,
	}

	rec, err := h.flow.Submit(r.Context(), form, group)
	if err != nil {
		h.writeError(w, err.Error(), submitStatusCode(err))
		return
	}

	h.writeJSON(w, rec)
}

// OrderActionBody is the request body for cancel and refresh requests.
type OrderActionBody struct {
	OrderID string `json:"order_id"`
}

// HandleCancelOrder handles POST /api/orders/cancel requests.
func (h *DashboardHandler) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	var body OrderActionBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err = h.flow.Cancel(r.Context(), body.OrderID)
	if err != nil {
		h.writeError(w, err.Error(), submitStatusCode(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RefreshResponse represents the HTTP response for a status refresh.
type RefreshResponse struct {
	Updated bool               `json:"updated"`
	Record  *types.TradeRecord `json:"record,omitempty"`
}

// HandleRefreshOrder handles POST /api/orders/refresh requests.
func (h *DashboardHandler) HandleRefreshOrder(w http.ResponseWriter, r *http.Request) {
	var body OrderActionBody
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		h.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.flow.Refresh(r.Context(), body.OrderID)
	if err != nil {
		h.writeError(w, err.Error(), submitStatusCode(err))
		return
	}

	resp := RefreshResponse{Updated: updated}
	if rec, ok := h.ledger.Find(body.OrderID); ok {
		resp.Record = &rec
	}

	h.writeJSON(w, resp)
}

// submitStatusCode maps order lifecycle errors to HTTP status codes.
func submitStatusCode(err error) int {
	switch {
	case errors.Is(err, types.ErrSizeNotPositive),
		errors.Is(err, types.ErrEmptyOrderID):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrOrderNotResting):
		return http.StatusConflict
	case errors.Is(err, types.ErrSubmissionsSuspended):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		h.logger.Error("response-encode-failed", zap.Error(err))
	}
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
	if err != nil {
		h.logger.Error("error-response-encode-failed", zap.Error(err))
	}
}
