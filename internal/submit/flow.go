// Package submit drives the order lifecycle: placing orders against the
// execution service, recording them in the ledger, refreshing their status,
// and cancelling resting entries. There is no automatic retry anywhere; every
// action is user-initiated.
package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/internal/circuitbreaker"
	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/notify"
	"github.com/scalarlabs/scalar-terminal/internal/reconcile"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// State is the submission lifecycle phase.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ExchangeClient is the slice of the execution service client the flow needs.
type ExchangeClient interface {
	PlaceOrder(ctx context.Context, req *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error)
	OrderStatus(ctx context.Context) (json.RawMessage, error)
	CancelOrder(ctx context.Context, orderID string) error
}

// Flow owns the order submission lifecycle.
type Flow struct {
	exchange ExchangeClient
	ledger   *ledger.Ledger
	notifier notify.Notifier
	breaker  *circuitbreaker.Breaker
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	state State
}

// NewFlow creates a submission flow in the idle state.
func NewFlow(
	exchange ExchangeClient,
	l *ledger.Ledger,
	notifier notify.Notifier,
	breaker *circuitbreaker.Breaker,
	logger *zap.Logger,
) *Flow {
	return &Flow{
		exchange: exchange,
		ledger:   l,
		notifier: notifier,
		breaker:  breaker,
		logger:   logger,
		now:      time.Now,
		state:    StateIdle,
	}
}

// State returns the current lifecycle phase.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Submit places an order built from the entry form against the given market
// group. The form's size is cleared before the request goes out and restored
// if the submission fails, whatever the failure mode. On success the trade is
// recorded at the head of the ledger and the new record is returned.
func (f *Flow) Submit(ctx context.Context, form *EntryForm, group *types.MarketGroup) (types.TradeRecord, error) {
	if form.Size <= 0 {
		return types.TradeRecord{}, types.ErrSizeNotPositive
	}
	if f.breaker != nil && !f.breaker.Allow() {
		SubmissionsTotal.WithLabelValues("suspended").Inc()
		return types.TradeRecord{}, types.ErrSubmissionsSuspended
	}

	f.setState(StateSubmitting)

	leverage := clampLeverage(form.Leverage)
	req := &types.PlaceOrderRequest{
		MarketID:   group.ID,
		Size:       form.Size,
		Leverage:   leverage,
		EntryPrice: group.MarkPrice,
		Side:       form.Category,
	}
	local := reconcile.LocalFill{
		Market:    group.Title,
		Side:      form.Category,
		Size:      form.Size,
		Leverage:  leverage,
		MarkPrice: group.MarkPrice,
	}

	// Optimistic clear; restored on any failure below.
	submittedSize := form.Size
	form.Size = 0

	resp, err := f.exchange.PlaceOrder(ctx, req)
	if err != nil {
		return types.TradeRecord{}, f.submitFailed(form, submittedSize, fmt.Errorf("submit order: %w", err))
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "order rejected"
		}
		return types.TradeRecord{}, f.submitFailed(form, submittedSize, fmt.Errorf("submit order: %s", msg))
	}

	rec := reconcile.BuildRecord(resp, local, f.now())
	f.ledger.Insert(ctx, rec)

	if f.breaker != nil {
		f.breaker.RecordSuccess()
	}
	f.setState(StateSucceeded)
	SubmissionsTotal.WithLabelValues("ok").Inc()
	f.notifier.Success(fmt.Sprintf("Order placed: %s %s @ %gx", rec.Side, rec.Market, float64(rec.Leverage)))
	f.logger.Info("order-submitted",
		zap.String("order-id", rec.OrderID),
		zap.String("market", rec.Market),
		zap.String("side", rec.Side),
		zap.Float64("size", rec.Size),
		zap.Int("leverage", rec.Leverage),
		zap.String("status", string(rec.Status)))

	return rec, nil
}

func (f *Flow) submitFailed(form *EntryForm, restoreSize float64, err error) error {
	form.Size = restoreSize
	if f.breaker != nil {
		f.breaker.RecordFailure()
	}
	f.setState(StateFailed)
	SubmissionsTotal.WithLabelValues("error").Inc()
	f.notifier.Error(fmt.Sprintf("Order failed: %v", err))
	f.logger.Warn("order-submission-failed", zap.Error(err))
	return err
}

// Refresh polls the execution service for a single order's status and applies
// the update to the ledger if the payload identifies that order. It reports
// whether the ledger changed. Payloads for other orders, or unrecognized
// payloads, leave the ledger untouched.
func (f *Flow) Refresh(ctx context.Context, orderID string) (bool, error) {
	if orderID == "" {
		return false, types.ErrEmptyOrderID
	}

	raw, err := f.exchange.OrderStatus(ctx)
	if err != nil {
		RefreshesTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("refresh order status: %w", err)
	}

	update := reconcile.Extract(raw)
	if !update.Matches(orderID) {
		RefreshesTotal.WithLabelValues("no_match").Inc()
		f.logger.Debug("status-refresh-no-match",
			zap.String("order-id", orderID),
			zap.String("payload-order-id", update.OrderID))
		f.notifier.Error(fmt.Sprintf("No status update for order %s", orderID))
		return false, nil
	}

	changed := f.ledger.UpdateStatus(ctx, orderID, update.Status)
	RefreshesTotal.WithLabelValues("ok").Inc()
	if changed {
		f.notifier.Success(fmt.Sprintf("Order %s is now %s", orderID, update.Status))
	}
	return changed, nil
}

// Cancel requests cancellation of a resting order. Only orders known to the
// ledger and currently resting are eligible. On acceptance the local record
// is marked canceled immediately rather than waiting for a later poll.
func (f *Flow) Cancel(ctx context.Context, orderID string) error {
	if orderID == "" {
		return types.ErrEmptyOrderID
	}

	rec, ok := f.ledger.Find(orderID)
	if !ok {
		return types.ErrOrderNotFound
	}
	if rec.Status != types.StatusResting {
		return fmt.Errorf("%w: status is %s", types.ErrOrderNotResting, rec.Status)
	}

	err := f.exchange.CancelOrder(ctx, orderID)
	if err != nil {
		CancelsTotal.WithLabelValues("error").Inc()
		f.notifier.Error(fmt.Sprintf("Cancel failed: %v", err))
		return fmt.Errorf("cancel order: %w", err)
	}

	f.ledger.UpdateStatus(ctx, orderID, types.StatusCanceled)
	CancelsTotal.WithLabelValues("ok").Inc()
	f.notifier.Success(fmt.Sprintf("Order %s canceled", orderID))
	f.logger.Info("order-canceled", zap.String("order-id", orderID))
	return nil
}
