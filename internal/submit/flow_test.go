package submit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/internal/circuitbreaker"
	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/notify"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

type fakeExchange struct {
	placeResp   *types.PlaceOrderResponse
	placeErr    error
	placeCalls  int
	statusRaw   json.RawMessage
	statusErr   error
	cancelErr   error
	canceledIDs []string
}

func (f *fakeExchange) PlaceOrder(_ context.Context, _ *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error) {
	f.placeCalls++
	return f.placeResp, f.placeErr
}

func (f *fakeExchange) OrderStatus(_ context.Context) (json.RawMessage, error) {
	return f.statusRaw, f.statusErr
}

func (f *fakeExchange) CancelOrder(_ context.Context, orderID string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.canceledIDs = append(f.canceledIDs, orderID)
	return nil
}

func newTestFlow(t *testing.T, ex ExchangeClient) (*Flow, *ledger.Ledger, *notify.Collector) {
	t.Helper()

	l := ledger.New(ledger.NewMemoryStore(), zap.NewNop())
	collector := notify.NewCollector()
	breaker := circuitbreaker.New(&circuitbreaker.Config{
		FailureThreshold: 3,
		Cooldown:         time.Minute,
		Logger:           zap.NewNop(),
	})

	return NewFlow(ex, l, collector, breaker, zap.NewNop()), l, collector
}

func testGroup() *types.MarketGroup {
	return &types.MarketGroup{
		ID:        "grp-1",
		Title:     "X",
		MarkPrice: 5,
	}
}

func TestSubmit_Success(t *testing.T) {
	ex := &fakeExchange{
		placeResp: &types.PlaceOrderResponse{
			Success: true,
			OrderID: "A1",
			HLResponse: json.RawMessage(
				`{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":"A1"}}]}}}`),
		},
	}
	flow, l, collector := newTestFlow(t, ex)

	form := &EntryForm{Size: 10, Leverage: 2, Category: "YES"}
	rec, err := flow.Submit(context.Background(), form, testGroup())
	require.NoError(t, err)

	assert.Equal(t, "A1", rec.OrderID)
	assert.Equal(t, "X", rec.Market)
	assert.Equal(t, "YES", rec.Side)
	assert.Equal(t, 10.0, rec.Size)
	assert.Equal(t, 2, rec.Leverage)
	assert.Equal(t, 20.0, rec.NotionalSize)
	assert.Equal(t, 5.0, rec.MarkPrice)
	assert.Equal(t, types.StatusResting, rec.Status)

	// Newest entry lands at the head of the ledger.
	records := l.Records()
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])

	// The form size is consumed, not restored.
	assert.Equal(t, 0.0, form.Size)
	assert.Equal(t, StateSucceeded, flow.State())
	assert.Len(t, collector.Successes, 1)
}

func TestSubmit_NonPositiveSize(t *testing.T) {
	ex := &fakeExchange{}
	flow, l, _ := newTestFlow(t, ex)

	for _, size := range []float64{0, -5} {
		form := &EntryForm{Size: size, Leverage: 1, Category: "YES"}
		_, err := flow.Submit(context.Background(), form, testGroup())
		assert.ErrorIs(t, err, types.ErrSizeNotPositive)
	}

	assert.Zero(t, ex.placeCalls, "no request should reach the service")
	assert.Zero(t, l.Len())
}

func TestSubmit_TransportFailureRollsBackForm(t *testing.T) {
	ex := &fakeExchange{placeErr: errors.New("connection refused")}
	flow, l, collector := newTestFlow(t, ex)

	form := &EntryForm{Size: 10, Leverage: 2, Category: "NO"}
	_, err := flow.Submit(context.Background(), form, testGroup())
	require.Error(t, err)

	assert.Equal(t, 10.0, form.Size, "size restored on failure")
	assert.Zero(t, l.Len(), "no ledger entry on failure")
	assert.Equal(t, StateFailed, flow.State())
	assert.Len(t, collector.Errors, 1)
}

func TestSubmit_ServerRejectionRollsBackForm(t *testing.T) {
	ex := &fakeExchange{
		placeResp: &types.PlaceOrderResponse{Success: false, Message: "insufficient margin"},
	}
	flow, l, _ := newTestFlow(t, ex)

	form := &EntryForm{Size: 25, Leverage: 3, Category: "YES"}
	_, err := flow.Submit(context.Background(), form, testGroup())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient margin")

	assert.Equal(t, 25.0, form.Size)
	assert.Zero(t, l.Len())
}

func TestSubmit_LeverageClamped(t *testing.T) {
	ex := &fakeExchange{
		placeResp: &types.PlaceOrderResponse{Success: true, OrderID: "B2"},
	}
	flow, l, _ := newTestFlow(t, ex)

	form := &EntryForm{Size: 4, Leverage: 50, Category: "YES"}
	rec, err := flow.Submit(context.Background(), form, testGroup())
	require.NoError(t, err)
	assert.Equal(t, MaxLeverage, rec.Leverage)
	assert.Equal(t, 20.0, rec.NotionalSize)

	form = &EntryForm{Size: 4, Leverage: 0, Category: "YES"}
	rec, err = flow.Submit(context.Background(), form, testGroup())
	require.NoError(t, err)
	assert.Equal(t, MinLeverage, rec.Leverage)

	assert.Equal(t, 2, l.Len())
}

func TestSubmit_BreakerSuspendsAfterRepeatedFailures(t *testing.T) {
	ex := &fakeExchange{placeErr: errors.New("boom")}
	flow, _, _ := newTestFlow(t, ex)

	group := testGroup()
	for i := 0; i < 3; i++ {
		form := &EntryForm{Size: 1, Leverage: 1, Category: "YES"}
		_, err := flow.Submit(context.Background(), form, group)
		require.Error(t, err)
		require.NotErrorIs(t, err, types.ErrSubmissionsSuspended)
	}

	form := &EntryForm{Size: 1, Leverage: 1, Category: "YES"}
	_, err := flow.Submit(context.Background(), form, group)
	assert.ErrorIs(t, err, types.ErrSubmissionsSuspended)
	assert.Equal(t, 3, ex.placeCalls, "suspended submission never reaches the service")
}

func seedResting(t *testing.T, l *ledger.Ledger, orderID string) {
	t.Helper()
	l.Insert(context.Background(), types.TradeRecord{
		OrderID: orderID,
		Market:  "X",
		Side:    "YES",
		Size:    10,
		Status:  types.StatusResting,
	})
}

func TestRefresh_AppliesMatchingUpdate(t *testing.T) {
	ex := &fakeExchange{
		statusRaw: json.RawMessage(`[{"status":"order","order":{"order":{"oid":38218562569},"status":"filled"}}]`),
	}
	flow, l, collector := newTestFlow(t, ex)
	seedResting(t, l, "38218562569")

	changed, err := flow.Refresh(context.Background(), "38218562569")
	require.NoError(t, err)
	assert.True(t, changed)

	rec, ok := l.Find("38218562569")
	require.True(t, ok)
	assert.Equal(t, types.StatusFilled, rec.Status)
	assert.Len(t, collector.Successes, 1)
}

func TestRefresh_ForeignOrderLeavesLedgerUntouched(t *testing.T) {
	ex := &fakeExchange{
		statusRaw: json.RawMessage(`[{"status":"order","order":{"order":{"oid":999},"status":"filled"}}]`),
	}
	flow, l, _ := newTestFlow(t, ex)
	seedResting(t, l, "A1")

	changed, err := flow.Refresh(context.Background(), "A1")
	require.NoError(t, err)
	assert.False(t, changed)

	rec, _ := l.Find("A1")
	assert.Equal(t, types.StatusResting, rec.Status)
}

func TestRefresh_EmptyOrderID(t *testing.T) {
	flow, _, _ := newTestFlow(t, &fakeExchange{})

	_, err := flow.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, types.ErrEmptyOrderID)
}

func TestRefresh_TransportError(t *testing.T) {
	ex := &fakeExchange{statusErr: errors.New("timeout")}
	flow, _, _ := newTestFlow(t, ex)

	_, err := flow.Refresh(context.Background(), "A1")
	assert.Error(t, err)
}

func TestCancel_RestingOrder(t *testing.T) {
	ex := &fakeExchange{}
	flow, l, collector := newTestFlow(t, ex)
	seedResting(t, l, "A1")

	err := flow.Cancel(context.Background(), "A1")
	require.NoError(t, err)

	assert.Equal(t, []string{"A1"}, ex.canceledIDs)
	rec, _ := l.Find("A1")
	assert.Equal(t, types.StatusCanceled, rec.Status)
	assert.Len(t, collector.Successes, 1)
}

func TestCancel_UnknownOrder(t *testing.T) {
	flow, _, _ := newTestFlow(t, &fakeExchange{})

	err := flow.Cancel(context.Background(), "nope")
	assert.ErrorIs(t, err, types.ErrOrderNotFound)
}

func TestCancel_NotResting(t *testing.T) {
	flow, l, _ := newTestFlow(t, &fakeExchange{})
	l.Insert(context.Background(), types.TradeRecord{
		OrderID: "F1",
		Status:  types.StatusFilled,
	})

	err := flow.Cancel(context.Background(), "F1")
	assert.ErrorIs(t, err, types.ErrOrderNotResting)
}

func TestCancel_ServiceFailureKeepsStatus(t *testing.T) {
	ex := &fakeExchange{cancelErr: errors.New("rejected")}
	flow, l, collector := newTestFlow(t, ex)
	seedResting(t, l, "A1")

	err := flow.Cancel(context.Background(), "A1")
	require.Error(t, err)

	rec, _ := l.Find("A1")
	assert.Equal(t, types.StatusResting, rec.Status, "status unchanged when service refuses")
	assert.Len(t, collector.Errors, 1)
}
