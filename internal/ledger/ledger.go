package ledger

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// MaxRecords bounds the ledger to the most recent submissions. Inserting past
// the bound evicts the oldest (last) entry; records are never deleted
// individually.
const MaxRecords = 100

// Ledger is the in-memory trade history backed by a Store. All mutations are
// serialized by a mutex and followed by a best-effort Save: persistence
// failures are logged and swallowed, the in-memory state stays the source of
// truth for the session.
type Ledger struct {
	store  Store
	logger *zap.Logger

	mu      sync.Mutex
	records []types.TradeRecord
}

// New creates an empty ledger on top of the given store.
func New(store Store, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger,
	}
}

// Load restores the ledger from the store, replacing the in-memory state.
// Corrupt or missing persisted data yields an empty ledger.
func (l *Ledger) Load(ctx context.Context) error {
	records, err := l.store.Load(ctx)
	if err != nil {
		return err
	}

	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}

	l.mu.Lock()
	l.records = records
	l.mu.Unlock()

	LedgerSize.Set(float64(len(records)))
	l.logger.Debug("ledger-loaded", zap.Int("records", len(records)))
	return nil
}

// Insert prepends a record (newest-first) and truncates to MaxRecords, then
// saves.
func (l *Ledger) Insert(ctx context.Context, rec types.TradeRecord) {
	l.mu.Lock()
	l.records = append([]types.TradeRecord{rec}, l.records...)
	if len(l.records) > MaxRecords {
		l.records = l.records[:MaxRecords]
		EvictionsTotal.Inc()
	}
	snapshot := l.copyLocked()
	l.mu.Unlock()

	InsertsTotal.Inc()
	LedgerSize.Set(float64(len(snapshot)))

	l.logger.Info("trade-recorded",
		zap.String("order-id", rec.OrderID),
		zap.String("market", rec.Market),
		zap.String("side", rec.Side),
		zap.Float64("size", rec.Size),
		zap.Int("leverage", rec.Leverage),
		zap.String("status", string(rec.Status)))

	l.save(ctx, snapshot)
}

// UpdateStatus replaces the status of every record whose order id matches
// (in practice at most one) and reports whether anything matched. An empty
// order id never matches. The ledger is saved only when a record changed.
func (l *Ledger) UpdateStatus(ctx context.Context, orderID string, status types.OrderStatus) bool {
	if orderID == "" {
		return false
	}

	l.mu.Lock()
	matched := false
	for i := range l.records {
		if l.records[i].OrderID == orderID {
			l.records[i].Status = status
			matched = true
		}
	}
	var snapshot []types.TradeRecord
	if matched {
		snapshot = l.copyLocked()
	}
	l.mu.Unlock()

	if !matched {
		return false
	}

	StatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	l.logger.Info("trade-status-updated",
		zap.String("order-id", orderID),
		zap.String("status", string(status)))

	l.save(ctx, snapshot)
	return true
}

// Find returns the newest record with the given order id.
func (l *Ledger) Find(orderID string) (types.TradeRecord, bool) {
	if orderID == "" {
		return types.TradeRecord{}, false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rec := range l.records {
		if rec.OrderID == orderID {
			return rec, true
		}
	}
	return types.TradeRecord{}, false
}

// Records returns a copy of the ledger, newest first.
func (l *Ledger) Records() []types.TradeRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.copyLocked()
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Save persists the current state. Exposed so callers can force a flush; a
// load immediately followed by a save round-trips byte-for-byte modulo
// serialization formatting.
func (l *Ledger) Save(ctx context.Context) {
	l.mu.Lock()
	snapshot := l.copyLocked()
	l.mu.Unlock()
	l.save(ctx, snapshot)
}

func (l *Ledger) copyLocked() []types.TradeRecord {
	out := make([]types.TradeRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) save(ctx context.Context, snapshot []types.TradeRecord) {
	err := l.store.Save(ctx, snapshot)
	if err != nil {
		SaveFailuresTotal.Inc()
		l.logger.Warn("ledger-save-failed", zap.Error(err))
	}
}
