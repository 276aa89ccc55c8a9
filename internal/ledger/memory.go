package ledger

import (
	"context"
	"sync"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// MemoryStore is an in-memory Store used by tests and by callers that do not
// want persistence across sessions.
type MemoryStore struct {
	mu      sync.Mutex
	records []types.TradeRecord

	// SaveErr, when set, is returned by Save to exercise the best-effort
	// persistence path.
	SaveErr error

	// SaveCount counts Save invocations.
	SaveCount int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored records.
func (m *MemoryStore) Load(_ context.Context) ([]types.TradeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.TradeRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Save replaces the stored records.
func (m *MemoryStore) Save(_ context.Context, records []types.TradeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.records = make([]types.TradeRecord, len(records))
	copy(m.records, records)
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// Stored returns the last saved records.
func (m *MemoryStore) Stored() []types.TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.TradeRecord, len(m.records))
	copy(out, m.records)
	return out
}
