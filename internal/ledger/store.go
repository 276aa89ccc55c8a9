// Package ledger maintains the local, persisted ledger of submitted trades:
// a capacity-bounded, newest-first collection reconciled against exchange
// status responses and exported to persistent storage after every mutation.
package ledger

import (
	"context"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// StorageKey is the fixed key under which the trade history is persisted.
// It is process-wide: concurrent terminals sharing a store race on Save with
// last-save-wins semantics.
const StorageKey = "trade_history_hl_testnet"

// Store is the persistence backend for the trade ledger.
type Store interface {
	// Load restores the persisted trade records. Missing or corrupt data
	// degrades to an empty sequence, never an error.
	Load(ctx context.Context) ([]types.TradeRecord, error)

	// Save persists the full record sequence under the fixed storage key.
	Save(ctx context.Context, records []types.TradeRecord) error

	// Close closes the storage backend.
	Close() error
}
