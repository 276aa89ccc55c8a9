package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// FileStore persists the trade history as a JSON file named after the fixed
// storage key. It is the default backend, the terminal analog of the
// browser's local storage.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file store rooted at dir. The directory is created
// on the first save.
func NewFileStore(dir string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:   filepath.Join(dir, StorageKey+".json"),
		logger: logger,
	}
}

// Load reads the persisted records. A missing or corrupt file degrades to an
// empty sequence.
func (f *FileStore) Load(_ context.Context) ([]types.TradeRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("trade-history-unreadable",
				zap.String("path", f.path),
				zap.Error(err))
		}
		return []types.TradeRecord{}, nil
	}

	var records []types.TradeRecord
	err = json.Unmarshal(data, &records)
	if err != nil {
		f.logger.Warn("trade-history-corrupt",
			zap.String("path", f.path),
			zap.Error(err))
		return []types.TradeRecord{}, nil
	}

	return records, nil
}

// Save writes the full record sequence atomically via a temp-file rename.
func (f *FileStore) Save(_ context.Context, records []types.TradeRecord) error {
	if records == nil {
		records = []types.TradeRecord{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	dir := filepath.Dir(f.path)
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("create ledger dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, StorageKey+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	_, err = tmp.Write(data)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	err = os.Rename(tmp.Name(), f.path)
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Close is a no-op for the file store.
func (f *FileStore) Close() error {
	return nil
}
