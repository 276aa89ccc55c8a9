package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// PostgresStore persists the trade history in PostgreSQL. The full sequence
// is stored as a single JSON document keyed by the fixed storage key, the
// same shape the file store writes.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresStore creates a new PostgreSQL store.
func NewPostgresStore(cfg *PostgresConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-store-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresStore{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// Load restores the persisted records. A missing row or a corrupt document
// degrades to an empty sequence.
func (p *PostgresStore) Load(ctx context.Context) ([]types.TradeRecord, error) {
	query := `SELECT records FROM trade_history WHERE storage_key = $1`

	var payload []byte
	err := p.db.QueryRowContext(ctx, query, StorageKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []types.TradeRecord{}, nil
		}
		return nil, fmt.Errorf("select trade history: %w", err)
	}

	var records []types.TradeRecord
	err = json.Unmarshal(payload, &records)
	if err != nil {
		p.logger.Warn("trade-history-corrupt", zap.Error(err))
		return []types.TradeRecord{}, nil
	}

	return records, nil
}

// Save upserts the full record sequence under the fixed storage key.
func (p *PostgresStore) Save(ctx context.Context, records []types.TradeRecord) error {
	if records == nil {
		records = []types.TradeRecord{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	query := `
		INSERT INTO trade_history (storage_key, records, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (storage_key)
		DO UPDATE SET records = EXCLUDED.records, updated_at = EXCLUDED.updated_at
	`

	_, err = p.db.ExecContext(ctx, query, StorageKey, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert trade history: %w", err)
	}

	p.logger.Debug("trade-history-saved", zap.Int("records", len(records)))
	return nil
}

// Close closes the database connection.
func (p *PostgresStore) Close() error {
	p.logger.Info("closing-postgres-store")
	return p.db.Close()
}
