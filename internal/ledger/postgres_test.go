package ledger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

func TestPostgresStore_LoadNoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &PostgresStore{db: db, logger: zap.NewNop()}

	mock.ExpectQuery("SELECT records FROM trade_history").
		WithArgs(StorageKey).
		WillReturnRows(sqlmock.NewRows([]string{"records"}))

	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty ledger, got %d records", len(records))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStore_LoadExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &PostgresStore{db: db, logger: zap.NewNop()}

	want := []types.TradeRecord{{OrderID: "A1", Status: types.StatusResting}}
	payload, _ := json.Marshal(want)

	mock.ExpectQuery("SELECT records FROM trade_history").
		WithArgs(StorageKey).
		WillReturnRows(sqlmock.NewRows([]string{"records"}).AddRow(payload))

	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 1 || records[0].OrderID != "A1" {
		t.Errorf("unexpected records: %+v", records)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStore_LoadCorruptPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &PostgresStore{db: db, logger: zap.NewNop()}

	mock.ExpectQuery("SELECT records FROM trade_history").
		WithArgs(StorageKey).
		WillReturnRows(sqlmock.NewRows([]string{"records"}).AddRow([]byte(`{oops`)))

	records, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt payload must degrade to empty, got error %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty ledger, got %d records", len(records))
	}
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &PostgresStore{db: db, logger: zap.NewNop()}

	mock.ExpectExec("INSERT INTO trade_history").
		WithArgs(StorageKey, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(context.Background(), []types.TradeRecord{{OrderID: "A1"}})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStore_SaveError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := &PostgresStore{db: db, logger: zap.NewNop()}

	mock.ExpectExec("INSERT INTO trade_history").
		WithArgs(StorageKey, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sqlmock.ErrCancelled)

	err = store.Save(context.Background(), nil)
	if err == nil {
		t.Error("expected error, got nil")
	}
}

func TestPostgresStore_Close(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	store := &PostgresStore{db: db, logger: zap.NewNop()}

	mock.ExpectClose()

	if err := store.Close(); err != nil {
		t.Errorf("expected no error on close, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStore_Interface(t *testing.T) {
	// Verify all implementations satisfy the Store interface.
	var _ Store = NewMemoryStore()
	var _ Store = NewFileStore(t.TempDir(), zap.NewNop())

	db, _, _ := sqlmock.New()
	defer db.Close()
	var _ Store = &PostgresStore{db: db, logger: zap.NewNop()}
}
