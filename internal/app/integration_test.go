package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/submit"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

// fakeExchangeServer serves the minimal execution service surface the app
// talks to during startup and a submission round-trip.
func fakeExchangeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/markets", func(w http.ResponseWriter, _ *http.Request) {
		groups := []types.MarketGroup{
			{
				ID:        "grp-1",
				Title:     "BTC range",
				MarkPrice: 5,
				Expiry:    json.RawMessage(`1760054400000`),
				Markets: []types.Market{
					{Title: "YES", History: []types.MarketHistoryPoint{{T: 100, P: 0.5}}},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(groups)
	})
	mux.HandleFunc("/orders/place", func(w http.ResponseWriter, _ *http.Request) {
		resp := types.PlaceOrderResponse{
			Success: true,
			OrderID: "A1",
			HLResponse: json.RawMessage(
				`{"status":"ok","response":{"type":"order","data":{"statuses":[{"resting":{"oid":"A1"}}]}}}`),
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, exchangeURL string) *config.Config {
	t.Helper()
	return &config.Config{
		LogLevel:                "info",
		HTTPPort:                "0",
		ExchangeAPIURL:          exchangeURL,
		ExchangeTimeout:         5 * time.Second,
		LedgerStorageMode:       "file",
		LedgerDir:               t.TempDir(),
		MarketsCacheTTL:         time.Minute,
		CountdownTick:           time.Second,
		BreakerFailureThreshold: 3,
		BreakerCooldown:         30 * time.Second,
	}
}

func TestNew_WiresComponents(t *testing.T) {
	srv := fakeExchangeServer(t)
	cfg := testConfig(t, srv.URL)

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	// The clock picked up the primary group's expiry during setup.
	assert.Equal(t, int64(1760054400000), a.clock.ExpiryMs())

	require.NoError(t, a.Shutdown())
}

func TestSubmissionRoundTrip_PersistsToFileLedger(t *testing.T) {
	srv := fakeExchangeServer(t)
	cfg := testConfig(t, srv.URL)

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, a.ledger.Load(context.Background()))

	group, err := a.markets.Primary(context.Background())
	require.NoError(t, err)

	form := &submit.EntryForm{Size: 10, Leverage: 2, Category: "YES"}
	rec, err := a.flow.Submit(context.Background(), form, group)
	require.NoError(t, err)
	assert.Equal(t, "A1", rec.OrderID)
	assert.Equal(t, types.StatusResting, rec.Status)

	// The insert wrote through to the file store.
	path := filepath.Join(cfg.LedgerDir, ledger.StorageKey+".json")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored []types.TradeRecord
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, rec, stored[0])

	require.NoError(t, a.Shutdown())
}

func TestNew_ExchangeDownStillStarts(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")

	a, err := New(cfg, zap.NewNop())
	require.NoError(t, err, "an unreachable exchange must not block startup")
	assert.Zero(t, a.clock.ExpiryMs(), "no expiry known, countdown reads expired")

	require.NoError(t, a.Shutdown())
}
