package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/internal/circuitbreaker"
	"github.com/scalarlabs/scalar-terminal/internal/exchange"
	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/markets"
	"github.com/scalarlabs/scalar-terminal/internal/notify"
	"github.com/scalarlabs/scalar-terminal/internal/series"
	"github.com/scalarlabs/scalar-terminal/internal/submit"
	"github.com/scalarlabs/scalar-terminal/pkg/cache"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
	"github.com/scalarlabs/scalar-terminal/pkg/healthprobe"
	"github.com/scalarlabs/scalar-terminal/pkg/httpserver"
)

// New creates a new application instance.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())

	healthChecker := healthprobe.New()

	marketCache, err := setupCache(logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup cache: %w", err)
	}

	exchangeClient := exchange.NewClient(cfg.ExchangeAPIURL, cfg.ExchangeTimeout, logger)
	marketsClient := markets.NewCachedClient(exchangeClient, marketCache, cfg.MarketsCacheTTL, logger)

	ledgerStore, err := setupLedgerStore(cfg, logger)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("setup ledger store: %w", err)
	}

	tradeLedger := ledger.New(ledgerStore, logger)

	breaker := circuitbreaker.New(&circuitbreaker.Config{
		FailureThreshold: cfg.BreakerFailureThreshold,
		Cooldown:         cfg.BreakerCooldown,
		Logger:           logger,
	})

	flow := submit.NewFlow(
		exchangeClient,
		tradeLedger,
		notify.NewLogNotifier(logger),
		breaker,
		logger,
	)

	clock := setupClock(ctx, cfg, logger, marketsClient)

	httpServer := httpserver.New(&httpserver.Config{
		Port:          cfg.HTTPPort,
		Logger:        logger,
		HealthChecker: healthChecker,
		Markets:       marketsClient,
		Clock:         clock,
		Ledger:        tradeLedger,
		Flow:          flow,
	})

	return &App{
		cfg:           cfg,
		logger:        logger,
		healthChecker: healthChecker,
		httpServer:    httpServer,
		marketCache:   marketCache,
		exchange:      exchangeClient,
		markets:       marketsClient,
		ledgerStore:   ledgerStore,
		ledger:        tradeLedger,
		flow:          flow,
		clock:         clock,
		ctx:           ctx,
		cancel:        cancel,
	}, nil
}

func setupCache(logger *zap.Logger) (cache.Cache, error) {
	return cache.NewRistrettoCache(&cache.RistrettoConfig{
		NumCounters: 1000, // 10x expected max items (market groups are few)
		MaxCost:     100,  // Maximum 100 items in cache
		BufferItems: 64,   // Buffer size for Get operations
		Logger:      logger,
	})
}

func setupLedgerStore(cfg *config.Config, logger *zap.Logger) (ledger.Store, error) {
	if cfg.LedgerStorageMode == "postgres" {
		pgStore, err := ledger.NewPostgresStore(&ledger.PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
		if err != nil {
			return nil, fmt.Errorf("create postgres store: %w", err)
		}
		return pgStore, nil
	}

	return ledger.NewFileStore(cfg.LedgerDir, logger), nil
}

// setupClock starts the countdown clock from the primary market group's
// expiry. A failed fetch degrades to a zero expiry (shown as expired) rather
// than blocking startup; the clock picks up the real expiry on restart.
func setupClock(ctx context.Context, cfg *config.Config, logger *zap.Logger, m *markets.CachedClient) *series.Clock {
	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var expiryMs int64
	group, err := m.Primary(fetchCtx)
	if err != nil {
		logger.Warn("primary-market-fetch-failed", zap.Error(err))
	} else {
		expiryMs = series.ParseExpiry(group.Expiry)
	}

	return series.NewClock(expiryMs, cfg.CountdownTick, logger)
}
