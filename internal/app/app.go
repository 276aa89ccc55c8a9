package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/scalarlabs/scalar-terminal/internal/exchange"
	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/markets"
	"github.com/scalarlabs/scalar-terminal/internal/series"
	"github.com/scalarlabs/scalar-terminal/internal/submit"
	"github.com/scalarlabs/scalar-terminal/pkg/cache"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
	"github.com/scalarlabs/scalar-terminal/pkg/healthprobe"
	"github.com/scalarlabs/scalar-terminal/pkg/httpserver"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	marketCache   cache.Cache
	exchange      *exchange.Client
	markets       *markets.CachedClient
	ledgerStore   ledger.Store
	ledger        *ledger.Ledger
	flow          *submit.Flow
	clock         *series.Clock
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}
