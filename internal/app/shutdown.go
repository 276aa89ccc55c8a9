package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(false)

	// Cancel context to signal all components
	a.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first so no request races the closing stores
	err := a.httpServer.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	// Stop the countdown clock
	a.clock.Stop()

	// Final ledger flush before the store closes
	a.ledger.Save(shutdownCtx)

	// Close the ledger store
	err = a.ledgerStore.Close()
	if err != nil {
		a.logger.Error("ledger-store-close-error", zap.Error(err))
	}

	// Close the market cache
	a.marketCache.Close()

	// Wait for all goroutines
	a.wg.Wait()

	a.logger.Info("application-shutdown-complete")

	return nil
}
