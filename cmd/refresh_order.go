package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scalarlabs/scalar-terminal/internal/exchange"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
)

//nolint:gochecknoglobals // Cobra boilerplate
var refreshOrderCmd = &cobra.Command{
	Use:   "refresh-order",
	Short: "Refresh one order's status from the execution service",
	Long: `Poll the execution service for the given order and apply the reported
status to the local ledger. Status payloads for other orders leave the
ledger untouched.

Examples:
  # Refresh a single order
  go run . refresh-order --order-id 38218562569`,
	Args: cobra.NoArgs,
	RunE: runRefreshOrder,
}

//nolint:gochecknoglobals // Cobra boilerplate
var refreshOrderID string

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(refreshOrderCmd)
	refreshOrderCmd.Flags().StringVarP(&refreshOrderID, "order-id", "o", "", "Order id to refresh")
	_ = refreshOrderCmd.MarkFlagRequired("order-id")
}

func runRefreshOrder(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadRefreshOrderConfig()
	if err != nil {
		return err
	}

	logger, err := initRefreshOrderLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client := exchange.NewClient(cfg.ExchangeAPIURL, cfg.ExchangeTimeout, logger)
	flow, tradeLedger := createCLIFlow(cfg, client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = tradeLedger.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trade ledger: %w", err)
	}

	updated, err := flow.Refresh(ctx, refreshOrderID)
	if err != nil {
		return fmt.Errorf("failed to refresh order: %w", err)
	}

	if !updated {
		fmt.Printf("No status update for order %s.\n", refreshOrderID)
		return nil
	}

	rec, ok := tradeLedger.Find(refreshOrderID)
	if ok {
		fmt.Printf("Order %s is now %s.\n", rec.OrderID, rec.Status)
	}

	return nil
}

func loadRefreshOrderConfig() (cfg *config.Config, err error) {
	// Load .env file if exists
	err = godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		err = fmt.Errorf("failed to load .env: %w", err)
		return cfg, err
	}

	cfg, err = config.LoadFromEnv()
	if err != nil {
		err = fmt.Errorf("failed to load config: %w", err)
		return cfg, err
	}

	return cfg, nil
}

func initRefreshOrderLogger(cfg *config.Config) (logger *zap.Logger, err error) {
	logLevel := zapcore.InfoLevel
	err = logLevel.UnmarshalText([]byte(cfg.LogLevel))
	if err != nil {
		err = fmt.Errorf("invalid log level: %w", err)
		return logger, err
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(logLevel)
	logger, err = zapConfig.Build()
	if err != nil {
		err = fmt.Errorf("failed to create logger: %w", err)
		return logger, err
	}

	return logger, nil
}
