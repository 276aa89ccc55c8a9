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
var cancelOrderCmd = &cobra.Command{
	Use:   "cancel-order",
	Short: "Cancel a resting order",
	Long: `Cancel a resting order on the execution service. Only orders recorded
in the local ledger with a resting status can be canceled; the local record
is marked canceled once the service accepts the request.

Examples:
  # Cancel a resting order
  go run . cancel-order --order-id 38218562569`,
	Args: cobra.NoArgs,
	RunE: runCancelOrder,
}

//nolint:gochecknoglobals // Cobra boilerplate
var cancelOrderID string

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(cancelOrderCmd)
	cancelOrderCmd.Flags().StringVarP(&cancelOrderID, "order-id", "o", "", "Order id to cancel")
	_ = cancelOrderCmd.MarkFlagRequired("order-id")
}

func runCancelOrder(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadCancelOrderConfig()
	if err != nil {
		return err
	}

	logger, err := initCancelOrderLogger(cfg)
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

	err = flow.Cancel(ctx, cancelOrderID)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	fmt.Printf("Order %s canceled.\n", cancelOrderID)

	return nil
}

func loadCancelOrderConfig() (cfg *config.Config, err error) {
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

func initCancelOrderLogger(cfg *config.Config) (logger *zap.Logger, err error) {
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
