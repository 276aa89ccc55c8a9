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

	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listTradesCmd = &cobra.Command{
	Use:   "list-trades",
	Short: "List recorded trades from the local ledger",
	Long: `List the trade ledger, newest first.

Shows trade details including market, side, size, leverage, and status.

Examples:
  # List all recorded trades
  go run . list-trades`,
	Args: cobra.NoArgs,
	RunE: runListTrades,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listTradesCmd)
}

func runListTrades(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadListTradesConfig()
	if err != nil {
		return err
	}

	logger, err := initListTradesLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	store := ledger.NewFileStore(cfg.LedgerDir, logger)
	tradeLedger := ledger.New(store, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = tradeLedger.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trade ledger: %w", err)
	}

	records := tradeLedger.Records()
	if len(records) == 0 {
		fmt.Println("No trades recorded.")
		return nil
	}

	displayTradesTable(records)
	displayTradesSummary(records)

	return nil
}

func loadListTradesConfig() (cfg *config.Config, err error) {
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

func initListTradesLogger(cfg *config.Config) (logger *zap.Logger, err error) {
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

func displayTradesTable(records []types.TradeRecord) {
	fmt.Println("\n========================================")
	fmt.Println("Trade Ledger")
	fmt.Println("========================================")
	fmt.Printf("%-14s %-22s %-24s %-8s %-10s %-5s %-10s %-10s\n",
		"Order ID", "Time", "Market", "Side", "Size", "Lev", "Notional", "Status")
	fmt.Println("----------------------------------------------------------------------------------------------------")

	for _, rec := range records {
		shortID := rec.OrderID
		if len(shortID) > 10 {
			shortID = shortID[:10] + "..."
		}
		if shortID == "" {
			shortID = "-"
		}

		market := rec.Market
		if len(market) > 22 {
			market = market[:19] + "..."
		}

		fmt.Printf("%-14s %-22s %-24s %-8s %-10.2f %-5d %-10.2f %-10s\n",
			shortID, rec.Time, market, rec.Side, rec.Size, rec.Leverage,
			rec.NotionalSize, rec.Status)
	}
}

func displayTradesSummary(records []types.TradeRecord) {
	byStatus := make(map[types.OrderStatus]int)
	totalNotional := 0.0
	for _, rec := range records {
		byStatus[rec.Status]++
		totalNotional += rec.NotionalSize
	}

	fmt.Println("\n========================================")
	fmt.Println("Summary")
	fmt.Println("========================================")
	fmt.Printf("Total Trades:   %d\n", len(records))
	fmt.Printf("Resting:        %d\n", byStatus[types.StatusResting])
	fmt.Printf("Filled:         %d\n", byStatus[types.StatusFilled])
	fmt.Printf("Canceled:       %d\n", byStatus[types.StatusCanceled])
	fmt.Printf("Unknown:        %d\n", byStatus[types.StatusUnknown])
	fmt.Printf("Total Notional: %.2f\n", totalNotional)
}
