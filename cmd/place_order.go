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

	"github.com/scalarlabs/scalar-terminal/internal/circuitbreaker"
	"github.com/scalarlabs/scalar-terminal/internal/exchange"
	"github.com/scalarlabs/scalar-terminal/internal/ledger"
	"github.com/scalarlabs/scalar-terminal/internal/notify"
	"github.com/scalarlabs/scalar-terminal/internal/submit"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var placeOrderCmd = &cobra.Command{
	Use:   "place-order",
	Short: "Place an order on the primary market group",
	Long: `Place an order against the primary market group using the execution
service. The trade is recorded at the head of the local ledger.

Examples:
  # Bet 10 on YES at 2x leverage
  go run . place-order --size 10 --leverage 2 --category YES`,
	Args: cobra.NoArgs,
	RunE: runPlaceOrder,
}

//nolint:gochecknoglobals // Cobra boilerplate
var (
	orderSize     float64
	orderLeverage int
	orderCategory string
)

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(placeOrderCmd)

	placeOrderCmd.Flags().Float64VarP(&orderSize, "size", "s", 0, "Entry size in account currency")
	placeOrderCmd.Flags().IntVarP(&orderLeverage, "leverage", "l", 1, "Leverage multiplier (1-5)")
	placeOrderCmd.Flags().StringVarP(&orderCategory, "category", "c", "", "Outcome to bet on, e.g. YES")
	_ = placeOrderCmd.MarkFlagRequired("size")
	_ = placeOrderCmd.MarkFlagRequired("category")
}

func runPlaceOrder(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadPlaceOrderConfig()
	if err != nil {
		return err
	}

	logger, err := initPlaceOrderLogger(cfg)
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

	group, err := client.FetchMarkets(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch markets: %w", err)
	}
	if len(group) == 0 {
		return types.ErrNoMarkets
	}
	primary := &group[0]

	fmt.Printf("=== Place Order ===\n\n")
	fmt.Printf("Market:   %s\n", primary.Title)
	fmt.Printf("Category: %s\n", orderCategory)
	fmt.Printf("Size:     %.2f\n", orderSize)
	fmt.Printf("Leverage: %dx\n\n", orderLeverage)

	form := &submit.EntryForm{
		Size:     orderSize,
		Leverage: orderLeverage,
		Category: orderCategory,
	}

	rec, err := flow.Submit(ctx, form, primary)
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}

	fmt.Printf("Order placed.\n\n")
	fmt.Printf("Order ID: %s\n", rec.OrderID)
	fmt.Printf("Status:   %s\n", rec.Status)
	fmt.Printf("Notional: %.2f\n", rec.NotionalSize)

	return nil
}

func loadPlaceOrderConfig() (cfg *config.Config, err error) {
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

func initPlaceOrderLogger(cfg *config.Config) (logger *zap.Logger, err error) {
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

// createCLIFlow builds a submission flow backed by the file ledger for
// one-shot CLI use.
func createCLIFlow(cfg *config.Config, client *exchange.Client, logger *zap.Logger) (*submit.Flow, *ledger.Ledger) {
	store := ledger.NewFileStore(cfg.LedgerDir, logger)
	tradeLedger := ledger.New(store, logger)

	breaker := circuitbreaker.New(&circuitbreaker.Config{
		FailureThreshold: cfg.BreakerFailureThreshold,
		Cooldown:         cfg.BreakerCooldown,
		Logger:           logger,
	})

	flow := submit.NewFlow(client, tradeLedger, notify.NewLogNotifier(logger), breaker, logger)
	return flow, tradeLedger
}
