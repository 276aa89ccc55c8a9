package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/scalarlabs/scalar-terminal/internal/exchange"
	"github.com/scalarlabs/scalar-terminal/internal/series"
	"github.com/scalarlabs/scalar-terminal/pkg/config"
	"github.com/scalarlabs/scalar-terminal/pkg/types"
)

//nolint:gochecknoglobals // Cobra boilerplate
var listMarketsCmd = &cobra.Command{
	Use:   "list-markets",
	Short: "List market groups from the execution service",
	Long: `List all market groups with their outcomes, mark price, and time to
expiry.

Examples:
  # List all market groups
  go run . list-markets`,
	Args: cobra.NoArgs,
	RunE: runListMarkets,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(listMarketsCmd)
}

func runListMarkets(cmd *cobra.Command, args []string) (err error) {
	cfg, err := loadListMarketsConfig()
	if err != nil {
		return err
	}

	logger, err := initListMarketsLogger(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	client := exchange.NewClient(cfg.ExchangeAPIURL, cfg.ExchangeTimeout, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	groups, err := client.FetchMarkets(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch markets: %w", err)
	}

	if len(groups) == 0 {
		fmt.Println("No market groups found.")
		return nil
	}

	displayMarketGroupsTable(groups)

	return nil
}

func loadListMarketsConfig() (cfg *config.Config, err error) {
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

func initListMarketsLogger(cfg *config.Config) (logger *zap.Logger, err error) {
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

func displayMarketGroupsTable(groups []types.MarketGroup) {
	fmt.Println("\n========================================")
	fmt.Println("Market Groups")
	fmt.Println("========================================")
	fmt.Printf("%-12s %-32s %-12s %-16s %-24s\n",
		"ID", "Title", "Mark", "Expires In", "Outcomes")
	fmt.Println("--------------------------------------------------------------------------------")

	nowMs := time.Now().UnixMilli()
	for _, group := range groups {
		title := group.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}

		countdown := series.CountdownAt(series.ParseExpiry(group.Expiry), nowMs)
		expires := countdown.String()
		if countdown.Expired {
			expires = "expired"
		}

		fmt.Printf("%-12s %-32s %-12.2f %-16s %-24s\n",
			group.ID, title, group.MarkPrice, expires,
			strings.Join(group.MarketTitles(), ", "))
	}

	fmt.Printf("\nTotal Groups: %d\n", len(groups))
}
