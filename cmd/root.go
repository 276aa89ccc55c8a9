package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "scalar-terminal",
	Short: "Scalar market trading terminal",
	Long: `Scalar market trading terminal that renders probability chart data,
tracks an expiry countdown, and drives the order lifecycle against a
remote execution service.

Orders are placed, refreshed, and canceled explicitly; the terminal keeps
a local trade ledger of the last 100 trades and reconciles their status
against the execution service on demand.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	// Flags can be added here if needed
}
