package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "g6",
	Short: "g6 - options chain snapshot collector",
	Long: `g6 collects periodic option chain snapshots for Indian market
indices (NIFTY, BANKNIFTY, FINNIFTY, MIDCPNIFTY, SENSEX) and appends
them to a date-partitioned CSV store.

Usage:
  g6 [command]

Examples:
  g6 collect --once
  g6 serve
  g6 status`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default from G6_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
