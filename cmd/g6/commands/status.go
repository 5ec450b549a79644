package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/internal/storage"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show collected data for a date",
	Long: `Prints the per-index overview state from the CSV store.

Shows the latest reconstructed PCR and day width per bucket for each
index, along with the number of overview rows written for the date.

Example:
  g6 status
  g6 status --date 2026-08-27`,
	RunE: runStatus,
}

var statusDate string

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusDate, "date", "", "date to inspect (YYYY-MM-DD, default today)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.provider.Close()

	date := time.Now()
	if statusDate != "" {
		date, err = time.Parse("2006-01-02", statusDate)
		if err != nil {
			return fmt.Errorf("invalid --date (expected YYYY-MM-DD): %w", err)
		}
	}

	fmt.Printf("Data directory: %s\n", st.sink.BaseDir())
	if err := st.sink.CheckHealth(); err != nil {
		fmt.Printf("Storage health:  DEGRADED (%v)\n", err)
	} else {
		fmt.Println("Storage health:  ok")
	}
	fmt.Printf("Date:            %s\n\n", date.Format("2006-01-02"))

	fmt.Printf("%-12s %8s %12s %12s %12s %12s %10s\n",
		"INDEX", "ROWS", "PCR_TW", "PCR_NW", "PCR_TM", "PCR_NM", "DAY_WIDTH")

	for _, index := range market.All() {
		rows, err := st.sink.ReadOptionsOverview(index, date)
		if err != nil {
			fmt.Printf("%-12s read error: %v\n", index, err)
			continue
		}

		current, ok := storage.ReconstructOverview(rows)
		if !ok {
			fmt.Printf("%-12s %8d %12s %12s %12s %12s %10s\n",
				index, len(rows), "-", "-", "-", "-", "-")
			continue
		}

		fmt.Printf("%-12s %8d %12.4f %12.4f %12.4f %12.4f %10.2f\n",
			index, len(rows),
			current.PCRThisWeek, current.PCRNextWeek,
			current.PCRThisMonth, current.PCRNextMonth,
			current.DayWidth)
	}

	return nil
}
