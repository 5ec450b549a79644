package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gridsix/g6/internal/scheduler"
	"github.com/gridsix/g6/internal/scheduler/jobs"
)

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run the snapshot collection loop",
	Long: `Runs the option chain collection loop in the foreground.

Each cycle walks the configured indices, resolves the target expiries,
fetches quotes for the strike ladder around ATM and appends snapshot
rows to the CSV store.

Example:
  g6 collect
  g6 collect --once
  g6 collect --once --force`,
	RunE: runCollect,
}

var (
	collectOnce  bool
	collectForce bool
)

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().BoolVar(&collectOnce, "once", false, "run a single cycle and exit")
	collectCmd.Flags().BoolVar(&collectForce, "force", false, "collect even when the market is closed")
}

func runCollect(cmd *cobra.Command, args []string) error {
	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.provider.Close()

	if collectForce {
		st.collector.WithMarketHours(false)
	}

	if collectOnce {
		st.log.Info("Running single collection cycle")
		if err := st.collector.RunCycle(context.Background()); err != nil {
			return fmt.Errorf("collection cycle: %w", err)
		}
		fmt.Printf("Cycle complete, data in %s\n", st.sink.BaseDir())
		return nil
	}

	sched := scheduler.New(st.log)
	if err := sched.AddJob(jobs.NewSnapshotJob(st.collector, st.cfg.RunInterval, st.log)); err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}
	if err := sched.AddJob(jobs.NewExpiryRefreshJob(st.resolver, st.log)); err != nil {
		return fmt.Errorf("schedule expiry refresh job: %w", err)
	}

	sched.Start()
	fmt.Printf("Collecting every %s into %s (Ctrl+C to stop)\n", st.cfg.RunInterval, st.sink.BaseDir())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
