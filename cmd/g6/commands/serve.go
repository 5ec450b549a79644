package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridsix/g6/internal/api"
	"github.com/gridsix/g6/internal/api/handlers"
	"github.com/gridsix/g6/internal/metrics"
	"github.com/gridsix/g6/internal/scheduler"
	"github.com/gridsix/g6/internal/scheduler/jobs"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the collector with the HTTP API",
	Long: `Runs the collection loop together with the HTTP API server.

Endpoints:
  GET  /health                        - Health check
  GET  /metrics                       - Prometheus metrics
  GET  /api/overview/{index}          - Overview rows for an index
  GET  /api/options/{index}/{bucket}  - Option snapshot rows
  GET  /api/status                    - Scheduler job statistics
  POST /api/collect                   - Trigger a cycle manually

Example:
  g6 serve
  g6 serve --port 9108`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (default from PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.provider.Close()

	if servePort != "" {
		st.cfg.Port = servePort
	}

	if st.cfg.MetricsEnabled {
		metrics.Init()
	}

	sched := scheduler.New(st.log)
	if err := sched.AddJob(jobs.NewSnapshotJob(st.collector, st.cfg.RunInterval, st.log)); err != nil {
		return fmt.Errorf("schedule snapshot job: %w", err)
	}
	if err := sched.AddJob(jobs.NewExpiryRefreshJob(st.resolver, st.log)); err != nil {
		return fmt.Errorf("schedule expiry refresh job: %w", err)
	}

	snapshotHandler := handlers.NewSnapshotHandler(st.sink, st.log)
	statusHandler := handlers.NewStatusHandler(sched, st.log)
	router := api.NewRouter(st.sink, snapshotHandler, statusHandler, st.log)
	server := api.New(st.cfg, st.log, router)

	sched.Start()
	go func() {
		if err := server.Start(); err != nil {
			st.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s, collecting every %s\n", st.cfg.Port, st.cfg.RunInterval)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	st.log.Info("Server stopped")
	return nil
}
