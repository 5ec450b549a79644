package commands

import (
	"fmt"

	"github.com/gridsix/g6/internal/broker"
	"github.com/gridsix/g6/internal/collector"
	"github.com/gridsix/g6/internal/expiry"
	"github.com/gridsix/g6/internal/storage"
	"github.com/gridsix/g6/pkg/config"
	"github.com/gridsix/g6/pkg/logger"
)

// stack bundles the wired components shared by the collect and serve commands.
type stack struct {
	cfg       *config.Config
	log       *logger.Logger
	provider  broker.Provider
	resolver  *expiry.Resolver
	sink      *storage.CsvSink
	collector *collector.Collector
}

// buildStack loads configuration and wires provider, resolver, sink and
// collector together.
func buildStack() (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	provider := broker.NewSimProvider()
	resolver := expiry.NewResolver(provider, log)

	sink, err := storage.NewCsvSink(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("create csv sink: %w", err)
	}

	params := collector.DefaultParams()
	if cfg.IndexParamsPath != "" {
		params, err = collector.LoadParams(cfg.IndexParamsPath)
		if err != nil {
			return nil, fmt.Errorf("load index params: %w", err)
		}
	}

	col := collector.New(provider, resolver, sink, params, log).
		WithRateLimit(cfg.ProviderRateLimit).
		WithMetrics(cfg.MetricsEnabled).
		WithMarketHours(cfg.MarketHoursOnly)

	return &stack{
		cfg:       cfg,
		log:       log,
		provider:  provider,
		resolver:  resolver,
		sink:      sink,
		collector: col,
	}, nil
}
