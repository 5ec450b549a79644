// Package collector drives the periodic snapshot cycle: for every enabled
// index and expiry rule it resolves the target expiry, builds the strike
// ladder around ATM, pulls option quotes from the provider and hands the
// merged legs to the storage sink. Failures are contained per unit so one
// bad chain never aborts the rest of the cycle.
package collector

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/gridsix/g6/internal/broker"
	"github.com/gridsix/g6/internal/expiry"
	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/internal/metrics"
	"github.com/gridsix/g6/internal/storage"
	"github.com/gridsix/g6/internal/strikes"
	"github.com/gridsix/g6/pkg/logger"
)

// Collector walks the configured indices once per RunCycle call.
type Collector struct {
	provider        broker.Provider
	resolver        *expiry.Resolver
	sink            *storage.CsvSink
	mirror          storage.Sink
	params          Params
	limiter         *rate.Limiter
	log             *logger.Logger
	metricsEnabled  bool
	marketHoursOnly bool
	now             func() time.Time
}

// New wires a collector around a provider and the primary CSV sink.
func New(provider broker.Provider, resolver *expiry.Resolver, sink *storage.CsvSink, params Params, log *logger.Logger) *Collector {
	return &Collector{
		provider:       provider,
		resolver:       resolver,
		sink:           sink,
		mirror:         storage.NullSink{},
		params:         params,
		limiter:        rate.NewLimiter(rate.Limit(10), 10),
		log:            log,
		metricsEnabled: true,
		now:            time.Now,
	}
}

// WithMirror installs a secondary sink that receives every snapshot on a
// best-effort basis. Mirror failures are logged and never fail the unit.
func (c *Collector) WithMirror(mirror storage.Sink) *Collector {
	if mirror != nil {
		c.mirror = mirror
	}
	return c
}

// WithRateLimit caps outbound provider calls at n per second.
func (c *Collector) WithRateLimit(n int) *Collector {
	if n > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(n), n)
	}
	return c
}

// WithMetrics toggles Prometheus metric updates per cycle.
func (c *Collector) WithMetrics(enabled bool) *Collector {
	c.metricsEnabled = enabled
	return c
}

// WithMarketHours makes RunCycle a no-op outside NSE trading hours.
func (c *Collector) WithMarketHours(enabled bool) *Collector {
	c.marketHoursOnly = enabled
	return c
}

// RunCycle executes one full collection pass. Per-unit failures are logged
// and the pass continues; only context cancellation aborts the cycle.
func (c *Collector) RunCycle(ctx context.Context) error {
	now := c.now()
	if c.marketHoursOnly && !market.IsOpen(now) {
		c.log.Debug("market closed, skipping collection cycle")
		return nil
	}

	start := now
	for _, ip := range c.params.Active() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.collectIndex(ctx, ip); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.WithError(err).WithField("index", string(ip.Index)).
				Error("Index collection failed")
		}
	}

	if c.metricsEnabled {
		metrics.RecordCycle(time.Since(start))
	}
	c.log.WithField("elapsed", time.Since(start).String()).Debug("Collection cycle complete")
	return nil
}

func (c *Collector) collectIndex(ctx context.Context, ip IndexParams) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	indexPrice, ohlc, err := c.provider.IndexData(ctx, ip.Index)
	if err != nil {
		return err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	atm, err := c.provider.ATMStrike(ctx, ip.Index)
	if err != nil {
		return err
	}

	if c.metricsEnabled {
		metrics.RecordIndex(string(ip.Index), indexPrice, atm)
	}

	for _, rule := range ip.Expiries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.collectUnit(ctx, ip, rule, atm, indexPrice, ohlc); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.WithError(err).
				WithFields(map[string]interface{}{"index": string(ip.Index), "expiry": string(rule)}).
				Error("Unit collection failed")
			if c.metricsEnabled {
				metrics.RecordUnit(string(ip.Index), string(rule), 0, 0, err)
			}
		}
	}

	return nil
}

func (c *Collector) collectUnit(ctx context.Context, ip IndexParams, rule expiry.Rule, atm, indexPrice float64, ohlc market.OHLC) error {
	expiryDate := c.resolver.Resolve(ctx, ip.Index, rule)
	ladder := strikes.Select(atm, ip.StrikesITM, ip.StrikesOTM, ip.Index.StrikeStep())

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	instruments, err := c.provider.OptionInstruments(ctx, ip.Index, expiryDate, ladder)
	if err != nil {
		return err
	}
	if len(instruments) == 0 {
		c.log.WithFields(map[string]interface{}{"index": string(ip.Index), "expiry": string(rule)}).
			Warn("No option instruments for expiry, skipping unit")
		return nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	legs, err := broker.EnrichWithQuotes(ctx, c.provider, instruments)
	if err != nil {
		return err
	}
	if len(legs) == 0 {
		c.log.WithFields(map[string]interface{}{"index": string(ip.Index), "expiry": string(rule)}).
			Warn("No quotes returned for instruments, skipping unit")
		return nil
	}

	ts := c.now()
	if err := c.sink.WriteOptionsData(ip.Index, expiryDate, legs, ts, indexPrice, &ohlc); err != nil {
		return err
	}

	if err := c.mirror.WriteOptionsData(ip.Index, expiryDate, legs, ts); err != nil {
		c.log.WithError(err).WithField("index", string(ip.Index)).
			Warn("Mirror sink write failed")
	}

	if c.metricsEnabled {
		metrics.RecordUnit(string(ip.Index), string(rule), len(legs), storage.PCR(legs), nil)
	}
	return nil
}
