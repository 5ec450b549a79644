package expiry

import (
	"context"
	"sort"
	"time"

	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/pkg/logger"
)

// DateSource supplies raw expiry dates for an index. The live broker
// binding and the synthetic provider both satisfy this.
type DateSource interface {
	ExpiryDates(ctx context.Context, index market.Index) ([]time.Time, error)
}

// Resolver turns abstract expiry rules into concrete calendar dates.
// Lookups are cached per index for the process lifetime and every failure
// degrades to a deterministic heuristic; Resolve never fails.
type Resolver struct {
	source DateSource
	log    *logger.Logger
	cache  *dateCache
	now    func() time.Time

	// strategies are evaluated in order until one yields dates. The order
	// is fixed: live lookup first, heuristic last.
	strategies []datesStrategy
}

// datesStrategy is one step of the resolution chain. fetch reports
// failure instead of raising so the chain stays auditable.
type datesStrategy struct {
	name  string
	fetch func(ctx context.Context, index market.Index) ([]time.Time, bool)
}

// NewResolver creates a Resolver over the given date source.
func NewResolver(source DateSource, log *logger.Logger) *Resolver {
	r := &Resolver{
		source: source,
		log:    log.WithField("module", "expiry"),
		cache:  newDateCache(),
		now:    time.Now,
	}

	r.strategies = []datesStrategy{
		{name: "live_lookup", fetch: r.liveLookup},
		{name: "heuristic", fetch: r.heuristic},
	}

	return r
}

// ExpiryDates returns the sorted future expiry dates for the index,
// consulting the cache first. The heuristic tail of the strategy chain
// guarantees a non-empty result.
func (r *Resolver) ExpiryDates(ctx context.Context, index market.Index) []time.Time {
	if dates, ok := r.cache.get(index); ok {
		return dates
	}

	for _, s := range r.strategies {
		dates, ok := s.fetch(ctx, index)
		if !ok {
			continue
		}

		r.cache.put(index, dates)
		r.log.WithFields(map[string]interface{}{
			"index":    index,
			"strategy": s.name,
			"count":    len(dates),
		}).Info("Expiry dates resolved")
		return dates
	}

	// Unreachable: the heuristic strategy always succeeds.
	return nil
}

// liveLookup queries the provider and normalizes its answer: distinct
// future dates, ascending. An error or an empty answer is a failure.
func (r *Resolver) liveLookup(ctx context.Context, index market.Index) ([]time.Time, bool) {
	raw, err := r.source.ExpiryDates(ctx, index)
	if err != nil {
		r.log.WithError(err).WithField("index", index).Warn("Live expiry lookup failed")
		return nil, false
	}

	today := DateOf(r.now())
	seen := make(map[time.Time]bool, len(raw))
	dates := make([]time.Time, 0, len(raw))
	for _, d := range raw {
		day := DateOf(d)
		if day.Before(today) || seen[day] {
			continue
		}
		seen[day] = true
		dates = append(dates, day)
	}

	if len(dates) == 0 {
		return nil, false
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, true
}

// heuristic never fails: the next two weekly expiries.
func (r *Resolver) heuristic(_ context.Context, index market.Index) ([]time.Time, bool) {
	dates := HeuristicDates(r.now())
	r.log.WithFields(map[string]interface{}{
		"index": index,
		"dates": dates,
	}).Info("Using heuristic expiry dates")
	return dates, true
}

// Resolve maps a rule to a concrete expiry date for the index. Unknown
// rules resolve permissively to the first available date. Resolve never
// returns an error; with no usable data it falls back to the heuristic.
func (r *Resolver) Resolve(ctx context.Context, index market.Index, rule Rule) time.Time {
	dates := r.ExpiryDates(ctx, index)
	if len(dates) == 0 {
		return FallbackExpiry(DateOf(r.now()), rule)
	}

	// Monthly-only indices have no weekly contracts; weekly rules take the
	// monthly branch.
	if index.MonthlyOnly() && (rule == ThisWeek || rule == NextWeek) {
		rule = ThisMonth
	}

	monthlies := monthlyOf(dates)

	switch rule {
	case ThisWeek:
		return dates[0]

	case NextWeek:
		if len(dates) >= 2 {
			return dates[1]
		}
		return dates[0]

	case ThisMonth:
		if len(monthlies) > 0 {
			return monthlies[0]
		}
		return dates[0]

	case NextMonth:
		if len(monthlies) >= 2 {
			return monthlies[1]
		}
		if len(monthlies) == 1 {
			return monthlies[0]
		}
		return dates[0]

	default:
		r.log.WithFields(map[string]interface{}{
			"index": index,
			"rule":  rule,
		}).Warn("Unknown expiry rule, using first available date")
		return dates[0]
	}
}

// WeeklyExpiries returns the first two upcoming expiries for the index.
func (r *Resolver) WeeklyExpiries(ctx context.Context, index market.Index) []time.Time {
	dates := r.ExpiryDates(ctx, index)
	if len(dates) > 2 {
		dates = dates[:2]
	}
	return dates
}

// MonthlyExpiries returns the designated monthly expiry (last date of each
// month group) for each month with listed contracts.
func (r *Resolver) MonthlyExpiries(ctx context.Context, index market.Index) []time.Time {
	return monthlyOf(r.ExpiryDates(ctx, index))
}

// Invalidate drops the cached dates for an index, forcing the next call to
// run the strategy chain again.
func (r *Resolver) Invalidate(index market.Index) {
	r.cache.invalidate(index)
}

// monthlyOf collapses a sorted date list to the last date of each
// (year, month) group, preserving month order.
func monthlyOf(dates []time.Time) []time.Time {
	var out []time.Time
	for _, d := range dates {
		if n := len(out); n > 0 && out[n-1].Year() == d.Year() && out[n-1].Month() == d.Month() {
			out[n-1] = d
			continue
		}
		out = append(out, d)
	}
	return out
}
