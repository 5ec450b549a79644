package collector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridsix/g6/internal/broker"
	"github.com/gridsix/g6/internal/expiry"
	"github.com/gridsix/g6/internal/market"
	"github.com/gridsix/g6/internal/storage"
	"github.com/gridsix/g6/pkg/logger"
)

// countingSink counts mirror writes and optionally fails.
type countingSink struct {
	writes int
	err    error
}

func (c *countingSink) WriteOptionsData(market.Index, time.Time, map[string]broker.OptionLeg, time.Time) error {
	c.writes++
	return c.err
}

func newTestCollector(t *testing.T, params Params) (*Collector, *storage.CsvSink) {
	t.Helper()

	provider := broker.NewSimProvider()
	resolver := expiry.NewResolver(provider, logger.Nop())
	sink, err := storage.NewCsvSink(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	col := New(provider, resolver, sink, params, logger.Nop()).
		WithMetrics(false)
	return col, sink
}

func singleIndexParams(index market.Index, rules ...expiry.Rule) Params {
	return Params{Indices: []IndexParams{{
		Index:      index,
		Expiries:   rules,
		StrikesITM: 1,
		StrikesOTM: 1,
	}}}
}

func TestRunCycleWritesSnapshots(t *testing.T) {
	col, sink := newTestCollector(t, singleIndexParams(market.Nifty, expiry.ThisWeek))

	require.NoError(t, col.RunCycle(context.Background()))

	// One strike each side of ATM 24800 gives offsets -50, 0 and +50.
	today := time.Now().Format("2006-01-02")
	for _, offset := range []string{"-50", "0", "+50"} {
		path := filepath.Join(sink.BaseDir(), "NIFTY", "this_week", offset, today+".csv")
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected snapshot file at %s", path)
	}

	overview := filepath.Join(sink.BaseDir(), "overview", "NIFTY", today+".csv")
	_, err := os.Stat(overview)
	assert.NoError(t, err)
}

func TestRunCycleMultipleRules(t *testing.T) {
	col, sink := newTestCollector(t,
		singleIndexParams(market.Nifty, expiry.ThisWeek, expiry.NextMonth))

	require.NoError(t, col.RunCycle(context.Background()))

	today := time.Now().Format("2006-01-02")
	thisWeek := filepath.Join(sink.BaseDir(), "NIFTY", "this_week", "0", today+".csv")
	_, err := os.Stat(thisWeek)
	assert.NoError(t, err)

	// The next-month expiry files under the bucket its date classifies to,
	// which is always beyond this_week.
	entries, err := os.ReadDir(filepath.Join(sink.BaseDir(), "NIFTY"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(entries), 2)
}

func TestRunCycleMirrorBestEffort(t *testing.T) {
	mirror := &countingSink{err: os.ErrPermission}
	col, _ := newTestCollector(t, singleIndexParams(market.Nifty, expiry.ThisWeek))
	col.WithMirror(mirror)

	// A failing mirror never fails the cycle.
	require.NoError(t, col.RunCycle(context.Background()))
	assert.Equal(t, 1, mirror.writes)
}

func TestRunCycleSkipsWhenMarketClosed(t *testing.T) {
	col, sink := newTestCollector(t, singleIndexParams(market.Nifty, expiry.ThisWeek))
	col.WithMarketHours(true)
	// Saturday midday IST.
	col.now = func() time.Time {
		return time.Date(2026, time.August, 29, 12, 0, 0, 0, market.IST)
	}

	require.NoError(t, col.RunCycle(context.Background()))

	entries, err := os.ReadDir(sink.BaseDir())
	require.NoError(t, err)
	assert.Empty(t, entries, "closed market must not produce files")
}

func TestRunCycleHonorsCancellation(t *testing.T) {
	col, _ := newTestCollector(t, singleIndexParams(market.Nifty, expiry.ThisWeek))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := col.RunCycle(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunCycleSkipsDisabledIndices(t *testing.T) {
	params := Params{Indices: []IndexParams{
		{Index: market.Nifty, Disabled: true, Expiries: []expiry.Rule{expiry.ThisWeek}, StrikesITM: 1, StrikesOTM: 1},
		{Index: market.Sensex, Expiries: []expiry.Rule{expiry.ThisWeek}, StrikesITM: 1, StrikesOTM: 1},
	}}
	col, sink := newTestCollector(t, params)

	require.NoError(t, col.RunCycle(context.Background()))

	_, err := os.Stat(filepath.Join(sink.BaseDir(), "NIFTY"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(sink.BaseDir(), "SENSEX"))
	assert.NoError(t, err)
}
