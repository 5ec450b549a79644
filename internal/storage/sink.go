package storage

import (
	"time"

	"github.com/gridsix/g6/internal/broker"
	"github.com/gridsix/g6/internal/market"
)

// Sink is the narrow seam for mirroring snapshots to a secondary store
// (a time-series database, typically). Mirror writes are best-effort; the
// collector logs a mirror failure and keeps going.
type Sink interface {
	WriteOptionsData(index market.Index, expiryDate time.Time, legs map[string]broker.OptionLeg, ts time.Time) error
}

// NullSink discards everything. Used when no mirror is configured.
type NullSink struct{}

func (NullSink) WriteOptionsData(market.Index, time.Time, map[string]broker.OptionLeg, time.Time) error {
	return nil
}
