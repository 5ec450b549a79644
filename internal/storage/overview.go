package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gridsix/g6/internal/market"
)

// overviewHeader is the fixed 7-column overview schema.
var overviewHeader = []string{
	"timestamp", "index",
	"pcr_this_week", "pcr_next_week", "pcr_this_month", "pcr_next_month",
	"day_width",
}

// WriteOverview appends one rolling-summary row for the index. Only the
// PCR slot of the bucket that produced this call is populated; the other
// three are written as 0, not carried forward from earlier rows. Each
// physical row is fully determined by the single call that produced it;
// readers needing the full picture use ReconstructOverview. The index
// price is part of the aggregator contract but not of the row schema.
func (s *CsvSink) WriteOverview(index market.Index, bucket Bucket, pcr, dayWidth float64, ts time.Time, _ float64) error {
	overviewDir := filepath.Join(s.baseDir, "overview", string(index))
	if err := os.MkdirAll(overviewDir, 0o755); err != nil {
		return fmt.Errorf("create overview dir: %w", err)
	}

	slots := map[Bucket]float64{bucket: pcr}

	row := []string{
		RoundTo30s(ts).Format(rowTimeFormat),
		string(index),
		formatFloat(slots[BucketThisWeek]),
		formatFloat(slots[BucketNextWeek]),
		formatFloat(slots[BucketThisMonth]),
		formatFloat(slots[BucketNextMonth]),
		formatFloat(dayWidth),
	}

	path := filepath.Join(overviewDir, ts.Format(fileDateFormat)+".csv")
	if err := appendRow(path, overviewHeader, row); err != nil {
		return fmt.Errorf("append overview row %s: %w", path, err)
	}

	s.log.WithFields(map[string]interface{}{
		"index":  index,
		"bucket": bucket,
		"pcr":    pcr,
	}).Debug("Overview row written")

	return nil
}

// ReconstructOverview folds a day's overview rows into one logical record
// holding the latest non-zero PCR per bucket slot. It exists because each
// physical row zeroes the slots it did not compute; this helper is the
// documented way to read the day's state back.
func ReconstructOverview(records []OverviewRecord) (OverviewRecord, bool) {
	if len(records) == 0 {
		return OverviewRecord{}, false
	}

	merged := OverviewRecord{}
	for _, rec := range records {
		merged.Timestamp = rec.Timestamp
		merged.Index = rec.Index
		if rec.PCRThisWeek != 0 {
			merged.PCRThisWeek = rec.PCRThisWeek
		}
		if rec.PCRNextWeek != 0 {
			merged.PCRNextWeek = rec.PCRNextWeek
		}
		if rec.PCRThisMonth != 0 {
			merged.PCRThisMonth = rec.PCRThisMonth
		}
		if rec.PCRNextMonth != 0 {
			merged.PCRNextMonth = rec.PCRNextMonth
		}
		if rec.DayWidth != 0 {
			merged.DayWidth = rec.DayWidth
		}
	}

	return merged, true
}
