package storage

import (
	"fmt"
	"time"
)

// Bucket classifies an expiry date by its proximity to today. It shares
// the rule vocabulary but is derived independently of whatever rule the
// caller resolved the date with: a date requested as next_month that falls
// within seven days files under this_week. Existing readers depend on this
// coupling, so it is preserved deliberately.
type Bucket string

const (
	BucketThisWeek  Bucket = "this_week"
	BucketNextWeek  Bucket = "next_week"
	BucketThisMonth Bucket = "this_month"
	BucketNextMonth Bucket = "next_month"
)

// Buckets lists the four buckets in overview column order.
func Buckets() []Bucket {
	return []Bucket{BucketThisWeek, BucketNextWeek, BucketThisMonth, BucketNextMonth}
}

// ParseBucket maps a name to a known bucket.
func ParseBucket(name string) (Bucket, error) {
	for _, b := range Buckets() {
		if string(b) == name {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown bucket %q", name)
}

// ClassifyExpiry derives the bucket for an expiry date relative to today:
// within 7 days this_week, within 14 next_week, otherwise this_month when
// the months match, else next_month.
func ClassifyExpiry(expiry, today time.Time) Bucket {
	days := int(dayOf(expiry).Sub(dayOf(today)).Hours() / 24)

	switch {
	case days <= 7:
		return BucketThisWeek
	case days <= 14:
		return BucketNextWeek
	case expiry.Month() == today.Month():
		return BucketThisMonth
	default:
		return BucketNextMonth
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
