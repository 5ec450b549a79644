package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

func TestClassifyExpiry(t *testing.T) {
	today := d(2026, time.August, 24)

	tests := []struct {
		name   string
		expiry time.Time
		want   Bucket
	}{
		{"today", today, BucketThisWeek},
		{"three days out", d(2026, time.August, 27), BucketThisWeek},
		{"exactly seven days", d(2026, time.August, 31), BucketThisWeek},
		{"eight days", d(2026, time.September, 1), BucketNextWeek},
		{"exactly fourteen days", d(2026, time.September, 7), BucketNextWeek},
		{"beyond fortnight, next month", d(2026, time.September, 24), BucketNextMonth},
		{"beyond fortnight, two months out", d(2026, time.October, 29), BucketNextMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyExpiry(tt.expiry, today))
		})
	}
}

func TestClassifyExpirySameMonthBeyondFortnight(t *testing.T) {
	// 2026-08-03 to 2026-08-27 is 24 days out but still August.
	got := ClassifyExpiry(d(2026, time.August, 27), d(2026, time.August, 3))
	assert.Equal(t, BucketThisMonth, got)
}

func TestClassifyExpiryTimeOfDayIgnored(t *testing.T) {
	today := time.Date(2026, time.August, 24, 15, 29, 0, 0, time.UTC)
	expiry := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, BucketThisWeek, ClassifyExpiry(expiry, today))
}

func TestParseBucket(t *testing.T) {
	for _, b := range Buckets() {
		got, err := ParseBucket(string(b))
		assert.NoError(t, err)
		assert.Equal(t, b, got)
	}

	_, err := ParseBucket("someday")
	assert.Error(t, err)
}

func TestOffsetDir(t *testing.T) {
	assert.Equal(t, "+150", OffsetDir(150))
	assert.Equal(t, "-100", OffsetDir(-100))
	assert.Equal(t, "0", OffsetDir(0))
}
