package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ist(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, IST)
}

func TestIsOpen(t *testing.T) {
	// 2026-08-24 is a Monday.
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before open", ist(2026, time.August, 24, 9, 14), false},
		{"at open", ist(2026, time.August, 24, 9, 15), true},
		{"midday", ist(2026, time.August, 24, 12, 0), true},
		{"last minute", ist(2026, time.August, 24, 15, 29), true},
		{"at close", ist(2026, time.August, 24, 15, 30), false},
		{"saturday", ist(2026, time.August, 29, 12, 0), false},
		{"sunday", ist(2026, time.August, 30, 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOpen(tt.t))
		})
	}
}

func TestIsOpenConvertsTimezone(t *testing.T) {
	// 06:30 UTC is 12:00 IST on a weekday.
	assert.True(t, IsOpen(time.Date(2026, time.August, 24, 6, 30, 0, 0, time.UTC)))
	// 11:00 UTC is 16:30 IST, after close.
	assert.False(t, IsOpen(time.Date(2026, time.August, 24, 11, 0, 0, 0, time.UTC)))
}

func TestNextOpen(t *testing.T) {
	// Same day before open.
	got := NextOpen(ist(2026, time.August, 24, 8, 0))
	assert.Equal(t, ist(2026, time.August, 24, 9, 15), got)

	// After close rolls to the next day.
	got = NextOpen(ist(2026, time.August, 24, 16, 0))
	assert.Equal(t, ist(2026, time.August, 25, 9, 15), got)

	// Friday evening rolls over the weekend. 2026-08-28 is a Friday.
	got = NextOpen(ist(2026, time.August, 28, 16, 0))
	assert.Equal(t, ist(2026, time.August, 31, 9, 15), got)
}
