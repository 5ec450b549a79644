package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hh, mm, ss int) time.Time {
	return time.Date(2026, time.August, 24, hh, mm, ss, 0, time.UTC)
}

func TestRoundTo30s(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"exact boundary stays", at(10, 15, 0), at(10, 15, 0)},
		{"exact half stays", at(10, 15, 30), at(10, 15, 30)},
		{"under 15 rounds down", at(10, 15, 14), at(10, 15, 0)},
		{"15 rounds up", at(10, 15, 15), at(10, 15, 30)},
		{"29 rounds up", at(10, 15, 29), at(10, 15, 30)},
		{"44 rounds down to half", at(10, 15, 44), at(10, 15, 30)},
		{"45 rounds up with minute carry", at(10, 15, 45), at(10, 16, 0)},
		{"59 carries minute", at(10, 59, 59), at(11, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundTo30s(tt.in))
		})
	}
}

// The last 15 seconds before midnight wrap the hour to 00:00:00 of the
// same date rather than advancing to the next day. Historical files were
// produced with this behavior, so readers depend on it.
func TestRoundTo30sMidnightWrapsSameDate(t *testing.T) {
	got := RoundTo30s(at(23, 59, 45))
	assert.Equal(t, at(0, 0, 0), got)
	assert.Equal(t, 24, got.Day())
}

func TestRoundTo30sIdempotent(t *testing.T) {
	inputs := []time.Time{
		at(10, 15, 7), at(10, 15, 22), at(10, 15, 44), at(10, 59, 59), at(23, 59, 45),
	}
	for _, in := range inputs {
		once := RoundTo30s(in)
		assert.Equal(t, once, RoundTo30s(once))
	}
}
