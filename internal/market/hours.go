package market

import "time"

// IST is the exchange timezone. A fixed offset avoids depending on the host
// tzdata being present.
var IST = time.FixedZone("IST", 5*3600+1800)

const (
	openHour    = 9
	openMinute  = 15
	closeHour   = 15
	closeMinute = 30
)

// IsOpen reports whether the equity cash session is open at t
// (Mon-Fri 09:15-15:30 IST). Exchange holidays are not modelled.
func IsOpen(t time.Time) bool {
	t = t.In(IST)

	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	minutes := t.Hour()*60 + t.Minute()
	return minutes >= openHour*60+openMinute && minutes < closeHour*60+closeMinute
}

// NextOpen returns the next session open at or after t.
func NextOpen(t time.Time) time.Time {
	t = t.In(IST)

	for {
		open := time.Date(t.Year(), t.Month(), t.Day(), openHour, openMinute, 0, 0, IST)
		if t.Before(open) && open.Weekday() != time.Saturday && open.Weekday() != time.Sunday {
			return open
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, IST).AddDate(0, 0, 1)
	}
}
