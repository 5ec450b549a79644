package expiry

import "time"

// expiryWeekday is the contract expiry day for the tracked indices.
const expiryWeekday = time.Thursday

// DateOf normalizes a timestamp to its calendar day (midnight UTC). All
// expiry dates in this package are calendar days.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextWeeklyExpiry returns the next expiry weekday strictly after today.
// When today already is the expiry weekday the result is a full week out,
// never today.
func NextWeeklyExpiry(today time.Time) time.Time {
	today = DateOf(today)
	days := (int(expiryWeekday) - int(today.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

// MonthlyExpiryOf returns the last expiry weekday on or before the last
// calendar day of ref's month.
func MonthlyExpiryOf(ref time.Time) time.Time {
	firstOfNext := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	lastDay := firstOfNext.AddDate(0, 0, -1)
	back := (int(lastDay.Weekday()) - int(expiryWeekday) + 7) % 7
	return lastDay.AddDate(0, 0, -back)
}

// HeuristicDates is the deterministic fallback pair used when no live
// expiry data exists: the next two weekly expiries.
func HeuristicDates(today time.Time) []time.Time {
	thisWeek := NextWeeklyExpiry(today)
	return []time.Time{thisWeek, thisWeek.AddDate(0, 0, 7)}
}

// FallbackExpiry resolves a rule without any live data. Unknown rules get
// the weekly date.
func FallbackExpiry(today time.Time, rule Rule) time.Time {
	thisWeek := NextWeeklyExpiry(today)

	switch rule {
	case ThisWeek:
		return thisWeek
	case NextWeek:
		return thisWeek.AddDate(0, 0, 7)
	case ThisMonth:
		return MonthlyExpiryOf(today)
	case NextMonth:
		firstOfNext := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return MonthlyExpiryOf(firstOfNext)
	default:
		return thisWeek
	}
}
