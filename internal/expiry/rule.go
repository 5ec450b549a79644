package expiry

// Rule names an abstract expiry selection applied per index.
type Rule string

const (
	ThisWeek  Rule = "this_week"
	NextWeek  Rule = "next_week"
	ThisMonth Rule = "this_month"
	NextMonth Rule = "next_month"
)

// Known reports whether the rule is one of the four defined rules. Unknown
// rules still resolve (permissively, to the first available date); this is
// for config validation only.
func (r Rule) Known() bool {
	switch r {
	case ThisWeek, NextWeek, ThisMonth, NextMonth:
		return true
	}
	return false
}
