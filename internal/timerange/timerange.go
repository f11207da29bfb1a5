// Package timerange maps the dashboard's range tokens to concrete date
// bounds. Month and year ranges are calendar-aware rather than
// fixed-day approximations.
package timerange

import (
	"fmt"
	"time"
)

// Range is a selectable dashboard time window.
type Range string

const (
	Last7Days   Range = "7d"
	Last30Days  Range = "30d"
	Last3Months Range = "3m"
	Last6Months Range = "6m"
	LastYear    Range = "1y"
)

// Default is the window shown before the user picks one.
const Default = Last30Days

// Ranges lists the selectable windows in display order.
var Ranges = []Range{Last7Days, Last30Days, Last3Months, Last6Months, LastYear}

// Parse validates a range token. Unknown tokens are an error so the
// handler can fall back to the default explicitly.
func Parse(s string) (Range, error) {
	switch Range(s) {
	case Last7Days, Last30Days, Last3Months, Last6Months, LastYear:
		return Range(s), nil
	}
	return "", fmt.Errorf("unknown time range %q", s)
}

// Bounds resolves the range to [start, end] where end is now and start
// is the window's distance back. Day ranges subtract days; month and
// year ranges use calendar arithmetic, so "3m" from March 10 lands on
// December 10 regardless of the month lengths in between.
func (r Range) Bounds(now time.Time) (time.Time, time.Time) {
	switch r {
	case Last7Days:
		return now.AddDate(0, 0, -7), now
	case Last30Days:
		return now.AddDate(0, 0, -30), now
	case Last3Months:
		return now.AddDate(0, -3, 0), now
	case Last6Months:
		return now.AddDate(0, -6, 0), now
	case LastYear:
		return now.AddDate(-1, 0, 0), now
	}
	return now.AddDate(0, 0, -30), now
}

// Label is the human name shown on the range selector.
func (r Range) Label() string {
	switch r {
	case Last7Days:
		return "Last 7 days"
	case Last30Days:
		return "Last 30 days"
	case Last3Months:
		return "Last 3 months"
	case Last6Months:
		return "Last 6 months"
	case LastYear:
		return "Last year"
	}
	return string(r)
}
