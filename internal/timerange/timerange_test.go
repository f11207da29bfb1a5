package timerange

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	for _, tok := range []string{"7d", "30d", "3m", "6m", "1y"} {
		r, err := Parse(tok)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tok, err)
		}
		if string(r) != tok {
			t.Errorf("Parse(%q) = %q", tok, r)
		}
	}
	if _, err := Parse("90d"); err == nil {
		t.Error("Parse should reject unknown tokens")
	}
	if _, err := Parse(""); err == nil {
		t.Error("Parse should reject the empty token")
	}
}

func TestBoundsCalendarAware(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		r         Range
		wantStart time.Time
	}{
		{Last7Days, time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)},
		{Last30Days, time.Date(2024, 2, 9, 12, 0, 0, 0, time.UTC)},
		{Last3Months, time.Date(2023, 12, 10, 12, 0, 0, 0, time.UTC)},
		{Last6Months, time.Date(2023, 9, 10, 12, 0, 0, 0, time.UTC)},
		{LastYear, time.Date(2023, 3, 10, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		start, end := tt.r.Bounds(now)
		if !start.Equal(tt.wantStart) {
			t.Errorf("%s start = %v, want %v", tt.r, start, tt.wantStart)
		}
		if !end.Equal(now) {
			t.Errorf("%s end = %v, want now", tt.r, end)
		}
	}
}

func TestBoundsOrdering(t *testing.T) {
	// Wider ranges must start earlier, checked from a leap-February
	// date to exercise month-length variation.
	now := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	var prev time.Time
	for i, r := range Ranges {
		start, end := r.Bounds(now)
		if !start.Before(end) {
			t.Errorf("%s: start %v not before end %v", r, start, end)
		}
		if i > 0 && start.After(prev) {
			t.Errorf("%s starts after the next-narrower range", r)
		}
		prev = start
	}
}
