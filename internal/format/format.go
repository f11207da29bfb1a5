// Package format holds the pure display formatters shared by templates,
// CSV export and JSON fallbacks. Every function is deterministic for a
// given input; none touch locale state.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// Currency formats an amount as a dollar string with exactly two decimal
// places and thousands separators, e.g. 1234.5 -> "$1,234.50".
// Negative amounts keep the sign ahead of the dollar: -42 -> "-$42.00".
func Currency(amount float64) string {
	neg := math.Signbit(amount) && amount != 0
	abs := math.Abs(amount)

	whole := int64(abs)
	cents := int64(math.Round((abs - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents -= 100
	}

	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	out := fmt.Sprintf("$%s.%02d", b.String(), cents)
	if neg {
		out = "-" + out
	}
	return out
}

// Percent formats a ratio already expressed in percent units with one
// decimal place, e.g. 23.456 -> "23.5%".
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// MonthLabel converts a "YYYY-MM" month key into a human label,
// e.g. "2024-03" -> "March 2024". Unparseable input is returned as-is
// so a bad key degrades visibly instead of panicking.
func MonthLabel(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

// DateLabel renders a timestamp as the short axis label used on charts.
func DateLabel(t time.Time) string {
	return t.Format("Jan 2")
}

// TrendGlyph maps a trend direction to its indicator arrow.
func TrendGlyph(d models.TrendDirection) string {
	switch d {
	case models.TrendIncreasing:
		return "↑"
	case models.TrendDecreasing:
		return "↓"
	default:
		return "→"
	}
}

// TrendColor maps a trend direction to a semantic color name. Increased
// spending reads as bad, so increasing is red and decreasing green.
func TrendColor(d models.TrendDirection) string {
	switch d {
	case models.TrendIncreasing:
		return "red"
	case models.TrendDecreasing:
		return "green"
	default:
		return "gray"
	}
}

// TrendMagnitude renders the percentage-change magnitude next to a trend
// glyph: always the absolute value with one decimal, never a minus sign.
// Direction is carried by the glyph and color alone.
func TrendMagnitude(percentageChange float64) string {
	return fmt.Sprintf("%.1f%%", math.Abs(percentageChange))
}
