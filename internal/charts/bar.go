package charts

import "github.com/yabelyaev/N3xFin/internal/models"

// Bar is one horizontal bar in the category breakdown, sized relative to
// the largest amount on screen.
type Bar struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	WidthPct float64 `json:"widthPct"`
	Color    string  `json:"color"`
}

// BuildBars converts aggregates (already in display order) into bars.
// The largest amount maps to 100% width and the rest scale linearly.
// If every amount is zero the bars all get zero width rather than
// dividing by zero. An empty input returns nil so the caller renders
// its no-data state.
func BuildBars(aggs []models.CategoryAggregate) []Bar {
	if len(aggs) == 0 {
		return nil
	}

	var max float64
	for _, a := range aggs {
		if a.TotalAmount > max {
			max = a.TotalAmount
		}
	}

	bars := make([]Bar, len(aggs))
	for i, a := range aggs {
		width := 0.0
		if max > 0 {
			width = 100 * a.TotalAmount / max
		}
		bars[i] = Bar{
			Category: a.Category,
			Amount:   a.TotalAmount,
			WidthPct: width,
			Color:    ColorForIndex(i),
		}
	}
	return bars
}
