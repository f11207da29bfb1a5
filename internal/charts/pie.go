package charts

import (
	"fmt"
	"math"

	"github.com/yabelyaev/N3xFin/internal/models"
)

// Slice is one pie wedge. Angles are degrees clockwise from 12 o'clock;
// StartAngle of the first slice is 0 and each slice begins where the
// previous one ended, so spans always sum to 360 (within float error).
type Slice struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Share      float64 `json:"share"` // fraction of total, 0..1
	StartAngle float64 `json:"startAngle"`
	SpanAngle  float64 `json:"spanAngle"`
	Color      string  `json:"color"`
	Path       string  `json:"path"`
}

// fullCircleSpan keeps a 100%-share slice renderable: an SVG arc whose
// start and end coincide draws nothing, so the span is clamped just
// short of a full turn.
const fullCircleSpan = 359.999

// BuildPie converts aggregates (already in display order) into pie
// slices around a circle of the given center and radius. Shares are
// recomputed from the raw amounts so the spans close the circle exactly,
// independent of any rounding in upstream percentages. Zero-amount
// slices get zero span; an all-zero or empty input returns nil.
func BuildPie(aggs []models.CategoryAggregate, cx, cy, r float64) []Slice {
	if len(aggs) == 0 {
		return nil
	}

	var total float64
	for _, a := range aggs {
		total += a.TotalAmount
	}
	if total <= 0 {
		return nil
	}

	slices := make([]Slice, len(aggs))
	cursor := 0.0
	for i, a := range aggs {
		share := a.TotalAmount / total
		span := share * 360
		drawSpan := span
		if drawSpan >= 360 {
			drawSpan = fullCircleSpan
		}
		slices[i] = Slice{
			Category:   a.Category,
			Amount:     a.TotalAmount,
			Share:      share,
			StartAngle: cursor,
			SpanAngle:  span,
			Color:      ColorForIndex(i),
			Path:       ArcPath(cx, cy, r, cursor, drawSpan),
		}
		cursor += span
	}
	return slices
}

// ArcPath builds the SVG path for a filled wedge from startAngle
// spanning span degrees, both measured clockwise from 12 o'clock.
// The large-arc flag flips when the span exceeds half the circle.
func ArcPath(cx, cy, r, startAngle, span float64) string {
	x1, y1 := arcPoint(cx, cy, r, startAngle)
	x2, y2 := arcPoint(cx, cy, r, startAngle+span)

	largeArc := 0
	if span > 180 {
		largeArc = 1
	}

	return fmt.Sprintf("M %.3f %.3f L %.3f %.3f A %.3f %.3f 0 %d 1 %.3f %.3f Z",
		cx, cy, x1, y1, r, r, largeArc, x2, y2)
}

// arcPoint converts a clockwise-from-top angle in degrees to a point on
// the circle. SVG's y axis grows downward, hence the minus on cosine.
func arcPoint(cx, cy, r, angleDeg float64) (float64, float64) {
	rad := angleDeg * math.Pi / 180
	return cx + r*math.Sin(rad), cy - r*math.Cos(rad)
}
