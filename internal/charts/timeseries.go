package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/yabelyaev/N3xFin/internal/format"
	"github.com/yabelyaev/N3xFin/internal/models"
)

// Viewport is the drawing area for a time-series layout. Padding insets
// the plot on all four sides.
type Viewport struct {
	Width   float64
	Height  float64
	Padding float64
}

// DefaultViewport matches the dashboard's line chart SVG.
var DefaultViewport = Viewport{Width: 800, Height: 300, Padding: 40}

// PlotPoint is a series point mapped into viewport coordinates.
type PlotPoint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Amount float64 `json:"amount"`
	Label  string  `json:"label"`
}

// GridLine is a horizontal reference line with its dollar label.
type GridLine struct {
	Y     float64 `json:"y"`
	Label string  `json:"label"`
}

// AxisLabel is an x-axis date label anchored under its point.
type AxisLabel struct {
	X    float64 `json:"x"`
	Text string  `json:"text"`
}

// Layout is the full geometry for one line chart: plotted points, the
// polyline path, horizontal grid lines and the thinned x-axis labels.
type Layout struct {
	Points    []PlotPoint `json:"points"`
	Path      string      `json:"path"`
	GridLines []GridLine  `json:"gridLines"`
	XLabels   []AxisLabel `json:"xLabels"`
}

// LayoutSeries maps chronological points into the viewport. X positions
// come from ordinal index with even spacing (a single point sits at the
// left edge of the plot). The y scale runs from min(0, smallest amount)
// to the largest amount, inverted because SVG y grows downward; a flat
// series sits on the vertical center of the plot. Grid lines split the
// value range in quarters and x labels are thinned to at most six.
// Empty input returns nil so the caller renders its no-data state.
func LayoutSeries(points []models.TimeSeriesPoint, vp Viewport) *Layout {
	if len(points) == 0 {
		return nil
	}

	plotW := vp.Width - 2*vp.Padding
	plotH := vp.Height - 2*vp.Padding

	minV := 0.0
	maxV := points[0].Amount
	for _, p := range points {
		if p.Amount < minV {
			minV = p.Amount
		}
		if p.Amount > maxV {
			maxV = p.Amount
		}
	}
	valueRange := maxV - minV

	xFor := func(i int) float64 {
		if len(points) == 1 {
			return vp.Padding
		}
		return vp.Padding + plotW*float64(i)/float64(len(points)-1)
	}
	yFor := func(amount float64) float64 {
		if valueRange == 0 {
			return vp.Padding + plotH/2
		}
		return vp.Padding + plotH - (amount-minV)/valueRange*plotH
	}

	layout := &Layout{Points: make([]PlotPoint, len(points))}
	var path strings.Builder
	for i, p := range points {
		x, y := xFor(i), yFor(p.Amount)
		layout.Points[i] = PlotPoint{
			X:      x,
			Y:      y,
			Amount: p.Amount,
			Label:  format.DateLabel(p.Timestamp),
		}
		if i == 0 {
			fmt.Fprintf(&path, "M %.3f %.3f", x, y)
		} else {
			fmt.Fprintf(&path, " L %.3f %.3f", x, y)
		}
	}
	layout.Path = path.String()

	for _, frac := range []float64{0, 0.25, 0.5, 0.75, 1} {
		value := minV + frac*valueRange
		layout.GridLines = append(layout.GridLines, GridLine{
			Y:     yFor(value),
			Label: fmt.Sprintf("$%d", int(math.Round(value))),
		})
	}

	step := int(math.Ceil(float64(len(points)) / 6))
	for i := 0; i < len(points); i += step {
		layout.XLabels = append(layout.XLabels, AxisLabel{
			X:    xFor(i),
			Text: format.DateLabel(points[i].Timestamp),
		})
	}

	return layout
}
