// Package charts turns aggregate and time-series payloads into the
// geometry the templates render: bar widths, pie slice arcs and line
// chart layouts. Everything here is pure computation over value types.
package charts

// palette is the fixed category color cycle. Colors are assigned by
// position in the rendered order, not by category name, and wrap around
// when a view has more categories than colors.
var palette = []string{
	"#4E79A7",
	"#F28E2B",
	"#E15759",
	"#76B7B2",
	"#59A14F",
	"#EDC948",
	"#B07AA1",
	"#FF9DA7",
	"#9C755F",
	"#BAB0AC",
}

// ColorForIndex returns the palette color for a display position.
func ColorForIndex(i int) string {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

// PaletteSize returns the number of distinct colors before wrapping.
func PaletteSize() int {
	return len(palette)
}
