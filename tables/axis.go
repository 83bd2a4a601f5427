package tables

import "github.com/tsawler/tablescan/raster"

// Axis selects a scan direction.
type Axis int

const (
	// Vertical scans each column x over y. Its lines are column borders,
	// indexed by x.
	Vertical Axis = iota
	// Horizontal scans each row y over x. Its lines are row borders,
	// indexed by y.
	Horizontal
)

// String returns the axis name
func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// extent returns the number of scan lines and the length of each one.
func (a Axis) extent(g raster.Grid) (indices, length int) {
	if a == Vertical {
		return g.Width(), g.Height()
	}
	return g.Height(), g.Width()
}

// at reads the pixel at position pos along scan line index.
func (a Axis) at(g raster.Grid, index, pos int) uint8 {
	if a == Vertical {
		return g.Intensity(index, pos)
	}
	return g.Intensity(pos, index)
}

// Run is a maximal span of dark pixels on one scan line.
// End is the position of the first light pixel after the span.
type Run struct {
	Index int
	Start int
	End   int
}

// Segment is one or more merged runs on a single scan line.
type Segment struct {
	Start int
	End   int
}

// Len returns End - Start
func (s Segment) Len() int {
	return s.End - s.Start
}

// Line is a grid line candidate or a confirmed grid line.
// Index is the fixed coordinate (x for Vertical, y for Horizontal);
// Start and End bound the varying coordinate.
type Line struct {
	Axis  Axis
	Index int
	Start int
	End   int
}

// Len returns End - Start
func (l Line) Len() int {
	return l.End - l.Start
}
