package tables

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tsawler/tablescan/model"
)

// Layout is the detected grid of one image.
type Layout struct {
	// Image size the layout was detected on
	Width  int
	Height int

	// Candidates before deduplication, per axis
	VerticalCandidates   int
	HorizontalCandidates int

	// Deduplicated grid lines, in pairs, ordered by index
	Vertical   []Line
	Horizontal []Line

	// Paired line positions: Columns from vertical lines (x), Rows from
	// horizontal lines (y)
	Columns []model.Interval
	Rows    []model.Interval

	// Whether an odd line count left a trailing line unpaired
	UnpairedVertical   bool
	UnpairedHorizontal bool

	// Inset applied to every cell rectangle
	Inset int
}

// Positions returns the index of every line, in order.
func Positions(lines []Line) []int {
	positions := make([]int, len(lines))
	for i, l := range lines {
		positions[i] = l.Index
	}
	return positions
}

// Pair groups positions into disjoint consecutive pairs. With an odd count the
// last position is left out and unpaired is true.
func Pair(positions []int) (pairs []model.Interval, unpaired bool) {
	for i := 0; i+1 < len(positions); i += 2 {
		pairs = append(pairs, model.Interval{Start: positions[i], End: positions[i+1]})
	}
	return pairs, len(positions)%2 == 1
}

// Assemble returns the row-major cell rectangles for every (row, column)
// interval combination, each shrunk by inset on every side. Rectangles of
// pairs closer than 2*inset are empty; see model.Rect.Empty.
func Assemble(rows, cols []model.Interval, inset int) [][]model.Rect {
	cells := make([][]model.Rect, len(rows))
	for i, r := range rows {
		cells[i] = make([]model.Rect, len(cols))
		for j, c := range cols {
			cells[i][j] = model.CellRect(c, r, inset)
		}
	}
	return cells
}

// Cells returns the row-major cell rectangles of the layout
func (l *Layout) Cells() [][]model.Rect {
	return Assemble(l.Rows, l.Columns, l.Inset)
}

// Table returns an unrecognized table shaped like the layout
func (l *Layout) Table() *model.Table {
	return model.NewTable(l.Rows, l.Columns, l.Inset)
}

// Empty reports whether the layout has no cells
func (l *Layout) Empty() bool {
	return len(l.Rows) == 0 || len(l.Columns) == 0
}

// DegenerateCells returns the positions of cells whose rectangle is empty
// after the inset.
func (l *Layout) DegenerateCells() [][2]int {
	var out [][2]int
	for i, row := range l.Cells() {
		for j, rect := range row {
			if rect.Empty() {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// Regularity measures how evenly the grid is spaced, from 0 (irregular) to
// 1 (all rows the same height and all columns the same width). Timetables
// and forms usually score high; a low score often means a missed border.
func (l *Layout) Regularity() float64 {
	if l.Empty() {
		return 0
	}
	return (spacingScore(l.Rows) + spacingScore(l.Columns)) / 2
}

// spacingScore is 1 minus the coefficient of variation of interval lengths
func spacingScore(intervals []model.Interval) float64 {
	if len(intervals) < 2 {
		return 1
	}
	lengths := make([]float64, len(intervals))
	for i, iv := range intervals {
		lengths[i] = float64(iv.Len())
	}
	mean, std := stat.PopMeanStdDev(lengths, nil)
	if mean <= 0 {
		return 0
	}
	return math.Max(0, 1-std/mean)
}
