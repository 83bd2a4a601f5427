package model

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gonum.org/v1/gonum/stat"
)

// Cell represents one recognized table cell
type Cell struct {
	Row  int
	Col  int
	Text string
	// Rect is the inset region handed to the recognizer
	Rect Rect
	// Confidence is the recognizer's mean confidence (0-100 for Tesseract)
	Confidence float64
	// Degenerate marks a cell whose paired lines were too close together to
	// leave a positive region after the inset. Its Text is always empty.
	Degenerate bool
}

// Table represents a table with cells organized in rows and columns.
// Rows may have different lengths.
type Table struct {
	Rows    [][]Cell
	Columns []Interval
	RowSpan []Interval
	// Bounds covers every paired grid line, or is empty for an empty table
	Bounds Rect
}

// NewTable creates a table whose cells are laid out from the given row and
// column intervals. Cell text is left empty.
func NewTable(rows, cols []Interval, inset int) *Table {
	table := &Table{
		Rows:    make([][]Cell, len(rows)),
		Columns: append([]Interval(nil), cols...),
		RowSpan: append([]Interval(nil), rows...),
	}
	for i, r := range rows {
		table.Rows[i] = make([]Cell, len(cols))
		for j, c := range cols {
			rect := CellRect(c, r, inset)
			table.Rows[i][j] = Cell{
				Row:        i,
				Col:        j,
				Rect:       rect,
				Degenerate: rect.Empty(),
			}
		}
	}
	if len(rows) > 0 && len(cols) > 0 {
		table.Bounds = Rect{
			X:      cols[0].Start,
			Y:      rows[0].Start,
			Width:  cols[len(cols)-1].End - cols[0].Start,
			Height: rows[len(rows)-1].End - rows[0].Start,
		}
	}
	return table
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the length of the longest row
func (t *Table) ColCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// GetCell returns the cell at the given row and column (0-indexed)
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return nil
	}
	return &t.Rows[row][col]
}

// SetText sets the recognized text and confidence of a cell
func (t *Table) SetText(row, col int, text string, confidence float64) error {
	cell := t.GetCell(row, col)
	if cell == nil {
		return fmt.Errorf("cell (%d, %d) out of bounds", row, col)
	}
	cell.Text = text
	cell.Confidence = confidence
	return nil
}

// Strings returns the row-major matrix of cell texts
func (t *Table) Strings() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.Text
		}
	}
	return out
}

// GetText returns the cell texts, tab-separated, one row per line
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			sb.WriteString(cell.Text)
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ConfidenceStats returns the mean and standard deviation of the confidence
// of all non-degenerate cells, and how many cells contributed.
func (t *Table) ConfidenceStats() (mean, stddev float64, n int) {
	var values []float64
	for _, row := range t.Rows {
		for _, cell := range row {
			if !cell.Degenerate {
				values = append(values, cell.Confidence)
			}
		}
	}
	switch len(values) {
	case 0:
		return 0, 0, 0
	case 1:
		return values[0], 0, 1
	}
	mean, stddev = stat.MeanStdDev(values, nil)
	return mean, stddev, len(values)
}

// ToMarkdown converts the table to markdown format.
// The first row is used as the header; short rows are padded.
func (t *Table) ToMarkdown() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cols := t.ColCount()
	if cols == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []Cell) {
		for j := 0; j < cols; j++ {
			text := ""
			if j < len(row) {
				text = strings.ReplaceAll(row[j].Text, "\n", " ")
				text = strings.ReplaceAll(text, "|", "\\|")
			}
			sb.WriteString("| ")
			sb.WriteString(text)
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(t.Rows[0])

	// Separator
	for j := 0; j < cols; j++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for i := 1; i < len(t.Rows); i++ {
		writeRow(t.Rows[i])
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell.Text
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToHTML renders the table as an HTML <table> element.
// The first row is emitted as header cells.
func (t *Table) ToHTML() (string, error) {
	table := element(atom.Table)
	for i, row := range t.Rows {
		tr := element(atom.Tr)
		cellAtom := atom.Td
		if i == 0 {
			cellAtom = atom.Th
		}
		for _, cell := range row {
			td := element(cellAtom)
			if cell.Text != "" {
				td.AppendChild(&html.Node{Type: html.TextNode, Data: cell.Text})
			}
			tr.AppendChild(td)
		}
		table.AppendChild(tr)
	}

	var sb strings.Builder
	if err := html.Render(&sb, table); err != nil {
		return "", fmt.Errorf("rendering table: %w", err)
	}
	return sb.String(), nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
