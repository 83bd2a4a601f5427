package tablescan

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal extraction issue.
type WarningKind int

const (
	// WarningNoLines means an axis has no usable grid lines, so the
	// matrix is empty.
	WarningNoLines WarningKind = iota
	// WarningUnpairedLine means an axis has an odd number of lines and
	// the last one was not used.
	WarningUnpairedLine
	// WarningDegenerateCell means two paired lines are too close for the
	// cell inset; the cell is kept with empty text.
	WarningDegenerateCell
)

// String returns the kind name
func (k WarningKind) String() string {
	switch k {
	case WarningNoLines:
		return "no-lines"
	case WarningUnpairedLine:
		return "unpaired-line"
	case WarningDegenerateCell:
		return "degenerate-cell"
	default:
		return fmt.Sprintf("WarningKind(%d)", int(k))
	}
}

// Warning is a non-fatal issue found during extraction.
type Warning struct {
	Kind    WarningKind
	Message string
	// Cell position for WarningDegenerateCell, otherwise -1
	Row, Col int
}

// String formats the warning for display
func (w Warning) String() string {
	if w.Row >= 0 && w.Col >= 0 {
		return fmt.Sprintf("%s: cell (%d, %d): %s", w.Kind, w.Row, w.Col, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// FormatWarnings renders warnings one per line.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}

// HasWarning reports whether any warning has the given kind
func HasWarning(warnings []Warning, kind WarningKind) bool {
	for _, w := range warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

func newWarning(kind WarningKind, format string, args ...any) Warning {
	return Warning{Kind: kind, Message: fmt.Sprintf(format, args...), Row: -1, Col: -1}
}
