package tables

import "sort"

// DedupMode selects how Deduplicate treats a candidate that does not match
// the line currently being tracked.
type DedupMode int

const (
	// DedupReference discards a non-matching candidate and keeps tracking
	// the previous line. A border whose start/end differ from the tracked
	// line by the tolerance or more is therefore never confirmed.
	DedupReference DedupMode = iota

	// DedupTrackNew makes a non-matching candidate the new tracked line, so
	// borders of different extent can each be confirmed.
	DedupTrackNew
)

// String returns the mode name
func (m DedupMode) String() string {
	switch m {
	case DedupReference:
		return "reference"
	case DedupTrackNew:
		return "track-new"
	default:
		return "unknown"
	}
}

// ParseDedupMode parses the names returned by DedupMode.String.
func ParseDedupMode(s string) (DedupMode, bool) {
	switch s {
	case "reference":
		return DedupReference, true
	case "track-new":
		return DedupTrackNew, true
	}
	return DedupReference, false
}

// Deduplicate collapses candidates recorded on neighbouring scan indices
// into grid lines.
//
// Candidates are processed in index order against a tracked line, which
// starts as the first candidate. A candidate matches when both its start and
// its end differ from the tracked line's by less than tolerance. On a match
// whose index lies at least minSeparation past the tracked line, both the
// tracked line and the candidate are emitted; every match then becomes the
// tracked line. Non-matching candidates are handled according to mode.
//
// The output comes in pairs, each bounding one interval between two borders
// of the same extent. Samples closer than minSeparation, such as the pixel
// rows of one thick border, never form a pair; a thick border contributes
// the edge facing its neighbour.
func Deduplicate(candidates []Line, tolerance, minSeparation int, mode DedupMode) []Line {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]Line, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	var lines []Line
	last := sorted[0]
	for _, line := range sorted {
		if absDiff(last.Start, line.Start) < tolerance && absDiff(last.End, line.End) < tolerance {
			if line.Index-last.Index >= minSeparation {
				lines = append(lines, last, line)
			}
			last = line
		} else if mode == DedupTrackNew {
			last = line
		}
	}

	return lines
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
