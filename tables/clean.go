package tables

import (
	"math"
	"sort"
)

// CleanSegments merges the runs of one scan line into segments and keeps
// those at least minLength long.
//
// Runs are sorted by start. A run whose start lies less than mergeGap past
// the current segment's end extends that segment; otherwise the segment is
// closed and the run opens a new one. Length is checked only when a segment
// closes, after all merging.
func CleanSegments(runs []Segment, mergeGap, minLength int) []Segment {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]Segment, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	var cleaned []Segment
	current := sorted[0]
	for _, run := range sorted[1:] {
		if run.Start-current.End < mergeGap {
			if run.End > current.End {
				current.End = run.End
			}
			continue
		}
		if current.Len() >= minLength {
			cleaned = append(cleaned, current)
		}
		current = run
	}

	if current.Len() >= minLength {
		cleaned = append(cleaned, current)
	}

	return cleaned
}

// MinLength returns the minimum segment length for axis on an image of the
// given size: a fraction of the height for vertical borders and of the width
// for horizontal ones, rounded half away from zero.
func (c Config) MinLength(axis Axis, width, height int) int {
	if axis == Vertical {
		return int(math.Round(float64(height) * c.VerticalMinFraction))
	}
	return int(math.Round(float64(width) * c.HorizontalMinFraction))
}

// Candidates groups runs by scan index, cleans each group, and returns the
// surviving segments tagged with axis and index, ordered by index.
func Candidates(runs []Run, axis Axis, mergeGap, minLength int) []Line {
	if len(runs) == 0 {
		return nil
	}

	sorted := make([]Run, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})

	var lines []Line
	group := make([]Segment, 0, 8)
	flush := func(index int) {
		for _, seg := range CleanSegments(group, mergeGap, minLength) {
			lines = append(lines, Line{Axis: axis, Index: index, Start: seg.Start, End: seg.End})
		}
		group = group[:0]
	}

	index := sorted[0].Index
	for _, run := range sorted {
		if run.Index != index {
			flush(index)
			index = run.Index
		}
		group = append(group, Segment{Start: run.Start, End: run.End})
	}
	flush(index)

	return lines
}
