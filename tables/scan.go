package tables

import "github.com/tsawler/tablescan/raster"

// ScanRuns returns the runs of pixels darker than threshold along every scan
// line of axis, ordered by index and then by start.
//
// A run opens at the first dark pixel and closes at the next light pixel.
// A run still open when its scan line ends is dropped, so a border touching
// the far edge of the image produces no run on that scan line.
func ScanRuns(g raster.Grid, axis Axis, threshold uint8) []Run {
	indices, length := axis.extent(g)

	var runs []Run
	for index := 0; index < indices; index++ {
		start := -1
		for pos := 0; pos < length; pos++ {
			if axis.at(g, index, pos) < threshold {
				if start < 0 {
					start = pos
				}
			} else if start >= 0 {
				runs = append(runs, Run{Index: index, Start: start, End: pos})
				start = -1
			}
		}
	}
	return runs
}
