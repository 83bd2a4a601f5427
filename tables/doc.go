// Package tables locates the ruling lines of a table in a grayscale raster
// and partitions the image into per-cell rectangles.
//
// # Pipeline
//
// Detection is a sequence of independent stages, each usable on its own:
//
//  1. [ScanRuns] - maximal runs of dark pixels along every column and row
//  2. [CleanSegments] - per scan index, merge nearby runs and drop short ones
//  3. [Candidates] - tag surviving segments with their axis and index
//  4. [Deduplicate] - collapse multi-pixel borders into stable grid lines
//  5. [Pair] and [Assemble] - pair adjacent lines into inset cell rectangles
//
// [Detect] runs every stage and returns a [Layout].
//
// # Axes
//
// The same code serves both orientations through [Axis]. A [Vertical] scan
// walks each column x over y and finds column borders; a [Horizontal] scan
// walks each row y over x and finds row borders.
//
// # Configuration
//
// Every threshold lives in [Config]:
//
//	cfg := tables.DefaultConfig()
//	cfg.MergeGap = 3
//	layout, err := tables.Detect(grid, cfg)
//
// Detectors can also be looked up by name:
//
//	detector := tables.GetDetector("ruled")
//	layout, err := detector.Detect(grid)
package tables
