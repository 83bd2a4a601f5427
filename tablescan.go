// Package tablescan reads ruled tables out of raster images.
//
// It finds the continuous border lines of a printed or scanned table,
// partitions the image into one rectangle per cell, and hands every cell to
// a text recognizer, producing a row-major matrix of strings.
//
// Basic usage (requires a build with -tags ocr and Tesseract installed):
//
//	rows, warnings, err := tablescan.Open("timetable.png").Rows(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", tablescan.FormatWarnings(warnings))
//	}
//
// With options:
//
//	rows, _, err := tablescan.Open("timetable.png").
//	    Language("deu").
//	    Workers(4, newRecognizer).
//	    Rows(ctx)
//
// Geometry alone needs no recognizer:
//
//	layout, _, err := tablescan.Open("timetable.png").Grid()
//
// For lower-level access, see the tables and raster packages.
package tablescan

import (
	"image"

	"github.com/tsawler/tablescan/raster"
)

// Open returns an Extractor that reads the image file at filename.
// The file is not read until a terminal operation runs.
//
// Example:
//
//	rows, warnings, err := tablescan.Open("table.png").Rows(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes returns an Extractor for an encoded image (PNG, JPEG, GIF, BMP,
// TIFF or WebP) held in memory.
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromImage returns an Extractor for an already decoded image.
func FromImage(img image.Image) *Extractor {
	return &Extractor{
		img:     img,
		options: defaultOptions(),
	}
}

// FromGrid returns an Extractor for a prepared intensity grid. Contrast
// adjustment is skipped; the grid is scanned as given.
func FromGrid(grid raster.Grid) *Extractor {
	return &Extractor{
		grid:    grid,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustRows is a helper that wraps a call to Rows(), Table() or Grid() and
// panics if the error is non-nil. It discards warnings and returns just the
// value. It is intended for use in scripts or tests where error handling
// would be cumbersome.
//
// Example:
//
//	rows := tablescan.MustRows(tablescan.Open("table.png").Rows(ctx))
func MustRows[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
