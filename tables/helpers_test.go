package tables

import (
	"image"
	"image/color"

	"github.com/tsawler/tablescan/raster"
)

// newCanvas returns a white w x h image
func newCanvas(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

// hline draws a black horizontal line at y from x0 to x1 inclusive
func hline(img *image.Gray, y, x0, x1 int) {
	for x := x0; x <= x1; x++ {
		img.SetGray(x, y, color.Gray{})
	}
}

// vline draws a black vertical line at x from y0 to y1 inclusive
func vline(img *image.Gray, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		img.SetGray(x, y, color.Gray{})
	}
}

// dots returns a grid that is white except at the given points
func dots(w, h int, pts ...image.Point) raster.Grid {
	img := newCanvas(w, h)
	for _, p := range pts {
		img.SetGray(p.X, p.Y, color.Gray{})
	}
	return raster.NewGray(img)
}

func equalRuns(a, b []Run) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalSegments(a, b []Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
