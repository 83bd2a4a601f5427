package tablescan

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/tsawler/tablescan/model"
	"github.com/tsawler/tablescan/raster"
	"github.com/tsawler/tablescan/tables"
)

// overlay colors
var (
	columnLineColor = color.NRGBA{R: 220, A: 255}
	rowLineColor    = color.NRGBA{B: 220, A: 255}
	cellColor       = color.NRGBA{G: 180, A: 255}
)

// Overlay draws the detected grid onto a copy of the source image: column
// lines in red, row lines in blue and the inset cell rectangles in green.
// It is meant for checking detection on real scans.
func (e *Extractor) Overlay() (*image.NRGBA, []Warning, error) {
	src, err := e.load()
	if err != nil {
		return nil, nil, err
	}
	layout, warnings, err := e.detect(src)
	if err != nil {
		return nil, warnings, err
	}
	return DrawLayout(src.orig, layout), warnings, nil
}

// SaveOverlay writes Overlay's image to path. The format is chosen from the
// file extension (see raster.Save).
func (e *Extractor) SaveOverlay(path string) ([]Warning, error) {
	img, warnings, err := e.Overlay()
	if err != nil {
		return warnings, err
	}
	if err := raster.Save(img, path); err != nil {
		return warnings, fmt.Errorf("failed to save overlay: %w", err)
	}
	return warnings, nil
}

// DrawLayout returns a copy of img with layout drawn on it.
func DrawLayout(img image.Image, layout *tables.Layout) *image.NRGBA {
	dst := imaging.Clone(img)

	for _, l := range layout.Vertical {
		fill(dst, model.NewRect(l.Index, l.Start, 1, l.Len()), columnLineColor)
	}
	for _, l := range layout.Horizontal {
		fill(dst, model.NewRect(l.Start, l.Index, l.Len(), 1), rowLineColor)
	}
	for _, row := range layout.Cells() {
		for _, rect := range row {
			outline(dst, rect, cellColor)
		}
	}
	return dst
}

// outline draws the one-pixel border of r
func outline(dst *image.NRGBA, r model.Rect, c color.NRGBA) {
	if r.Empty() {
		return
	}
	fill(dst, model.NewRect(r.X, r.Y, r.Width, 1), c)
	fill(dst, model.NewRect(r.X, r.Bottom()-1, r.Width, 1), c)
	fill(dst, model.NewRect(r.X, r.Y, 1, r.Height), c)
	fill(dst, model.NewRect(r.Right()-1, r.Y, 1, r.Height), c)
}

// fill paints r, clipped to dst
func fill(dst *image.NRGBA, r model.Rect, c color.NRGBA) {
	rect := r.Image().Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			dst.SetNRGBA(x, y, c)
		}
	}
}
