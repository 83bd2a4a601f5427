package model

import (
	"fmt"
	"image"
)

// Rect represents a rectangle in pixel coordinates.
// X and Y address the top-left pixel; Width and Height are in pixels.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRect creates a rectangle from its top-left corner and size
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromImage converts an image.Rectangle to a Rect
func RectFromImage(r image.Rectangle) Rect {
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Left returns the left edge X coordinate
func (r Rect) Left() int {
	return r.X
}

// Right returns the X coordinate one past the right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the Y coordinate one past the bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Empty reports whether the rectangle has a non-positive width or height.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Area returns the area in pixels, or 0 for an empty rectangle
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Contains checks if the pixel (x, y) lies inside the rectangle
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// Inset shrinks the rectangle by n pixels on every side.
// The result may be empty; callers decide how to treat that.
func (r Rect) Inset(n int) Rect {
	return Rect{
		X:      r.X + n,
		Y:      r.Y + n,
		Width:  r.Width - 2*n,
		Height: r.Height - 2*n,
	}
}

// Intersect returns the overlap of two rectangles, or the zero Rect
func (r Rect) Intersect(other Rect) Rect {
	return RectFromImage(r.Image().Intersect(other.Image()))
}

// Image converts the rectangle to an image.Rectangle.
// Empty rectangles convert to image.Rectangle{}.
func (r Rect) Image() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// String implements fmt.Stringer
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Interval is a pair of grid line positions on one axis, Start < End for
// well-formed grids.
type Interval struct {
	Start int
	End   int
}

// Len returns End - Start
func (iv Interval) Len() int {
	return iv.End - iv.Start
}

// CellRect builds the rectangle bounded by a column interval and a row
// interval, shrunk inward by inset pixels on every side.
func CellRect(col, row Interval, inset int) Rect {
	return Rect{
		X:      col.Start,
		Y:      row.Start,
		Width:  col.Len(),
		Height: row.Len(),
	}.Inset(inset)
}
