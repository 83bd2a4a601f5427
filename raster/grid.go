package raster

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// DefaultContrast is the contrast adjustment (in percent) applied by Prepare
// when callers have no better value.
const DefaultContrast = 20.0

// Grid is a read-only field of 8-bit intensities addressed from (0, 0).
type Grid interface {
	Width() int
	Height() int
	// Intensity returns the gray level at (x, y); 0 is black, 255 is white.
	Intensity(x, y int) uint8
}

// Gray adapts an *image.Gray to Grid. Coordinates are relative to the
// image's bounds, so sub-images work as expected.
type Gray struct {
	img *image.Gray
}

// NewGray wraps img. img must not be modified while the Gray is in use.
func NewGray(img *image.Gray) *Gray {
	return &Gray{img: img}
}

// Width returns the width in pixels
func (g *Gray) Width() int { return g.img.Bounds().Dx() }

// Height returns the height in pixels
func (g *Gray) Height() int { return g.img.Bounds().Dy() }

// Intensity returns the gray level at (x, y)
func (g *Gray) Intensity(x, y int) uint8 {
	b := g.img.Bounds()
	return g.img.Pix[g.img.PixOffset(b.Min.X+x, b.Min.Y+y)]
}

// Image returns the wrapped image
func (g *Gray) Image() *image.Gray { return g.img }

// Func adapts an accessor function to Grid.
type Func struct {
	W, H int
	F    func(x, y int) uint8
}

// Width returns W
func (f Func) Width() int { return f.W }

// Height returns H
func (f Func) Height() int { return f.H }

// Intensity calls F
func (f Func) Intensity(x, y int) uint8 { return f.F(x, y) }

// Prepare boosts contrast by the given percentage and converts the result to
// 8-bit luma. A contrast of 0 skips the adjustment.
//
// Each channel c in [0, 1] maps to (c-0.5)*((100+contrast)/100)^2 + 0.5,
// clamped and truncated, so 20 scales distances from mid-gray by 1.44 and
// intensities up to 177 end up below a threshold of 200.
func Prepare(img image.Image, contrast float64) *image.Gray {
	src := imaging.Clone(img)
	if contrast != 0 {
		lut := contrastTable(contrast)
		src = imaging.AdjustFunc(src, func(c color.NRGBA) color.NRGBA {
			return color.NRGBA{R: lut[c.R], G: lut[c.G], B: lut[c.B], A: c.A}
		})
	}
	return lumaToGray(src)
}

// contrastTable precomputes the contrast curve for every channel value. The
// arithmetic is float32 throughout; the explicit conversions keep each step
// rounded so results are stable across platforms.
func contrastTable(contrast float64) [256]uint8 {
	const maxValue = float32(255)
	factor := float32(float32(100+float32(contrast)) / 100)
	factor = float32(factor * factor)

	var lut [256]uint8
	for i := range lut {
		v := float32(float32(i)/maxValue) - 0.5
		v = float32(v*factor) + 0.5
		v = float32(v * maxValue)
		switch {
		case v <= 0:
			lut[i] = 0
		case v >= maxValue:
			lut[i] = 255
		default:
			lut[i] = uint8(v)
		}
	}
	return lut
}

// ToGray converts img to 8-bit luma without any adjustment.
// An *image.Gray is returned as-is.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return lumaToGray(imaging.Clone(img))
}

// Rec. 709 luma weights, scaled by 10000
const (
	lumaR   = 2126
	lumaG   = 7152
	lumaB   = 722
	lumaDiv = 10000
)

// lumaToGray reduces src to Rec. 709 luma, truncating. Alpha is ignored.
func lumaToGray(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			p := srcRow[x*4 : x*4+3 : x*4+3]
			l := lumaR*uint32(p[0]) + lumaG*uint32(p[1]) + lumaB*uint32(p[2])
			dstRow[x] = uint8(l / lumaDiv)
		}
	}
	return dst
}

// Render copies any Grid into an *image.Gray. A *Gray is returned unwrapped.
func Render(g Grid) *image.Gray {
	if gray, ok := g.(*Gray); ok {
		return gray.img
	}
	w, h := g.Width(), g.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			row[x] = g.Intensity(x, y)
		}
	}
	return img
}
