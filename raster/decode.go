package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/tsawler/tablescan/format"
)

var (
	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrUnsupportedFormat is returned when the input is not a known raster format.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Decode decodes an encoded image held in memory.
// EXIF orientation is applied so phone photos come out upright.
func Decode(data []byte) (image.Image, format.Format, error) {
	f := format.DetectFromMagic(data)
	if f == format.Unknown {
		return nil, f, ErrUnsupportedFormat
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, f, fmt.Errorf("decoding %s: %w", f, err)
	}
	if img.Bounds().Empty() {
		return nil, f, ErrEmptyImage
	}
	return img, f, nil
}

// Open decodes the image stored at path. The format is sniffed from the
// content, not the extension; files in no supported format fail with
// ErrUnsupportedFormat.
func Open(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	f, err := format.DetectFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if f == format.Unknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s %s: %w", f, path, err)
	}
	if img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}
	return img, nil
}

// Writable reports whether Save can encode f.
func Writable(f format.Format) bool {
	switch f {
	case format.PNG, format.JPEG, format.GIF, format.BMP, format.TIFF:
		return true
	}
	return false
}

// Save encodes img to path in the format named by its extension. PNG,
// JPEG, GIF, BMP and TIFF can be written.
func Save(img image.Image, path string) error {
	if !Writable(format.Detect(path)) {
		return fmt.Errorf("%w: cannot write %q", ErrUnsupportedFormat, path)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving image: %w", err)
	}
	return nil
}
