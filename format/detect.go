// Package format provides image format detection for the tablescan library.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a Portable Network Graphics image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// GIF indicates a GIF image (first frame is used).
	GIF
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a TIFF image, the usual output of document scanners.
	TIFF
	// WEBP indicates a WebP image.
	WEBP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WEBP:
		return "WEBP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case JPEG:
		return ".jpg"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tif"
	case WEBP:
		return ".webp"
	default:
		return ""
	}
}

// Detect determines image format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WEBP
	default:
		return Unknown
	}
}

var (
	pngMagic    = []byte("\x89PNG\r\n\x1a\n")
	jpegMagic   = []byte{0xFF, 0xD8, 0xFF}
	tiffLEMagic = []byte("II*\x00")
	tiffBEMagic = []byte("MM\x00*")
)

// DetectFromMagic checks the leading bytes of an image to determine its format.
// This is more reliable than extension-based detection.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return PNG
	case bytes.HasPrefix(data, jpegMagic):
		return JPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return GIF
	case bytes.HasPrefix(data, tiffLEMagic), bytes.HasPrefix(data, tiffBEMagic):
		return TIFF
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return WEBP
	case bytes.HasPrefix(data, []byte("BM")):
		return BMP
	}
	return Unknown
}

// DetectFromReader reads the leading bytes from r to determine the format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 16)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}
