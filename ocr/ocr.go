// Package ocr provides the text recognition used to read table cells.
//
// The pipeline depends only on the [Recognizer] interface: given a
// rectangle of the image the recognizer was loaded with, return the text
// inside it and a confidence score. Tests and alternative engines can plug
// in through [RecognizerFunc].
//
// The bundled [Client] wraps the Tesseract OCR engine via gosseract. It is
// compiled only with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag, [New] returns [ErrOCRNotEnabled].
package ocr

import (
	"context"
	"errors"
	"image"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/tablescan/model"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// ErrNoImage is returned by Recognize before an image has been set.
var ErrNoImage = errors.New("no image set")

// DefaultLanguage is the Tesseract language used when none is configured.
const DefaultLanguage = "eng"

// Result is the recognized content of one region.
type Result struct {
	// Text with line breaks collapsed to spaces and surrounding space trimmed
	Text string
	// Mean word confidence, 0-100
	Confidence float64
}

// Recognizer reads the text inside a rectangle of a previously loaded image.
// Implementations are not required to be safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, region model.Rect) (Result, error)
}

// ImageRecognizer is a Recognizer that is loaded with one image at a time.
type ImageRecognizer interface {
	Recognizer
	SetImage(img image.Image) error
	Close() error
}

// RecognizerFunc adapts a function to Recognizer.
type RecognizerFunc func(ctx context.Context, region model.Rect) (Result, error)

// Recognize calls f(ctx, region)
func (f RecognizerFunc) Recognize(ctx context.Context, region model.Rect) (Result, error) {
	return f(ctx, region)
}

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes (values match Tesseract's).
const (
	PSM_OSD_ONLY               PageSegMode = 0  // Orientation and script detection only
	PSM_AUTO_OSD               PageSegMode = 1  // Automatic with OSD
	PSM_AUTO_ONLY              PageSegMode = 2  // Automatic, no OSD or OCR
	PSM_AUTO                   PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN          PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK_VERT_TEXT PageSegMode = 5  // Single uniform block of vertically aligned text
	PSM_SINGLE_BLOCK           PageSegMode = 6  // Single uniform block of text
	PSM_SINGLE_LINE            PageSegMode = 7  // Single text line
	PSM_SINGLE_WORD            PageSegMode = 8  // Single word
	PSM_CIRCLE_WORD            PageSegMode = 9  // Single word in a circle
	PSM_SINGLE_CHAR            PageSegMode = 10 // Single character
	PSM_SPARSE_TEXT            PageSegMode = 11 // Find as much text as possible
	PSM_SPARSE_TEXT_OSD        PageSegMode = 12 // Sparse text with OSD
	PSM_RAW_LINE               PageSegMode = 13 // Treat image as single text line
)

// NormalizeText prepares raw OCR output for a table cell: Unicode NFC,
// every line break replaced by a space, surrounding whitespace trimmed.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}

// MeanConfidence averages word confidences, returning 0 for no words.
func MeanConfidence(confidences []float64) float64 {
	if len(confidences) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range confidences {
		sum += c
	}
	return sum / float64(len(confidences))
}
