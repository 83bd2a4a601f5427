package tablescan

import (
	"github.com/tsawler/tablescan/ocr"
	"github.com/tsawler/tablescan/raster"
	"github.com/tsawler/tablescan/tables"
)

// RecognizerFactory creates one recognizer per worker. Recognizers that
// implement ocr.ImageRecognizer are loaded with the image and closed when
// extraction ends.
type RecognizerFactory func() (ocr.Recognizer, error)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	config   tables.Config
	detector string

	// Image preparation
	contrast     float64
	skipContrast bool

	// Recognition
	language   string
	recognizer ocr.Recognizer
	workers    int
	factory    RecognizerFactory

	// Fail with ErrNoGrid instead of returning an empty matrix
	strict bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config:       tables.DefaultConfig(),
		detector:     "ruled",
		contrast:     raster.DefaultContrast,
		skipContrast: false,
		language:     ocr.DefaultLanguage,
		workers:      1,
	}
}

// clone creates a copy of ExtractOptions. Recognizers are shared, not copied.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}
