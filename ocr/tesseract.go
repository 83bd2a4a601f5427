//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
	"golang.org/x/image/tiff"

	"github.com/tsawler/tablescan/model"
)

// Client wraps Tesseract for OCR operations.
// A Client holds one image at a time; calls are serialized internally.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
	img    image.Image
}

// New creates a new OCR client using DefaultLanguage.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(DefaultLanguage); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		err := c.client.Close()
		c.client = nil
		return err
	}
	return nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "deu+eng").
func (c *Client) SetLanguage(lang string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// PSM_SINGLE_BLOCK usually suits table cells best.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}

// SetWhitelist restricts recognition to the given characters.
func (c *Client) SetWhitelist(chars string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.SetWhitelist(chars)
}

// SetImage loads the image that subsequent Recognize calls read from.
func (c *Client) SetImage(img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrNoImage
	}
	c.mu.Lock()
	c.img = img
	c.mu.Unlock()
	return nil
}

// Recognize performs OCR on one region of the loaded image.
func (c *Client) Recognize(ctx context.Context, region model.Rect) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.img == nil {
		return Result{}, ErrNoImage
	}

	b := c.img.Bounds()
	rect := region.Image().Add(b.Min).Intersect(b)
	if rect.Empty() {
		return Result{}, fmt.Errorf("region %v outside image bounds %v", region, b)
	}

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, imaging.Crop(c.img, rect), nil); err != nil {
		return Result{}, fmt.Errorf("failed to encode region: %w", err)
	}

	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("OCR failed: %w", err)
	}

	return Result{
		Text:       NormalizeText(text),
		Confidence: c.meanConfidence(),
	}, nil
}

// meanConfidence averages the word confidences of the last recognition.
func (c *Client) meanConfidence() float64 {
	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return 0
	}
	confidences := make([]float64, len(boxes))
	for i, b := range boxes {
		confidences[i] = b.Confidence
	}
	return MeanConfidence(confidences)
}

// RecognizeImage performs OCR on encoded image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text, normalized like a table cell.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return NormalizeText(text), nil
}
