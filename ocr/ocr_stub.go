//go:build !ocr

package ocr

import (
	"context"
	"image"

	"github.com/tsawler/tablescan/model"
)

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// SetLanguage returns an error indicating OCR support is not enabled.
func (c *Client) SetLanguage(lang string) error {
	return ErrOCRNotEnabled
}

// SetPageSegMode returns an error indicating OCR support is not enabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}

// SetWhitelist returns an error indicating OCR support is not enabled.
func (c *Client) SetWhitelist(chars string) error {
	return ErrOCRNotEnabled
}

// SetImage returns an error indicating OCR support is not enabled.
func (c *Client) SetImage(img image.Image) error {
	return ErrOCRNotEnabled
}

// Recognize returns an error indicating OCR support is not enabled.
func (c *Client) Recognize(ctx context.Context, region model.Rect) (Result, error) {
	return Result{}, ErrOCRNotEnabled
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
