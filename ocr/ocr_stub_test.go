//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/tsawler/tablescan/model"
)

func TestStubNew(t *testing.T) {
	client, err := New()
	if err != ErrOCRNotEnabled {
		t.Errorf("Expected ErrOCRNotEnabled, got %v", err)
	}
	if client != nil {
		t.Error("Expected nil client from stub")
	}
}

func TestStubClose(t *testing.T) {
	var client *Client
	if err := client.Close(); err != nil {
		t.Errorf("Close should not error on stub: %v", err)
	}
}

func TestStubMethods(t *testing.T) {
	client := &Client{}

	if err := client.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage: expected ErrOCRNotEnabled, got %v", err)
	}
	if err := client.SetPageSegMode(PSM_SINGLE_BLOCK); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetPageSegMode: expected ErrOCRNotEnabled, got %v", err)
	}
	if err := client.SetWhitelist("0123456789"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetWhitelist: expected ErrOCRNotEnabled, got %v", err)
	}
	if err := client.SetImage(image.NewGray(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetImage: expected ErrOCRNotEnabled, got %v", err)
	}
	if _, err := client.Recognize(context.Background(), model.NewRect(0, 0, 1, 1)); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize: expected ErrOCRNotEnabled, got %v", err)
	}
	if _, err := client.RecognizeImage([]byte("fake")); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage: expected ErrOCRNotEnabled, got %v", err)
	}
}
