//go:build !ocr

package ocr

import (
	"errors"
	"testing"

	"github.com/tsawler/hwp/model"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("Expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	err := client.Close()
	if err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestStubRecognizeImages(t *testing.T) {
	var client *Client
	images := []model.Image{{Filename: "BIN0001.png", Format: model.ImageFormatPNG}}
	if err := client.RecognizeImages(images); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImages() error = %v, want ErrOCRNotEnabled", err)
	}
	if images[0].Text != "" {
		t.Errorf("Text = %q, want empty", images[0].Text)
	}
}
