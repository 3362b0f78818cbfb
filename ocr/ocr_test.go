//go:build ocr

package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/tsawler/hwp/model"
)

// createTestPNG creates a white image with a black bar. OCR may or may not
// find text in it.
func createTestPNG(width, height int) []byte {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for x := 10; x < 50; x++ {
		for y := 10; y < 30; y++ {
			img.Set(x, y, color.Black)
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

func newClient(t *testing.T) *Client {
	t.Helper()
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRecognizeImage(t *testing.T) {
	client := newClient(t)

	// Only checks that recognition runs.
	if _, err := client.RecognizeImage(createTestPNG(100, 50)); err != nil {
		t.Errorf("RecognizeImage failed: %v", err)
	}
}

func TestRecognizeImagesSkipsVectorFormats(t *testing.T) {
	client := newClient(t)

	images := []model.Image{
		{Filename: "BIN0001.png", Data: createTestPNG(100, 50), Format: model.ImageFormatPNG},
		{Filename: "BIN0002.wmf", Data: []byte{0xD7, 0xCD, 0xC6, 0x9A}, Format: model.ImageFormatWMF, Text: "keep"},
	}
	if err := client.RecognizeImages(images); err != nil {
		t.Fatalf("RecognizeImages failed: %v", err)
	}
	if images[1].Text != "keep" {
		t.Errorf("vector image text changed to %q", images[1].Text)
	}
}

func TestSetLanguage(t *testing.T) {
	client := newClient(t)

	if err := client.SetLanguage("eng"); err != nil {
		t.Errorf("SetLanguage failed: %v", err)
	}
}

func TestCloseTwice(t *testing.T) {
	client, err := New()
	if err != nil {
		t.Skipf("Tesseract not available: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
