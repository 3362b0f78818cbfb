package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"errors"
	"testing"
)

// zlibCompress compresses data for testing
func zlibCompress(data []byte) []byte {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// rawCompress compresses data as raw deflate for testing
func rawCompress(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

func TestInflateZlib(t *testing.T) {
	original := []byte("Hello, World! This is section data.")

	decoded, err := Inflate(zlibCompress(original))
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

func TestInflateFallsBackToRaw(t *testing.T) {
	original := []byte("raw deflate body without a zlib header")

	decoded, err := Inflate(rawCompress(original))
	if err != nil {
		t.Fatalf("Inflate failed: %v", err)
	}
	if !bytes.Equal(decoded, original) {
		t.Errorf("decoded data doesn't match original\ngot:  %s\nwant: %s", decoded, original)
	}
}

func TestInflateRawRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"png header", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
		{"zlib wrapped", zlibCompress([]byte("abc"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InflateRaw(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrDecompression) {
				t.Errorf("expected ErrDecompression, got %v", err)
			}
		})
	}
}

func TestInflateOrKeep(t *testing.T) {
	original := []byte("image bytes")

	got, ok := InflateOrKeep(rawCompress(original), true)
	if !ok || !bytes.Equal(got, original) {
		t.Errorf("InflateOrKeep(raw) = %q, %v; want %q, true", got, ok, original)
	}

	plain := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}
	got, ok = InflateOrKeep(plain, true)
	if ok {
		t.Error("expected decompression to fail for JPEG bytes")
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("expected original bytes back, got %v", got)
	}
}
