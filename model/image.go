package model

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder for DecodeConfig
	_ "image/jpeg" // register JPEG decoder for DecodeConfig
	_ "image/png"  // register PNG decoder for DecodeConfig
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp" // register BMP decoder for DecodeConfig
)

// ImageFormat is the sniffed format of an embedded image. Its value doubles as
// the usual file extension.
type ImageFormat string

const (
	ImageFormatUnknown ImageFormat = "unknown"
	ImageFormatPNG     ImageFormat = "png"
	ImageFormatJPEG    ImageFormat = "jpg"
	ImageFormatGIF     ImageFormat = "gif"
	ImageFormatBMP     ImageFormat = "bmp"
	ImageFormatEMF     ImageFormat = "emf"
	ImageFormatWMF     ImageFormat = "wmf"
)

var (
	pngMagic = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	wmfMagic = []byte{0xD7, 0xCD, 0xC6, 0x9A}
)

// DetectImageFormat classifies data by its leading magic bytes. Buffers
// shorter than two bytes are always unknown.
func DetectImageFormat(data []byte) ImageFormat {
	if len(data) < 2 {
		return ImageFormatUnknown
	}
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return ImageFormatPNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return ImageFormatJPEG
	case bytes.HasPrefix(data, []byte("GIF87a")), bytes.HasPrefix(data, []byte("GIF89a")):
		return ImageFormatGIF
	case bytes.HasPrefix(data, []byte("BM")):
		return ImageFormatBMP
	case len(data) >= 4 && binary.LittleEndian.Uint32(data) == 1:
		return ImageFormatEMF
	case bytes.HasPrefix(data, wmfMagic):
		return ImageFormatWMF
	}
	return ImageFormatUnknown
}

// Extension returns the file extension for the format, without a dot.
func (f ImageFormat) Extension() string {
	if f == "" {
		return string(ImageFormatUnknown)
	}
	return string(f)
}

// MIMEType returns the media type for the format.
func (f ImageFormat) MIMEType() string {
	switch f {
	case ImageFormatPNG:
		return "image/png"
	case ImageFormatJPEG:
		return "image/jpeg"
	case ImageFormatGIF:
		return "image/gif"
	case ImageFormatBMP:
		return "image/bmp"
	case ImageFormatEMF:
		return "image/emf"
	case ImageFormatWMF:
		return "image/wmf"
	default:
		return "application/octet-stream"
	}
}

// IsRaster reports whether the format is a bitmap format that can be decoded
// to pixels (and therefore passed to OCR).
func (f ImageFormat) IsRaster() bool {
	switch f {
	case ImageFormatPNG, ImageFormatJPEG, ImageFormatGIF, ImageFormatBMP:
		return true
	}
	return false
}

// Image is an embedded picture taken from the document's binary data storage.
type Image struct {
	Filename string
	Data     []byte
	Format   ImageFormat
	Index    int // position in the binary data listing

	// Width and Height are zero when the format has no registered decoder
	// (EMF, WMF) or the header could not be parsed.
	Width  int
	Height int

	// Text holds OCR output when recognition was requested.
	Text string
}

// NewImage sniffs data and returns a populated Image. The second result is
// false when the format is unknown.
func NewImage(filename string, data []byte, index int) (Image, bool) {
	format := DetectImageFormat(data)
	if format == ImageFormatUnknown {
		return Image{}, false
	}
	img := Image{
		Filename: filename,
		Data:     data,
		Format:   format,
		Index:    index,
	}
	if format.IsRaster() {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			img.Width = cfg.Width
			img.Height = cfg.Height
		}
	}
	return img, true
}

// Save writes the image data to path.
func (img *Image) Save(path string) error {
	if err := os.WriteFile(path, img.Data, 0o644); err != nil {
		return fmt.Errorf("save image %s: %w", img.Filename, err)
	}
	return nil
}

// FormatImageMarker fills the {filename} and {index} placeholders of an image
// marker template.
func FormatImageMarker(template, filename string, index int) string {
	return strings.NewReplacer(
		"{filename}", filename,
		"{index}", strconv.Itoa(index),
	).Replace(template)
}
