// Package format provides file format detection for the hwp library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/tsawler/hwp/cfb"
)

// Format represents a Hangul word processor document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HWP indicates an HWP 5.0 binary document (OLE compound file).
	HWP
	// HWPX indicates the zipped XML variant (.hwpx).
	HWPX
)

// hwpxMimeType is stored in the "mimetype" entry of HWPX archives.
const hwpxMimeType = "application/hwp+zip"

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HWP:
		return "HWP"
	case HWPX:
		return "HWPX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HWP:
		return ".hwp"
	case HWPX:
		return ".hwpx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hwp":
		return HWP
	case ".hwpx":
		return HWPX
	default:
		return Unknown
	}
}

// DetectFromMagic checks file magic bytes to determine format.
// A ZIP signature alone is not enough to identify HWPX, so zip data yields
// Unknown; use DetectFromReader for those.
func DetectFromMagic(data []byte) Format {
	if cfb.IsCompoundFile(data) {
		return HWP
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format. Unlike
// DetectFromMagic it opens ZIP archives to look for the HWPX mimetype entry.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, len(cfb.Signature))
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if cfb.IsCompoundFile(magic) {
		return HWP, nil
	}
	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	return Unknown, nil
}

// detectZIPFormat reports HWPX when the archive's mimetype entry names the
// HWPX media type.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Unknown, nil
		}
		data, _ := io.ReadAll(io.LimitReader(rc, 256))
		rc.Close()
		if strings.TrimSpace(string(data)) == hwpxMimeType {
			return HWPX, nil
		}
	}

	return Unknown, nil
}
