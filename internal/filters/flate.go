package filters

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

// ErrDecompression is wrapped by every decode failure in this package.
var ErrDecompression = errors.New("decompression failed")

// Inflate decompresses deflate data, trying the zlib-wrapped form first and
// falling back to raw deflate.
func Inflate(data []byte) ([]byte, error) {
	if decoded, err := zlibDecompress(data); err == nil {
		return decoded, nil
	}
	return InflateRaw(data)
}

// InflateRaw decompresses raw deflate data (no zlib or gzip header).
func InflateRaw(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecompression)
	}

	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("%w: raw deflate: %v", ErrDecompression, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: raw deflate produced no output", ErrDecompression)
	}

	return buf.Bytes(), nil
}

// zlibDecompress decompresses zlib-wrapped data using the standard library.
func zlibDecompress(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib header: %v", ErrDecompression, err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrDecompression, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%w: zlib produced no output", ErrDecompression)
	}

	return buf.Bytes(), nil
}

// InflateOrKeep returns the inflated form of data, or data itself when it
// does not decode. The boolean reports whether decompression succeeded.
func InflateOrKeep(data []byte, raw bool) ([]byte, bool) {
	var (
		decoded []byte
		err     error
	)
	if raw {
		decoded, err = InflateRaw(data)
	} else {
		decoded, err = Inflate(data)
	}
	if err != nil {
		return data, false
	}
	return decoded, true
}
