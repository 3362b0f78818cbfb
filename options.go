package hwp

import (
	"github.com/tsawler/hwp/hwp5"
)

// ExtractOptions holds configuration for extraction.
type ExtractOptions struct {
	// Reader options passed to every hwp5 operation
	reader hwp5.Options

	// Run OCR over extracted images
	ocr bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		reader: *hwp5.DefaultOptions(),
	}
}

// clone creates a copy of ExtractOptions. The logger is shared.
func (o ExtractOptions) clone() ExtractOptions {
	return ExtractOptions{
		reader: o.reader,
		ocr:    o.ocr,
	}
}

// readerOptions returns a fresh copy of the hwp5 options.
func (o ExtractOptions) readerOptions() *hwp5.Options {
	opts := o.reader
	return &opts
}
