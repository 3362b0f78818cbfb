// Package hwp provides a fluent API for extracting text, tables, notes,
// hyperlinks, memos and images from HWP 5.0 documents.
//
// Basic usage:
//
//	text, warnings, err := hwp.Open("report.hwp").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hwp.FormatWarnings(warnings))
//	}
//
// With options:
//
//	text, _, err := hwp.Open("report.hwp").
//	    TableStyle(model.TableStyleCSV).
//	    ImageMarker("[image: {filename}]").
//	    NormalizeUnicode().
//	    Text()
//
// For advanced use cases, the lower-level hwp5 package is also available.
package hwp

import (
	"github.com/tsawler/hwp/hwp5"
)

// Open returns an Extractor for the document at filename. The file is not
// read until a terminal operation such as Text runs; terminal operations
// close the document when they finish.
//
// Example:
//
//	text, warnings, err := hwp.Open("report.hwp").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened hwp5.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := hwp5.Open("report.hwp")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	text, warnings, err := hwp.FromReader(r).Text()
func FromReader(r *hwp5.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := hwp.Must(hwp.Open("report.hwp").SectionCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText is a helper that wraps a call to a terminal operation such as
// Text() and panics if the error is non-nil. It discards warnings and
// returns just the value.
//
// Example:
//
//	text := hwp.MustText(hwp.Open("report.hwp").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
