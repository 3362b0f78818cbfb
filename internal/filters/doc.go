// Package filters provides the stream decompression used by HWP 5.0 documents.
//
// Section and DocInfo streams of a compressed document are deflate data. Most
// writers emit raw deflate without a zlib wrapper, but some emit the wrapped
// form, so the general entry point tries both:
//
//	decoded, err := filters.Inflate(data)
//
// BinData streams are always raw deflate:
//
//	decoded, err := filters.InflateRaw(data)
//
// Both functions report failure with an error wrapping [ErrDecompression].
// Callers in this module treat that as recoverable and keep the original
// bytes.
package filters
