// Package model provides the result types produced by HWP extraction.
//
// Every value in this package is a derived, read-only result of a single
// extraction pass over one document. Nothing here refers back to the
// document it came from.
//
// # Text and annotations
//
// [ExtractResult] carries the extracted text together with the annotations
// that were resolved while producing it:
//
//   - [Note] - footnotes and endnotes, numbered per kind in document order
//   - [Hyperlink] - anchor text paired with its target URL
//   - [Memo] - memo bodies with the text they are attached to
//
// The text contains marker tokens that refer to these annotations: "[^1]"
// for footnote 1, "[^e1]" for endnote 1 and "[MEMO:1]" for memo 1.
//
// # Tables
//
// [Table] holds rows of cell text. Rows may have different lengths. Tables can
// be rendered with [Table.Format] in any [TableStyle]:
//
//	md := table.Format(model.TableStyleMarkdown, "")
//	tsv := table.Format(model.TableStyleDelimited, "\t")
//
// # Images
//
// [Image] holds the bytes of an embedded picture and its sniffed
// [ImageFormat]. [DetectImageFormat] classifies a buffer by its magic bytes.
package model
