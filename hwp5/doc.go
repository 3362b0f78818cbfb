// Package hwp5 extracts content from HWP 5.0 binary documents.
//
// An HWP 5.0 document is an OLE compound file. The "FileHeader" stream holds
// the signature and the compression and encryption flags, "DocInfo" holds
// document-wide tables such as the binary data catalogue, each
// "BodyText/SectionN" stream holds one section as a sequence of level-tagged
// records, and "BinData/*" streams hold embedded files.
//
// A [Reader] decodes sections record by record and rebuilds paragraphs,
// tables (including nested tables), footnotes, endnotes, hyperlinks, memos
// and image markers:
//
//	r, err := hwp5.Open("report.hwp")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	result, err := r.TextWithNotes(nil)
//
// Each extraction call works on a fresh decode state, so calls can be
// repeated and yield the same output. A Reader must not be shared between
// goroutines.
package hwp5
