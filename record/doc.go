// Package record decodes the tagged record streams used by HWP 5.0 documents.
//
// Every DocInfo and BodyText stream is a flat sequence of records. Each record
// starts with a little-endian 32-bit header:
//
//	bits 0-9   tag id
//	bits 10-19 level
//	bits 20-31 size (0xFFF means a 32-bit size follows the header)
//
// The level establishes an implicit tree: the children of a record are the
// records that immediately follow it with a greater level. This package keeps
// the records flat in an [Arena] and answers subtree questions by index.
//
// # Decoding
//
// A [Decoder] yields records lazily and stops silently when the buffer is cut
// short:
//
//	d := record.NewDecoder(data)
//	for {
//	    rec, ok := d.Next()
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(rec.Tag, rec.Level, len(rec.Payload))
//	}
//	if d.Truncated() {
//	    // the stream ended in the middle of a record
//	}
//
// [Decode] collects the whole stream into an [Arena].
//
// # Control ids
//
// Control header records begin with a four character [CtrlID] such as
// [CtrlFootnote] or [CtrlHyperlink].
package record
