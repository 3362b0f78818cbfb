package hwp5

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

// decodeState carries everything that changes during one extraction pass.
// A new value is created for every operation so repeated calls produce the
// same output.
type decodeState struct {
	opts *Options
	log  *slog.Logger
	bin  *binData

	footnotes  []model.Note
	endnotes   []model.Note
	hyperlinks []model.Hyperlink
	memos      []model.Memo
	images     int // image markers emitted so far

	// built records every table rebuilt by TABLE record index, including
	// malformed ones as nil. It is nil unless tables are being collected.
	built map[int]*model.Table

	cur      cursor
	warnings []Warning
}

// cursor tracks per-section progress: occurrences of each marker kind seen
// so far, hyperlink controls already resolved and the remaining anchors.
type cursor struct {
	footnotes int
	endnotes  int
	memos     int
	pictures  int
	seenLinks map[int]struct{}
	anchors   []string
}

func newDecodeState(opts *Options, bin *binData) *decodeState {
	return &decodeState{
		opts: opts,
		log:  opts.logger(),
		bin:  bin,
	}
}

// begin resets the per-section cursor.
func (s *decodeState) begin(sec *section) {
	s.cur = cursor{
		seenLinks: make(map[int]struct{}),
		anchors:   append([]string(nil), sec.anchors...),
	}
}

func (s *decodeState) warn(stream, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, Warning{Stream: stream, Message: msg})
	s.log.Debug("hwp5: "+msg, "stream", stream)
}

// paragraph decodes a top-level PARA_TEXT record, registering the notes and
// memos it refers to.
func (s *decodeState) paragraph(sec *section, idx int) string {
	data := sec.records[idx].Payload
	m := &markers{
		notes: s.registerNotes(sec, data),
		memos: s.registerMemos(sec, data),
		image: func() string { return s.imageMarker(sec) },
	}
	return mainDecoder.decode(data, m)
}

// cellParagraph decodes a PARA_TEXT record inside a table cell.
func (s *decodeState) cellParagraph(sec *section, idx int) string {
	data := sec.records[idx].Payload
	m := &markers{
		notes: s.registerNotes(sec, data),
		image: func() string { return s.imageMarker(sec) },
	}
	return cellDecoder.decode(data, m)
}

// registerNotes numbers the footnote and endnote markers in data, resolves
// their bodies and returns the marker tokens by offset.
func (s *decodeState) registerNotes(sec *section, data []byte) map[int]string {
	tokens := make(map[int]string)

	for _, pos := range findFieldMarkers(data, record.CtrlFootnote) {
		s.cur.footnotes++
		note := model.Note{
			Kind:   model.Footnote,
			Number: len(s.footnotes) + 1,
			Text:   noteBody(sec.records, nth(sec.notes[record.CtrlFootnote], s.cur.footnotes)),
		}
		s.footnotes = append(s.footnotes, note)
		tokens[pos] = note.Marker()
	}

	for _, pos := range findFieldMarkers(data, record.CtrlEndnote) {
		s.cur.endnotes++
		note := model.Note{
			Kind:   model.Endnote,
			Number: len(s.endnotes) + 1,
			Text:   noteBody(sec.records, nth(sec.notes[record.CtrlEndnote], s.cur.endnotes)),
		}
		s.endnotes = append(s.endnotes, note)
		tokens[pos] = note.Marker()
	}

	return tokens
}

// registerMemos numbers the memo markers in data and resolves their bodies.
func (s *decodeState) registerMemos(sec *section, data []byte) map[int]memoRef {
	found := findMemoMarkers(data)
	if len(found) == 0 {
		return nil
	}
	refs := make(map[int]memoRef, len(found))
	for _, mk := range found {
		s.cur.memos++
		memo := model.Memo{
			Number:         len(s.memos) + 1,
			Text:           memoBody(sec.records, nth(sec.memoLists, s.cur.memos)),
			ReferencedText: mk.ref,
		}
		s.memos = append(s.memos, memo)
		refs[mk.pos] = memoRef{ref: mk.ref, token: memo.Marker()}
	}
	return refs
}

// visitHyperlink resolves the hyperlink control at idx the first time it is
// seen. A valid target consumes the next anchor text; a link without anchor
// text is dropped.
func (s *decodeState) visitHyperlink(sec *section, idx int) {
	rec := sec.records[idx]
	if rec.Tag != record.TagCtrlHeader || record.CtrlIDOf(rec.Payload) != record.CtrlHyperlink {
		return
	}
	if _, seen := s.cur.seenLinks[idx]; seen {
		return
	}
	s.cur.seenLinks[idx] = struct{}{}

	url, ok := hyperlinkURL(rec.Payload)
	if !ok {
		return
	}
	if len(s.cur.anchors) == 0 {
		s.log.Debug("hwp5: hyperlink without anchor text", "stream", sec.stream, "url", url)
		return
	}
	text := s.cur.anchors[0]
	s.cur.anchors = s.cur.anchors[1:]
	s.hyperlinks = append(s.hyperlinks, model.Hyperlink{Text: text, URL: url})
}

// imageMarker resolves the picture behind the next embedded-graphic anchor.
// The section's picture shapes are tried first, then the binary data
// listing by running image count. The counter advances only when a name
// resolves.
func (s *decodeState) imageMarker(sec *section) string {
	pos := s.cur.pictures
	s.cur.pictures++

	var name string
	if pos < len(sec.pictures) {
		name = s.bin.ids[sec.pictures[pos]]
	}
	if name == "" && s.images < len(s.bin.names) {
		name = s.bin.names[s.images]
	}
	if name == "" {
		return ""
	}
	s.images++
	return model.FormatImageMarker(s.opts.ImageMarker, name, s.images)
}

// nth returns the nth (1-based) element of indexes, or -1.
func nth(indexes []int, n int) int {
	if n < 1 || n > len(indexes) {
		return -1
	}
	return indexes[n-1]
}
