package model

import "fmt"

// NoteKind distinguishes footnotes from endnotes.
type NoteKind string

const (
	// Footnote marks a note printed at the foot of the page.
	Footnote NoteKind = "footnote"
	// Endnote marks a note collected at the end of the document.
	Endnote NoteKind = "endnote"
)

// Note is a footnote or endnote body.
type Note struct {
	Kind   NoteKind
	Number int // 1-based, independent per kind
	Text   string
}

// Marker returns the token that refers to the note in extracted text.
func (n Note) Marker() string {
	return NoteMarker(n.Kind, n.Number)
}

// NoteMarker returns the marker token for the given note kind and number:
// "[^n]" for footnotes and "[^en]" for endnotes.
func NoteMarker(kind NoteKind, number int) string {
	if kind == Endnote {
		return fmt.Sprintf("[^e%d]", number)
	}
	return fmt.Sprintf("[^%d]", number)
}

// Hyperlink pairs anchor text with its target.
type Hyperlink struct {
	Text string
	URL  string
}

// Memo is a memo (comment) attached to a span of text.
type Memo struct {
	Number         int
	Text           string
	ReferencedText string // empty when the memo is not tied to text
}

// Marker returns the token that refers to the memo in extracted text.
func (m Memo) Marker() string {
	return MemoMarker(m.Number)
}

// MemoMarker returns the "[MEMO:n]" token for a memo number.
func MemoMarker(number int) string {
	return fmt.Sprintf("[MEMO:%d]", number)
}

// ExtractResult holds extracted text with the annotations it refers to.
type ExtractResult struct {
	Text       string
	Footnotes  []Note
	Endnotes   []Note
	Hyperlinks []Hyperlink
	Memos      []Memo
}

// Notes returns footnotes followed by endnotes.
func (r *ExtractResult) Notes() []Note {
	notes := make([]Note, 0, len(r.Footnotes)+len(r.Endnotes))
	notes = append(notes, r.Footnotes...)
	return append(notes, r.Endnotes...)
}
