package hwp5

import (
	"encoding/binary"
	"strings"

	"github.com/tsawler/hwp/record"
)

// Control codes found in paragraph text.
const (
	codeFieldStart  = 3
	codeFieldEnd    = 4
	codeTab         = 9
	codeObject      = 11
	codeInlineObj   = 12
	codeField       = 17
	inlineExtSize   = 8
	extendedExtSize = 12
	// markerSize is the width of an extended control: its code unit plus
	// the extension.
	markerSize = 2 + extendedExtSize
)

func unitAt(data []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(data[off:])
}

// charDecoder turns a PARA_TEXT payload into text. The three variants differ
// in how tabs are rendered, which characters survive and which controls are
// interpreted.
type charDecoder struct {
	tab     string
	allow   func(uint16) bool
	field   bool // interpret code 17 as a field marker with a control id
	objects bool // interpret codes 11 and 12 as object anchors
}

var (
	mainDecoder  = charDecoder{tab: "\t", allow: lenientChar, field: true, objects: true}
	cellDecoder  = charDecoder{tab: " ", allow: strictChar, objects: true}
	plainDecoder = charDecoder{tab: " ", allow: lenientChar}
)

// memoRef is a resolved memo marker.
type memoRef struct {
	ref   string
	token string
}

// markers holds the substitutions for one paragraph, keyed by the byte
// offset of the control that introduces them.
type markers struct {
	notes map[int]string
	memos map[int]memoRef
	// image is called for every embedded-graphic anchor and returns the
	// marker text, which may be empty.
	image func() string
}

// decode interprets data as UTF-16LE code units. m may be nil.
func (d charDecoder) decode(data []byte, m *markers) string {
	var sb strings.Builder
	n := len(data)

	for i := 0; i < n-1; {
		if m != nil {
			if tok, ok := m.notes[i]; ok {
				sb.WriteString(tok)
				i += markerSize
				continue
			}
			if memo, ok := m.memos[i]; ok {
				sb.WriteString(memo.ref)
				sb.WriteString(memo.token)
				i = skipMemoField(data, i)
				continue
			}
		}

		code := unitAt(data, i)
		i += 2

		switch {
		case code == 0:
		case code < 8:
			if code >= 2 && code <= 4 {
				i += lookaheadSkip(data, i)
			} else {
				i += inlineExtSize
			}
		case code == codeTab:
			sb.WriteString(d.tab)
		case code == codeObject && d.objects:
			if i+4 > n {
				break
			}
			id := record.CtrlIDAt(data, i)
			if id == record.CtrlGSO {
				if m != nil && m.image != nil {
					sb.WriteString(m.image())
				}
				i += extendedExtSize
			} else if id.Plausible() {
				i += extendedExtSize
			}
		case code == codeInlineObj && d.objects:
			i += inlineExtSize
		case code == codeField && d.field:
			if i+4 > n {
				i += extendedExtSize
				break
			}
			// Note, endnote and hyperlink ids are themselves printable.
			if record.CtrlIDAt(data, i).Plausible() {
				i += extendedExtSize
			}
		case code >= 15 && code <= 23:
			i += lookaheadSkip(data, i)
		case code < 32:
		default:
			if d.allow(code) {
				sb.WriteRune(rune(code))
			}
		}
	}

	return sb.String()
}

// lookaheadSkip returns how many extension bytes follow a control code at
// offset i: none when the next unit looks like content, otherwise a full
// extended extension.
func lookaheadSkip(data []byte, i int) int {
	if i+2 <= len(data)-1 && keepsNextUnit(unitAt(data, i)) {
		return 0
	}
	return extendedExtSize
}

// findFieldMarkers returns the offsets of code 17 units followed by id.
func findFieldMarkers(data []byte, id record.CtrlID) []int {
	var positions []int
	for i := 0; i < len(data)-5; i += 2 {
		if unitAt(data, i) == codeField && record.CtrlIDAt(data, i+2) == id {
			positions = append(positions, i)
		}
	}
	return positions
}

type memoMarker struct {
	pos int
	ref string
}

// findMemoMarkers returns memo field starts with their referenced text.
func findMemoMarkers(data []byte) []memoMarker {
	var found []memoMarker
	for i := 0; i < len(data)-5; i += 2 {
		if unitAt(data, i) == codeFieldStart && record.CtrlIDAt(data, i+2) == record.CtrlMemo {
			found = append(found, memoMarker{pos: i, ref: memoRefText(data, i+markerSize)})
		}
	}
	return found
}

// memoRefText collects the characters between a memo field start and its
// closing code 4.
func memoRefText(data []byte, start int) string {
	n := len(data)
	i := start
	if i < n-1 && unitAt(data, i) == codeFieldStart {
		i += 2
	}
	var sb strings.Builder
	for ; i < n-1; i += 2 {
		code := unitAt(data, i)
		if code == codeFieldEnd {
			break
		}
		if code >= 32 {
			sb.WriteRune(rune(code))
		}
	}
	return sb.String()
}

// skipMemoField returns the offset just past the memo field starting at
// start, including the closing control and one repeated closing code.
func skipMemoField(data []byte, start int) int {
	n := len(data)
	i := start + markerSize
	if i < n-1 && unitAt(data, i) == codeFieldStart {
		i += 2
	}
	for i < n-1 {
		if unitAt(data, i) == codeFieldEnd {
			i += markerSize
			if i < n-1 && unitAt(data, i) == codeFieldEnd {
				i += 2
			}
			break
		}
		i += 2
	}
	return i
}

// collectAnchors returns the anchor texts of hyperlink fields in data, in
// order. Empty anchors are dropped.
func collectAnchors(data []byte) []string {
	var anchors []string
	n := len(data)

	for i := 0; i < n-1; {
		code := unitAt(data, i)
		switch {
		case code == codeFieldStart:
			if i+6 > n {
				i += 2
				continue
			}
			if record.CtrlIDAt(data, i+2) != record.CtrlHyperlink {
				i += markerSize
				continue
			}
			var sb strings.Builder
			j := i + markerSize
			for ; j < n-1; j += 2 {
				c := unitAt(data, j)
				if c == codeFieldEnd {
					break
				}
				if c >= 0x20 {
					sb.WriteRune(rune(c))
				}
			}
			if sb.Len() > 0 {
				anchors = append(anchors, sb.String())
			}
			i = j
		case code == codeFieldEnd:
			i += 10
		case code == codeObject || code == codeInlineObj:
			i += 10
		case code >= 15 && code <= 23:
			i += markerSize
		default:
			i += 2
		}
	}

	return anchors
}
