// Package hwptest builds synthetic HWP 5.0 documents for tests.
//
// Documents are assembled in memory: records are encoded with their
// headers, paragraph text is built from UTF-16 code units and control
// sequences, and the result is served by a cfb.MapStore.
package hwptest

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"strconv"
	"unicode/utf16"

	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/record"
)

// Control ids not exported by the record package.
var (
	CtrlTable   = record.MakeCtrlID('t', 'b', 'l', ' ')
	CtrlSection = record.MakeCtrlID('s', 'e', 'c', 'd')
)

// Record encodes a record header followed by payload. Payloads of 0xFFF
// bytes or more use the extended size form.
func Record(tag record.Tag, level int, payload []byte) []byte {
	size := len(payload)
	var buf bytes.Buffer
	if size >= 0xFFF {
		writeU32(&buf, uint32(tag)|uint32(level)<<10|0xFFF<<20)
		writeU32(&buf, uint32(size))
	} else {
		writeU32(&buf, uint32(tag)|uint32(level)<<10|uint32(size)<<20)
	}
	buf.Write(payload)
	return buf.Bytes()
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func putU16(b []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(b[off:], v)
}

func utf16le(s string) []byte {
	units := utf16.Encode([]rune(s))
	b := make([]byte, 2*len(units))
	for i, u := range units {
		putU16(b, 2*i, u)
	}
	return b
}

// Text builds a PARA_TEXT payload.
type Text struct {
	buf []byte
}

// NewText returns a Text holding s.
func NewText(s string) *Text {
	return (&Text{}).Str(s)
}

// Str appends literal characters.
func (t *Text) Str(s string) *Text {
	t.buf = append(t.buf, utf16le(s)...)
	return t
}

// Units appends raw code units.
func (t *Text) Units(units ...uint16) *Text {
	for _, u := range units {
		t.buf = binary.LittleEndian.AppendUint16(t.buf, u)
	}
	return t
}

// Ctrl appends an extended control: the code unit, the control id and
// eight bytes of zero padding.
func (t *Text) Ctrl(code uint16, id record.CtrlID) *Text {
	t.buf = binary.LittleEndian.AppendUint16(t.buf, code)
	t.buf = binary.LittleEndian.AppendUint32(t.buf, uint32(id))
	t.buf = append(t.buf, make([]byte, 8)...)
	return t
}

// Footnote appends a footnote field marker.
func (t *Text) Footnote() *Text { return t.Ctrl(17, record.CtrlFootnote) }

// Endnote appends an endnote field marker.
func (t *Text) Endnote() *Text { return t.Ctrl(17, record.CtrlEndnote) }

// Picture appends an embedded-graphic anchor.
func (t *Text) Picture() *Text { return t.Ctrl(11, record.CtrlGSO) }

// TableAnchor appends the anchor of a table control.
func (t *Text) TableAnchor() *Text { return t.Ctrl(11, CtrlTable) }

// FieldEnd appends a field end control.
func (t *Text) FieldEnd() *Text { return t.Ctrl(4, 0) }

// Hyperlink appends a hyperlink field around anchor.
func (t *Text) Hyperlink(anchor string) *Text {
	return t.Ctrl(3, record.CtrlHyperlink).Str(anchor).FieldEnd()
}

// Memo appends a memo field around the referenced text.
func (t *Text) Memo(ref string) *Text {
	return t.Ctrl(3, record.CtrlMemo).Str(ref).FieldEnd()
}

// Bytes returns the payload.
func (t *Text) Bytes() []byte {
	return append([]byte(nil), t.buf...)
}

// CtrlHeader returns a CTRL_HEADER payload for id.
func CtrlHeader(id record.CtrlID) []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint32(b, uint32(id))
	return b
}

// HyperlinkCtrl returns a hyperlink CTRL_HEADER payload carrying command,
// which is stored as written (escape sequences included).
func HyperlinkCtrl(command string) []byte {
	str := utf16le(command)
	b := make([]byte, 11, 11+len(str)+8)
	binary.LittleEndian.PutUint32(b, uint32(record.CtrlHyperlink))
	putU16(b, 9, uint16(len(str)/2))
	b = append(b, str...)
	return append(b, make([]byte, 8)...)
}

// TableRecord returns a TABLE payload with the given shape. rowCells holds
// per-row cell counts; omitted rows are not stored.
func TableRecord(rows, cols int, rowCells ...int) []byte {
	b := make([]byte, 18+2*len(rowCells))
	putU16(b, 4, uint16(rows))
	putU16(b, 6, uint16(cols))
	for i, n := range rowCells {
		putU16(b, 18+2*i, uint16(n))
	}
	return b
}

// PictureRecord returns a SHAPE_COMPONENT_PICTURE payload referencing the
// binary data storage id.
func PictureRecord(storageID uint16) []byte {
	b := make([]byte, 80)
	putU16(b, 71, storageID)
	return b
}

// BinDataRecord returns a DocInfo BIN_DATA payload for an embedded file.
func BinDataRecord(storageID uint16, ext string) []byte {
	str := utf16le(ext)
	b := make([]byte, 6, 6+len(str))
	putU16(b, 0, 1)
	putU16(b, 2, storageID)
	putU16(b, 4, uint16(len(str)/2))
	return append(b, str...)
}

// Section builds a record stream.
type Section struct {
	buf bytes.Buffer
}

// Add appends one record.
func (s *Section) Add(tag record.Tag, level int, payload []byte) *Section {
	s.buf.Write(Record(tag, level, payload))
	return s
}

// Para appends a paragraph: a PARA_HEADER at level and its PARA_TEXT one
// level below.
func (s *Section) Para(level int, text *Text) *Section {
	s.Add(record.TagParaHeader, level, make([]byte, 22))
	return s.Add(record.TagParaText, level+1, text.Bytes())
}

// Ctrl appends a CTRL_HEADER for id at level.
func (s *Section) Ctrl(level int, id record.CtrlID) *Section {
	return s.Add(record.TagCtrlHeader, level, CtrlHeader(id))
}

// Note appends a footnote or endnote control at level with one body
// paragraph.
func (s *Section) Note(level int, id record.CtrlID, body string) *Section {
	s.Ctrl(level, id)
	s.Add(record.TagListHeader, level+1, make([]byte, 8))
	return s.Para(level+1, NewText(body))
}

// Link appends a hyperlink control at level.
func (s *Section) Link(level int, command string) *Section {
	return s.Add(record.TagCtrlHeader, level, HyperlinkCtrl(command))
}

// Table appends a table control at level whose cells each hold one
// paragraph. cells lists the cell texts row by row; the TABLE record
// declares rowCells per row.
func (s *Section) Table(level int, rowCells []int, cells ...string) *Section {
	cols := 0
	for _, n := range rowCells {
		cols = max(cols, n)
	}
	s.Ctrl(level, CtrlTable)
	s.Add(record.TagTable, level+1, TableRecord(len(rowCells), cols, rowCells...))
	for _, c := range cells {
		s.Cell(level+1, NewText(c))
	}
	return s
}

// Cell appends a cell LIST_HEADER at level with one paragraph.
func (s *Section) Cell(level int, text *Text) *Section {
	s.Add(record.TagListHeader, level, make([]byte, 8))
	return s.Para(level, text)
}

// MemoList appends a MEMO_LIST at level with body paragraphs beneath it.
func (s *Section) MemoList(level int, body ...string) *Section {
	s.Add(record.TagMemoList, level, make([]byte, 4))
	for _, b := range body {
		s.Add(record.TagListHeader, level+1, make([]byte, 8))
		s.Para(level+1, NewText(b))
	}
	return s
}

// Bytes returns the encoded stream.
func (s *Section) Bytes() []byte {
	return append([]byte(nil), s.buf.Bytes()...)
}

// Deflate compresses data with raw deflate, as HWP stores its streams.
func Deflate(data []byte) []byte {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
	w.Write(data)
	w.Close()
	return buf.Bytes()
}

// FileHeader returns a 256-byte FileHeader stream for version 5.0.3.0.
func FileHeader(compressed, encrypted bool) []byte {
	b := make([]byte, 256)
	copy(b, "HWP Document File")
	copy(b[32:], []byte{0, 3, 0, 5})
	var props uint32
	if compressed {
		props |= 1
	}
	if encrypted {
		props |= 2
	}
	binary.LittleEndian.PutUint32(b[36:], props)
	return b
}

// Doc describes a synthetic document.
type Doc struct {
	Sections   [][]byte
	DocInfo    []byte
	BinData    map[string][]byte // stream name under BinData to stored bytes
	Compressed bool
	Encrypted  bool
}

// Streams returns the named streams of the document. Section and DocInfo
// streams are deflated when Compressed is set; BinData is stored as given.
func (d Doc) Streams() map[string][]byte {
	streams := map[string][]byte{
		"FileHeader": FileHeader(d.Compressed, d.Encrypted),
	}
	encode := func(b []byte) []byte {
		if d.Compressed {
			return Deflate(b)
		}
		return b
	}
	if d.DocInfo != nil {
		streams["DocInfo"] = encode(d.DocInfo)
	}
	for i, sec := range d.Sections {
		streams["BodyText/Section"+strconv.Itoa(i)] = encode(sec)
	}
	for name, data := range d.BinData {
		streams["BinData/"+name] = data
	}
	return streams
}

// Store returns the document as a cfb.MapStore.
func (d Doc) Store() *cfb.MapStore {
	return cfb.NewMapStore(d.Streams())
}
