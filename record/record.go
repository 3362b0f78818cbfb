package record

import "encoding/binary"

// Tag identifies the kind of a record.
type Tag uint16

// Record tags used by the extractor.
const (
	TagBegin                 Tag = 0x10
	TagBinData               Tag = TagBegin + 2
	TagParaHeader            Tag = TagBegin + 50
	TagParaText              Tag = TagBegin + 51
	TagCtrlHeader            Tag = TagBegin + 55
	TagListHeader            Tag = TagBegin + 56
	TagTable                 Tag = TagBegin + 61
	TagShapeComponentPicture Tag = TagBegin + 69
	TagMemoList              Tag = TagBegin + 77
)

// Record is a single decoded record. Payload aliases the decoded buffer.
type Record struct {
	Tag     Tag
	Level   int
	Payload []byte
}

// Uint16 reads a little-endian uint16 from the payload at off.
// It returns false if the payload is too short.
func (r Record) Uint16(off int) (uint16, bool) {
	if off < 0 || off+2 > len(r.Payload) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(r.Payload[off:]), true
}

// Arena is a flat, ordered sequence of records.
type Arena []Record

// SubtreeEnd returns the first index j > i whose level is less than or equal
// to the level of record i, or len(a) if the subtree runs to the end.
func (a Arena) SubtreeEnd(i int) int {
	if i < 0 || i >= len(a) {
		return len(a)
	}
	level := a[i].Level
	j := i + 1
	for j < len(a) && a[j].Level > level {
		j++
	}
	return j
}

// Children returns the indices of the direct children of record i.
func (a Arena) Children(i int) []int {
	end := a.SubtreeEnd(i)
	if i+1 >= end {
		return nil
	}
	childLevel := a[i+1].Level
	var kids []int
	for j := i + 1; j < end; j++ {
		if a[j].Level <= childLevel {
			childLevel = a[j].Level
			kids = append(kids, j)
		}
	}
	return kids
}

// Find returns the index of the nth (1-based) record matching tag and, when
// id is non-zero, the control id. It returns -1 if there is no such record.
func (a Arena) Find(tag Tag, id CtrlID, nth int) int {
	if nth < 1 {
		return -1
	}
	count := 0
	for i, rec := range a {
		if rec.Tag != tag {
			continue
		}
		if id != 0 && CtrlIDOf(rec.Payload) != id {
			continue
		}
		count++
		if count == nth {
			return i
		}
	}
	return -1
}
