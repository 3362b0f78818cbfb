package record

import "encoding/binary"

// CtrlID is a four character control id packed little-endian, so that the
// first character occupies the low byte.
type CtrlID uint32

// MakeCtrlID packs four ASCII characters into a CtrlID.
func MakeCtrlID(c1, c2, c3, c4 byte) CtrlID {
	return CtrlID(c1) | CtrlID(c2)<<8 | CtrlID(c3)<<16 | CtrlID(c4)<<24
}

// Known control ids.
var (
	CtrlFootnote  = MakeCtrlID(' ', ' ', 'n', 'f')
	CtrlEndnote   = MakeCtrlID(' ', ' ', 'n', 'e')
	CtrlHyperlink = MakeCtrlID('k', 'l', 'h', '%')
	CtrlMemo      = MakeCtrlID('e', 'm', '%', '%')
	CtrlGSO       = MakeCtrlID(' ', 'o', 's', 'g')
)

// CtrlIDOf reads the control id stored in the first four bytes of a control
// header payload. Short payloads yield 0.
func CtrlIDOf(payload []byte) CtrlID {
	return CtrlIDAt(payload, 0)
}

// CtrlIDAt reads a control id at byte offset off, or 0 if it does not fit.
func CtrlIDAt(data []byte, off int) CtrlID {
	if off < 0 || off+4 > len(data) {
		return 0
	}
	return CtrlID(binary.LittleEndian.Uint32(data[off:]))
}

// Plausible reports whether every byte of the id is printable ASCII. Ids that
// fail this test are treated as opaque data rather than control ids.
func (c CtrlID) Plausible() bool {
	for shift := 0; shift < 32; shift += 8 {
		b := byte(c >> shift)
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// IsNote reports whether the id introduces a footnote or endnote.
func (c CtrlID) IsNote() bool {
	return c == CtrlFootnote || c == CtrlEndnote
}

// String returns the four characters in storage order.
func (c CtrlID) String() string {
	b := []byte{byte(c), byte(c >> 8), byte(c >> 16), byte(c >> 24)}
	return string(b)
}
