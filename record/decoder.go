package record

import "encoding/binary"

const (
	headerSize   = 4
	extendedSize = 0xFFF
)

// Decoder reads records from a buffer one at a time.
type Decoder struct {
	data      []byte
	offset    int
	truncated bool
}

// NewDecoder returns a Decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Reset restarts decoding from the beginning of the buffer.
func (d *Decoder) Reset() {
	d.offset = 0
	d.truncated = false
}

// Truncated reports whether decoding stopped because a record header or body
// extended past the end of the buffer.
func (d *Decoder) Truncated() bool {
	return d.truncated
}

// Offset returns the byte offset of the next record header.
func (d *Decoder) Offset() int {
	return d.offset
}

// Next returns the next record with a non-empty payload. It returns false at
// the end of the buffer or when the remaining bytes cannot hold the record
// they announce.
func (d *Decoder) Next() (Record, bool) {
	for {
		remaining := len(d.data) - d.offset
		if remaining <= 0 {
			return Record{}, false
		}
		if remaining < headerSize {
			d.stop()
			return Record{}, false
		}

		header := binary.LittleEndian.Uint32(d.data[d.offset:])
		tag := Tag(header & 0x3FF)
		level := int((header >> 10) & 0x3FF)
		size := int64((header >> 20) & 0xFFF)
		pos := d.offset + headerSize

		if size == extendedSize {
			if pos+4 > len(d.data) {
				d.stop()
				return Record{}, false
			}
			size = int64(binary.LittleEndian.Uint32(d.data[pos:]))
			pos += 4
		}

		if int64(pos)+size > int64(len(d.data)) {
			d.stop()
			return Record{}, false
		}

		end := pos + int(size)
		d.offset = end
		if size == 0 {
			continue
		}

		return Record{
			Tag:     tag,
			Level:   level,
			Payload: d.data[pos:end:end],
		}, true
	}
}

func (d *Decoder) stop() {
	d.truncated = true
	d.offset = len(d.data)
}

// Decode reads every record in data into an Arena. The second result reports
// whether the stream was truncated.
func Decode(data []byte) (Arena, bool) {
	d := NewDecoder(data)
	var arena Arena
	for {
		rec, ok := d.Next()
		if !ok {
			break
		}
		arena = append(arena, rec)
	}
	return arena, d.Truncated()
}
