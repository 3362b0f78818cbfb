package hwptest

import (
	"encoding/binary"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/tsawler/hwp/cfb"
)

// Compound file constants for version 3 files with 512-byte sectors.
const (
	sectorSize     = 512
	miniSectorSize = 64
	miniCutoff     = 4096
	dirEntrySize   = 128

	freeSect   uint32 = 0xFFFFFFFF
	endOfChain uint32 = 0xFFFFFFFE
	fatSect    uint32 = 0xFFFFFFFD
	noStream   uint32 = 0xFFFFFFFF
)

// dirEntry is a compound file directory entry under construction.
type dirEntry struct {
	name     string
	storage  bool
	data     []byte
	children []int

	left, right, child uint32
	start              uint32
	size               uint32
}

// CompoundFile encodes streams as a version 3 compound file. Names are slash
// separated; intermediate storages are created as needed. Streams shorter
// than 4096 bytes live in the mini stream.
func CompoundFile(streams map[string][]byte) []byte {
	entries := []*dirEntry{{name: "Root Entry", storage: true}}
	storages := map[string]int{"": 0}

	names := make([]string, 0, len(streams))
	for name := range streams {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		parts := strings.Split(name, "/")
		parent, path := 0, ""
		for _, dir := range parts[:len(parts)-1] {
			path += "/" + dir
			idx, ok := storages[path]
			if !ok {
				idx = len(entries)
				entries = append(entries, &dirEntry{name: dir, storage: true})
				entries[parent].children = append(entries[parent].children, idx)
				storages[path] = idx
			}
			parent = idx
		}
		idx := len(entries)
		entries = append(entries, &dirEntry{name: parts[len(parts)-1], data: streams[name]})
		entries[parent].children = append(entries[parent].children, idx)
	}

	// Siblings form a right-leaning chain under the first child.
	for _, e := range entries {
		e.left, e.right, e.child = noStream, noStream, noStream
	}
	for _, e := range entries {
		for i, c := range e.children {
			if i == 0 {
				e.child = uint32(c)
			}
			if i+1 < len(e.children) {
				entries[c].right = uint32(e.children[i+1])
			}
		}
	}

	var (
		fat      []uint32
		miniFAT  []uint32
		mini     []byte
		sectors  []byte
		sectorOf = func() uint32 { return uint32(len(sectors) / sectorSize) }
	)
	chain := func(table *[]uint32, first uint32, n int) {
		for i := 0; i < n; i++ {
			next := first + uint32(i) + 1
			if i == n-1 {
				next = endOfChain
			}
			*table = append(*table, next)
		}
	}
	appendSectors := func(data []byte, unit int) []byte {
		out := append([]byte(nil), data...)
		if rem := len(out) % unit; rem != 0 {
			out = append(out, make([]byte, unit-rem)...)
		}
		return out
	}

	// Regular streams first, then the mini stream container.
	for _, e := range entries {
		if e.storage {
			continue
		}
		e.size = uint32(len(e.data))
		e.start = endOfChain
		if len(e.data) == 0 {
			continue
		}
		if len(e.data) >= miniCutoff {
			e.start = sectorOf()
			padded := appendSectors(e.data, sectorSize)
			chain(&fat, e.start, len(padded)/sectorSize)
			sectors = append(sectors, padded...)
			continue
		}
		e.start = uint32(len(mini) / miniSectorSize)
		padded := appendSectors(e.data, miniSectorSize)
		chain(&miniFAT, e.start, len(padded)/miniSectorSize)
		mini = append(mini, padded...)
	}

	root := entries[0]
	root.start, root.size = endOfChain, uint32(len(mini))
	if len(mini) > 0 {
		root.start = sectorOf()
		padded := appendSectors(mini, sectorSize)
		chain(&fat, root.start, len(padded)/sectorSize)
		sectors = append(sectors, padded...)
	}

	miniFATStart, miniFATSectors := endOfChain, 0
	if len(miniFAT) > 0 {
		buf := make([]byte, 0, len(miniFAT)*4)
		for _, v := range miniFAT {
			buf = binary.LittleEndian.AppendUint32(buf, v)
		}
		for len(buf)%sectorSize != 0 {
			buf = binary.LittleEndian.AppendUint32(buf, freeSect)
		}
		miniFATStart = sectorOf()
		miniFATSectors = len(buf) / sectorSize
		chain(&fat, miniFATStart, miniFATSectors)
		sectors = append(sectors, buf...)
	}

	dir := make([]byte, 0, len(entries)*dirEntrySize)
	for i, e := range entries {
		dir = append(dir, e.encode(i == 0)...)
	}
	for len(dir)%sectorSize != 0 {
		dir = append(dir, emptyDirEntry()...)
	}
	dirStart := sectorOf()
	chain(&fat, dirStart, len(dir)/sectorSize)
	sectors = append(sectors, dir...)

	// The FAT covers every sector including its own.
	perSector := sectorSize / 4
	fatSectors := 1
	for (len(fat)+fatSectors+perSector-1)/perSector > fatSectors {
		fatSectors++
	}
	fatStart := sectorOf()
	for i := 0; i < fatSectors; i++ {
		fat = append(fat, fatSect)
	}
	fatBuf := make([]byte, 0, fatSectors*sectorSize)
	for _, v := range fat {
		fatBuf = binary.LittleEndian.AppendUint32(fatBuf, v)
	}
	for len(fatBuf) < fatSectors*sectorSize {
		fatBuf = binary.LittleEndian.AppendUint32(fatBuf, freeSect)
	}
	sectors = append(sectors, fatBuf...)

	header := make([]byte, sectorSize)
	copy(header, cfb.Signature)
	binary.LittleEndian.PutUint16(header[24:], 0x003E)
	binary.LittleEndian.PutUint16(header[26:], 3)
	binary.LittleEndian.PutUint16(header[28:], 0xFFFE)
	binary.LittleEndian.PutUint16(header[30:], 9)
	binary.LittleEndian.PutUint16(header[32:], 6)
	binary.LittleEndian.PutUint32(header[44:], uint32(fatSectors))
	binary.LittleEndian.PutUint32(header[48:], dirStart)
	binary.LittleEndian.PutUint32(header[56:], miniCutoff)
	binary.LittleEndian.PutUint32(header[60:], miniFATStart)
	binary.LittleEndian.PutUint32(header[64:], uint32(miniFATSectors))
	binary.LittleEndian.PutUint32(header[68:], endOfChain)
	for i := 0; i < 109; i++ {
		v := freeSect
		if i < fatSectors {
			v = fatStart + uint32(i)
		}
		binary.LittleEndian.PutUint32(header[76+i*4:], v)
	}

	return append(header, sectors...)
}

func (e *dirEntry) encode(root bool) []byte {
	b := make([]byte, dirEntrySize)
	name := utf16.Encode([]rune(e.name))
	if len(name) > 31 {
		name = name[:31]
	}
	for i, u := range name {
		binary.LittleEndian.PutUint16(b[i*2:], u)
	}
	binary.LittleEndian.PutUint16(b[64:], uint16((len(name)+1)*2))
	switch {
	case root:
		b[66] = 5
	case e.storage:
		b[66] = 1
	default:
		b[66] = 2
	}
	b[67] = 1 // black
	binary.LittleEndian.PutUint32(b[68:], e.left)
	binary.LittleEndian.PutUint32(b[72:], e.right)
	binary.LittleEndian.PutUint32(b[76:], e.child)
	binary.LittleEndian.PutUint32(b[116:], e.start)
	binary.LittleEndian.PutUint32(b[120:], e.size)
	return b
}

func emptyDirEntry() []byte {
	b := make([]byte, dirEntrySize)
	binary.LittleEndian.PutUint32(b[68:], noStream)
	binary.LittleEndian.PutUint32(b[72:], noStream)
	binary.LittleEndian.PutUint32(b[76:], noStream)
	return b
}

// CompoundFile returns the document encoded as a compound file.
func (d Doc) CompoundFile() []byte {
	return CompoundFile(d.Streams())
}
