// Package cfb exposes the named streams of an OLE compound file.
//
// HWP 5.0 documents are compound files holding streams such as "FileHeader",
// "DocInfo", "BodyText/Section0" and "BinData/BIN0001.png". The extractor only
// needs to test for, open and list streams, which is the [Store] interface.
// [OpenFile] and [New] back a Store with github.com/richardlehane/mscfb;
// [MapStore] is an in-memory Store for tests and callers that already hold the
// streams.
package cfb

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/richardlehane/mscfb"
)

// ErrFormat is returned when data is not a readable compound file.
var ErrFormat = errors.New("cfb: not a compound file")

// Signature is the 8-byte magic number at the start of every compound file.
var Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Store provides access to named streams. Names are slash separated paths
// relative to the root storage, e.g. "BodyText/Section0".
type Store interface {
	// Exists reports whether a stream with the given name exists.
	Exists(name string) bool
	// Open returns a reader for the named stream.
	Open(name string) (io.ReadCloser, error)
	// List returns the names of all streams in sorted order.
	List() []string
}

// IsCompoundFile reports whether header begins with the compound file signature.
func IsCompoundFile(header []byte) bool {
	return len(header) >= len(Signature) && bytes.Equal(header[:len(Signature)], Signature)
}

// ReadStream reads a whole stream from a Store.
func ReadStream(s Store, name string) ([]byte, error) {
	rc, err := s.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// File is a Store loaded from a compound file. All streams are read into
// memory when the file is opened, so the underlying file handle is released
// before OpenFile returns.
type File struct {
	*MapStore
}

// OpenFile loads the compound file at path.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening compound file: %w", err)
	}
	defer f.Close()

	return New(f)
}

// New loads a compound file from r.
func New(r io.ReaderAt) (*File, error) {
	header := make([]byte, len(Signature))
	if _, err := r.ReadAt(header, 0); err != nil || !IsCompoundFile(header) {
		return nil, ErrFormat
	}

	doc, err := mscfb.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	streams := make(map[string][]byte)
	for {
		entry, err := doc.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading compound file entry: %w", err)
		}
		if entry.FileInfo().IsDir() {
			continue
		}

		data, err := io.ReadAll(entry)
		if err != nil {
			return nil, fmt.Errorf("reading stream %s: %w", entry.Name, err)
		}
		name := strings.Join(append(append([]string{}, entry.Path...), entry.Name), "/")
		streams[name] = data
	}

	return &File{MapStore: NewMapStore(streams)}, nil
}

// Close releases the loaded streams. It is safe to call Close multiple times.
func (f *File) Close() error {
	if f.MapStore != nil {
		f.MapStore.streams = nil
	}
	return nil
}

// MapStore is a Store backed by an in-memory map.
type MapStore struct {
	streams map[string][]byte
}

// NewMapStore returns a Store serving the given streams. The map is not copied.
func NewMapStore(streams map[string][]byte) *MapStore {
	if streams == nil {
		streams = make(map[string][]byte)
	}
	return &MapStore{streams: streams}
}

// Exists reports whether the stream exists.
func (m *MapStore) Exists(name string) bool {
	_, ok := m.streams[name]
	return ok
}

// Open returns a reader over the stream contents.
func (m *MapStore) Open(name string) (io.ReadCloser, error) {
	data, ok := m.streams[name]
	if !ok {
		return nil, fmt.Errorf("stream not found: %s", name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// List returns all stream names in sorted order.
func (m *MapStore) List() []string {
	names := make([]string, 0, len(m.streams))
	for name := range m.streams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListDir returns the base names of the streams directly inside storage dir,
// in sorted order.
func ListDir(s Store, dir string) []string {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var names []string
	for _, name := range s.List() {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" || strings.Contains(rest, "/") {
			continue
		}
		names = append(names, rest)
	}
	return names
}
