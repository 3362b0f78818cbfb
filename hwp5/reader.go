package hwp5

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/hwp/cfb"
	"github.com/tsawler/hwp/internal/filters"
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/record"
)

const (
	fileHeaderStream = "FileHeader"
	sectionStream    = "BodyText/Section%d"

	// Signature starts the FileHeader stream.
	Signature = "HWP Document File"

	headerPropsOffset = 36
	flagCompressed    = 1 << 0
	flagEncrypted     = 1 << 1
)

// Version is the document format version stored in the FileHeader.
type Version struct {
	Major, Minor, Build, Revision int
}

// String returns the version as "major.minor.build.revision".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// Reader extracts content from an HWP 5.0 document. It is not safe for
// concurrent use.
type Reader struct {
	store  cfb.Store
	closer io.Closer
	log    *slog.Logger

	header     []byte
	headerRead bool

	bin         *binData
	binWarnings []Warning

	warnings []Warning
}

// NewReader returns a Reader over an already opened stream store. Closing
// the Reader closes the store when it implements io.Closer.
func NewReader(store cfb.Store) *Reader {
	r := &Reader{store: store}
	if c, ok := store.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// Open loads the compound file at path. The file handle is released before
// Open returns. Files that are not compound files yield ErrInvalidContainer.
func Open(path string) (*Reader, error) {
	f, err := cfb.OpenFile(path)
	if err != nil {
		if errors.Is(err, cfb.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidContainer, path)
		}
		return nil, err
	}
	return NewReader(f), nil
}

// OpenReaderAt loads a compound file from r.
func OpenReaderAt(r io.ReaderAt) (*Reader, error) {
	f, err := cfb.New(r)
	if err != nil {
		if errors.Is(err, cfb.ErrFormat) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
		}
		return nil, err
	}
	return NewReader(f), nil
}

// SetLogger sets the logger used by operations that take no Options.
func (r *Reader) SetLogger(l *slog.Logger) {
	r.log = l
}

func (r *Reader) logger() *slog.Logger {
	if r.log != nil {
		return r.log
	}
	return slog.Default()
}

// Close releases the underlying store. It is safe to call Close multiple
// times.
func (r *Reader) Close() error {
	if r.store == nil {
		return nil
	}
	var err error
	if r.closer != nil {
		err = r.closer.Close()
	}
	r.store = nil
	r.closer = nil
	r.bin = nil
	return err
}

// Warnings returns the recoverable problems met by the last extraction.
func (r *Reader) Warnings() []Warning {
	return append([]Warning(nil), r.warnings...)
}

func (r *Reader) setWarnings(w []Warning) {
	r.warnings = append(append([]Warning(nil), r.binWarnings...), w...)
}

// fileHeader returns the FileHeader stream, or nil when it is missing.
func (r *Reader) fileHeader() []byte {
	if r.headerRead || r.store == nil {
		return r.header
	}
	r.headerRead = true
	if !r.store.Exists(fileHeaderStream) {
		return nil
	}
	data, err := cfb.ReadStream(r.store, fileHeaderStream)
	if err != nil {
		r.logger().Debug("hwp5: reading file header failed", "error", err)
		return nil
	}
	r.header = data
	return r.header
}

func (r *Reader) properties() (uint32, bool) {
	header := r.fileHeader()
	if len(header) < headerPropsOffset+4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(header[headerPropsOffset:]), true
}

// IsValid reports whether the FileHeader stream exists and carries the HWP
// signature.
func (r *Reader) IsValid() bool {
	return bytes.HasPrefix(r.fileHeader(), []byte(Signature))
}

// IsEncrypted reports whether the document is password protected. A short
// or missing header counts as not encrypted.
func (r *Reader) IsEncrypted() bool {
	props, ok := r.properties()
	return ok && props&flagEncrypted != 0
}

// IsCompressed reports whether section streams are deflate compressed. A
// short or missing header counts as compressed.
func (r *Reader) IsCompressed() bool {
	props, ok := r.properties()
	return !ok || props&flagCompressed != 0
}

// Version returns the format version from the FileHeader.
func (r *Reader) Version() (Version, bool) {
	header := r.fileHeader()
	if len(header) < 36 {
		return Version{}, false
	}
	return Version{
		Major:    int(header[35]),
		Minor:    int(header[34]),
		Build:    int(header[33]),
		Revision: int(header[32]),
	}, true
}

// check guards every extraction operation.
func (r *Reader) check() error {
	if r.store == nil {
		return ErrClosed
	}
	if !r.IsValid() {
		return ErrInvalidContainer
	}
	if r.IsEncrypted() {
		return ErrEncrypted
	}
	return nil
}

func (r *Reader) binData() *binData {
	if r.bin == nil {
		r.bin, r.binWarnings = r.loadBinData()
	}
	return r.bin
}

// SectionCount returns the number of consecutive BodyText/SectionN streams.
func (r *Reader) SectionCount() int {
	if r.store == nil {
		return 0
	}
	n := 0
	for r.store.Exists(fmt.Sprintf(sectionStream, n)) {
		n++
	}
	return n
}

// section reads, decompresses and decodes one section stream.
func (r *Reader) section(idx int, log *slog.Logger) (*section, []Warning) {
	name := fmt.Sprintf(sectionStream, idx)
	var warnings []Warning

	data, err := cfb.ReadStream(r.store, name)
	if err != nil {
		warnings = append(warnings, Warning{Stream: name, Message: err.Error()})
		return newSection(idx, name, nil), warnings
	}
	if r.IsCompressed() {
		decoded, err := filters.Inflate(data)
		if err != nil {
			log.Debug("hwp5: section decompression failed, using stored bytes", "stream", name, "error", err)
			warnings = append(warnings, Warning{Stream: name, Message: "decompression failed, using stored bytes"})
		} else {
			data = decoded
		}
	}

	recs, truncated := record.Decode(data)
	if truncated {
		log.Debug("hwp5: record stream truncated", "stream", name, "records", len(recs))
		warnings = append(warnings, Warning{Stream: name, Message: "record stream truncated"})
	}
	log.Debug("hwp5: decoded section", "stream", name, "records", len(recs))
	return newSection(idx, name, recs), warnings
}

// Text extracts the document text. Footnote, endnote and memo markers are
// included; use TextWithNotes to also get their bodies.
func (r *Reader) Text(opts *Options) (string, error) {
	result, err := r.TextWithNotes(opts)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// TextWithNotes extracts the document text together with footnotes,
// endnotes, hyperlinks and memos.
func (r *Reader) TextWithNotes(opts *Options) (*model.ExtractResult, error) {
	opts, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := r.check(); err != nil {
		return nil, err
	}

	s := newDecodeState(opts, r.binData())
	var sections []string
	for idx, n := 0, r.SectionCount(); idx < n; idx++ {
		sec, warnings := r.section(idx, s.log)
		s.warnings = append(s.warnings, warnings...)
		s.begin(sec)
		if text := s.text(sec); strings.TrimSpace(text) != "" {
			sections = append(sections, text)
		}
	}

	result := &model.ExtractResult{
		Text:       strings.Join(sections, opts.ParagraphSeparator),
		Footnotes:  s.footnotes,
		Endnotes:   s.endnotes,
		Hyperlinks: s.hyperlinks,
		Memos:      s.memos,
	}
	if opts.NormalizeUnicode {
		normalizeResult(result)
	}

	r.setWarnings(s.warnings)
	return result, nil
}

// Tables returns every table in the document in record order. Nested tables
// are returned on their own as well as inline in their parent cell. Markers
// in cells are numbered and resolved exactly as Text renders them.
func (r *Reader) Tables(opts *Options) ([]model.Table, error) {
	opts, err := resolve(opts)
	if err != nil {
		return nil, err
	}
	if err := r.check(); err != nil {
		return nil, err
	}

	s := newDecodeState(opts, r.binData())
	var all []model.Table
	for idx, n := 0, r.SectionCount(); idx < n; idx++ {
		sec, warnings := r.section(idx, s.log)
		s.warnings = append(s.warnings, warnings...)
		s.begin(sec)
		all = append(all, s.tables(sec)...)
	}

	if opts.NormalizeUnicode {
		for i := range all {
			for _, row := range all[i].Rows {
				for c := range row {
					row[c] = norm.NFC.String(row[c])
				}
			}
		}
	}

	r.setWarnings(s.warnings)
	return all, nil
}

// Memos returns the memos of the last section, numbered from 1. Memos
// without text are skipped.
func (r *Reader) Memos() ([]model.Memo, error) {
	if err := r.check(); err != nil {
		return nil, err
	}

	n := r.SectionCount()
	if n == 0 {
		r.setWarnings(nil)
		return nil, nil
	}

	sec, warnings := r.section(n-1, r.logger())
	var memos []model.Memo
	for _, idx := range sec.memoLists {
		if text := memoBody(sec.records, idx); text != "" {
			memos = append(memos, model.Memo{Number: len(memos) + 1, Text: text})
		}
	}

	r.setWarnings(warnings)
	return memos, nil
}

func normalizeResult(result *model.ExtractResult) {
	result.Text = norm.NFC.String(result.Text)
	for i := range result.Footnotes {
		result.Footnotes[i].Text = norm.NFC.String(result.Footnotes[i].Text)
	}
	for i := range result.Endnotes {
		result.Endnotes[i].Text = norm.NFC.String(result.Endnotes[i].Text)
	}
	for i := range result.Hyperlinks {
		result.Hyperlinks[i].Text = norm.NFC.String(result.Hyperlinks[i].Text)
	}
	for i := range result.Memos {
		result.Memos[i].Text = norm.NFC.String(result.Memos[i].Text)
		result.Memos[i].ReferencedText = norm.NFC.String(result.Memos[i].ReferencedText)
	}
}
