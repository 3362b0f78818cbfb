package hwp

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/tsawler/hwp/format"
	"github.com/tsawler/hwp/hwp5"
	"github.com/tsawler/hwp/model"
	"github.com/tsawler/hwp/ocr"
)

// ErrUnsupportedFormat is returned for inputs the extractor cannot read,
// such as HWPX archives.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor provides a fluent interface for extracting content from HWP
// documents. Each configuration method returns a new Extractor instance,
// allowing method chaining without affecting the original.
type Extractor struct {
	// Source
	filename string
	format   format.Format

	reader *hwp5.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		format:       e.format,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f, err := detectFormat(e.filename)
	if err != nil {
		return err
	}
	e.format = f
	if f == format.HWPX {
		return fmt.Errorf("%w: %s (HWPX)", ErrUnsupportedFormat, e.filename)
	}

	r, err := hwp5.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open HWP: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// detectFormat uses the extension, falling back to the file contents when
// the extension is not recognized.
func detectFormat(filename string) (format.Format, error) {
	if f := format.Detect(filename); f != format.Unknown {
		return f, nil
	}

	file, err := os.Open(filename)
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return format.Unknown, fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	f, err := format.DetectFromReader(file, info.Size())
	if err != nil {
		// Unreadable archives are left to the HWP reader to reject.
		return format.Unknown, nil
	}
	return f, nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// ParagraphSeparator sets the text placed between sections.
// The default is a blank line ("\n\n").
func (e *Extractor) ParagraphSeparator(sep string) *Extractor {
	newExt := e.clone()
	newExt.options.reader.ParagraphSeparator = sep
	return newExt
}

// LineSeparator sets the text placed between paragraphs of a section.
// The default is "\n".
func (e *Extractor) LineSeparator(sep string) *Extractor {
	newExt := e.clone()
	newExt.options.reader.LineSeparator = sep
	return newExt
}

// TableStyle selects how tables are rendered in extracted text.
//
// Example:
//
//	text, _, err := hwp.Open("report.hwp").TableStyle(model.TableStyleCSV).Text()
func (e *Extractor) TableStyle(style model.TableStyle) *Extractor {
	newExt := e.clone()
	newExt.options.reader.TableStyle = style
	return newExt
}

// TableDelimiter sets the cell delimiter and switches tables to the
// delimited style.
func (e *Extractor) TableDelimiter(delim string) *Extractor {
	newExt := e.clone()
	newExt.options.reader.TableStyle = model.TableStyleDelimited
	newExt.options.reader.TableDelimiter = delim
	return newExt
}

// ImageMarker sets the template emitted where a picture is anchored in the
// text. The placeholders {filename} and {index} are replaced.
//
// Example:
//
//	text, _, err := hwp.Open("report.hwp").ImageMarker("![{filename}]").Text()
func (e *Extractor) ImageMarker(template string) *Extractor {
	newExt := e.clone()
	newExt.options.reader.ImageMarker = template
	return newExt
}

// IncludeEmptyParagraphs keeps paragraphs that contain only whitespace.
func (e *Extractor) IncludeEmptyParagraphs() *Extractor {
	newExt := e.clone()
	newExt.options.reader.IncludeEmptyParagraphs = true
	return newExt
}

// NormalizeUnicode applies NFC normalization to extracted text, composing
// decomposed Hangul jamo into syllables.
func (e *Extractor) NormalizeUnicode() *Extractor {
	newExt := e.clone()
	newExt.options.reader.NormalizeUnicode = true
	return newExt
}

// WithLogger sets the logger that receives debug records.
func (e *Extractor) WithLogger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.reader.Logger = l
	return newExt
}

// WithOptions replaces all reader options. A nil opts restores the
// defaults. The current logger is kept when opts has none.
func (e *Extractor) WithOptions(opts *hwp5.Options) *Extractor {
	newExt := e.clone()
	newExt.setReaderOptions(opts)
	return newExt
}

// OptionsFile loads reader options from a YAML file. A file that cannot be
// read or is invalid makes every later terminal operation fail.
//
// Example:
//
//	text, _, err := hwp.Open("report.hwp").OptionsFile("hwp.yaml").Text()
func (e *Extractor) OptionsFile(path string) *Extractor {
	newExt := e.clone()
	if newExt.err != nil {
		return newExt
	}
	opts, err := hwp5.LoadOptions(path)
	if err != nil {
		newExt.err = fmt.Errorf("loading options: %w", err)
		return newExt
	}
	newExt.setReaderOptions(opts)
	return newExt
}

func (e *Extractor) setReaderOptions(opts *hwp5.Options) {
	if opts == nil {
		opts = hwp5.DefaultOptions()
	}
	logger := e.options.reader.Logger
	e.options.reader = *opts
	if e.options.reader.Logger == nil {
		e.options.reader.Logger = logger
	}
}

// OCR runs text recognition over raster images returned by Images. It
// needs a build with the "ocr" tag; otherwise Images reports a warning.
func (e *Extractor) OCR() *Extractor {
	newExt := e.clone()
	newExt.options.ocr = true
	return newExt
}

// ============================================================================
// Inspection Methods (do not close the reader)
// ============================================================================
//
// The inspection methods open the document on first use and leave it open
// for later calls. When no terminal operation follows, call Close.
//
//	ext := hwp.Open("report.hwp")
//	defer ext.Close()
//	encrypted, err := ext.IsEncrypted()

// IsValid reports whether the document has an HWP FileHeader. Call Close
// when no terminal operation follows.
func (e *Extractor) IsValid() (bool, error) {
	if err := e.prepare(); err != nil {
		return false, err
	}
	return e.reader.IsValid(), nil
}

// IsEncrypted reports whether the document is password protected. Call
// Close when no terminal operation follows.
func (e *Extractor) IsEncrypted() (bool, error) {
	if err := e.prepare(); err != nil {
		return false, err
	}
	return e.reader.IsEncrypted(), nil
}

// IsCompressed reports whether the document's streams are compressed.
func (e *Extractor) IsCompressed() (bool, error) {
	if err := e.prepare(); err != nil {
		return false, err
	}
	return e.reader.IsCompressed(), nil
}

// SectionCount returns the number of body text sections.
func (e *Extractor) SectionCount() (int, error) {
	if err := e.prepare(); err != nil {
		return 0, err
	}
	return e.reader.SectionCount(), nil
}

// ============================================================================
// Terminal Operations (execute extraction and return results)
// ============================================================================

// Text extracts the document text with tables rendered in place and
// footnote, endnote and memo markers inline.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	text, warnings, err := hwp.Open("report.hwp").Text()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", hwp.FormatWarnings(warnings))
//	}
func (e *Extractor) Text() (string, []Warning, error) {
	result, warnings, err := e.TextWithNotes()
	if err != nil {
		return "", nil, err
	}
	return result.Text, warnings, nil
}

// TextWithNotes extracts the text together with footnote, endnote,
// hyperlink and memo bodies.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) TextWithNotes() (*model.ExtractResult, []Warning, error) {
	if err := e.prepare(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	result, err := e.reader.TextWithNotes(e.options.readerOptions())
	if err != nil {
		return nil, nil, err
	}
	return result, e.collectWarnings(), nil
}

// Tables returns every table in the document, nested tables included.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	tables, _, err := hwp.Open("report.hwp").Tables()
//	for _, t := range tables {
//	    fmt.Println(t.ToMarkdown())
//	}
func (e *Extractor) Tables() ([]model.Table, []Warning, error) {
	if err := e.prepare(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	tables, err := e.reader.Tables(e.options.readerOptions())
	if err != nil {
		return nil, nil, err
	}
	return tables, e.collectWarnings(), nil
}

// Images returns the embedded pictures. With OCR enabled, raster images
// carry their recognized text; OCR problems are reported as warnings.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Images() ([]model.Image, []Warning, error) {
	if err := e.prepare(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	images, err := e.reader.Images()
	if err != nil {
		return nil, nil, err
	}
	warnings := e.collectWarnings()
	if e.options.ocr && len(images) > 0 {
		if w, ok := recognize(images); !ok {
			warnings = append(warnings, w)
		}
	}
	return images, warnings, nil
}

func recognize(images []model.Image) (Warning, bool) {
	client, err := ocr.New()
	if err != nil {
		return Warning{Message: "OCR unavailable: " + err.Error()}, false
	}
	defer client.Close()

	if err := client.RecognizeImages(images); err != nil {
		return Warning{Message: "OCR failed: " + err.Error()}, false
	}
	return Warning{}, true
}

// Memos returns the document's memos (reviewer comments) in order.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Memos() ([]model.Memo, []Warning, error) {
	if err := e.prepare(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	memos, err := e.reader.Memos()
	if err != nil {
		return nil, nil, err
	}
	return memos, e.collectWarnings(), nil
}

// prepare returns the accumulated error or opens the reader.
func (e *Extractor) prepare() error {
	if e.err != nil {
		return e.err
	}
	if err := e.ensureReader(); err != nil {
		return err
	}
	if e.reader == nil {
		return hwp5.ErrClosed
	}
	if l := e.options.reader.Logger; l != nil {
		e.reader.SetLogger(l)
	}
	return nil
}

func (e *Extractor) collectWarnings() []Warning {
	return fromReaderWarnings(e.reader.Warnings())
}
