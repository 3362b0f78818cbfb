package hwp5

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/hwp/model"
)

// Options controls how text and tables are assembled.
type Options struct {
	// ParagraphSeparator joins the text of consecutive sections.
	ParagraphSeparator string `yaml:"paragraph_separator"`
	// LineSeparator joins paragraphs within a section.
	LineSeparator string `yaml:"line_separator"`

	TableStyle     model.TableStyle `yaml:"table_style"`
	TableDelimiter string           `yaml:"table_delimiter"` // used by the delimited style

	// ImageMarker is a template with {filename} and {index} placeholders
	// emitted where a picture is anchored. Empty disables markers.
	ImageMarker string `yaml:"image_marker"`

	IncludeEmptyParagraphs bool `yaml:"include_empty_paragraphs"`

	// NormalizeUnicode applies NFC normalization to all extracted text.
	NormalizeUnicode bool `yaml:"normalize_unicode"`

	// Logger receives debug records about recovered problems. Nil means
	// slog.Default().
	Logger *slog.Logger `yaml:"-"`
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() *Options {
	return &Options{
		ParagraphSeparator: "\n\n",
		LineSeparator:      "\n",
		TableStyle:         model.TableStyleMarkdown,
		TableDelimiter:     "\t",
	}
}

// LoadOptions reads a YAML options file. Fields missing from the file keep
// their default values.
func LoadOptions(path string) (*Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read options %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("parse options %s: %w", path, err)
	}
	return opts, opts.Validate()
}

// Validate checks that the option values are usable.
func (o *Options) Validate() error {
	if !o.TableStyle.Valid() {
		return fmt.Errorf("table_style: unknown style %q", o.TableStyle)
	}
	if o.TableStyle == model.TableStyleDelimited && o.TableDelimiter == "" {
		return fmt.Errorf("table_delimiter is required for the delimited style")
	}
	return nil
}

func (o *Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// resolve returns opts, or the defaults when opts is nil.
func resolve(opts *Options) (*Options, error) {
	if opts == nil {
		return DefaultOptions(), nil
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}
