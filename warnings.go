package hwp

import (
	"strings"

	"github.com/tsawler/hwp/hwp5"
)

// Warning describes a non-fatal problem met during extraction. The result
// was still produced but may be incomplete.
type Warning struct {
	// Stream names the document stream involved, when there is one.
	Stream  string
	Message string
}

// String returns the warning as "stream: message".
func (w Warning) String() string {
	if w.Stream == "" {
		return w.Message
	}
	return w.Stream + ": " + w.Message
}

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

func fromReaderWarnings(in []hwp5.Warning) []Warning {
	if len(in) == 0 {
		return nil
	}
	out := make([]Warning, len(in))
	for i, w := range in {
		out[i] = Warning{Stream: w.Stream, Message: w.Message}
	}
	return out
}
