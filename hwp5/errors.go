package hwp5

import "errors"

var (
	// ErrInvalidContainer is returned when the input is not an HWP 5.0
	// compound file or lacks a valid FileHeader.
	ErrInvalidContainer = errors.New("hwp5: invalid HWP 5.0 document")

	// ErrEncrypted is returned for password protected documents.
	ErrEncrypted = errors.New("hwp5: encrypted documents are not supported")

	// ErrClosed is returned by extraction methods after Close.
	ErrClosed = errors.New("hwp5: reader is closed")
)

// Warning describes a recoverable problem met during extraction, such as a
// truncated record stream or a stream that failed to decompress.
type Warning struct {
	Stream  string // stream the problem was found in, if any
	Message string
}

func (w Warning) String() string {
	if w.Stream == "" {
		return w.Message
	}
	return w.Stream + ": " + w.Message
}
