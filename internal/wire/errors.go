package wire

import "github.com/cockroachdb/errors"

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with a nil io.Reader/io.Writer.
	ErrNilIO = errors.New("wire: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrAlreadyBuffered indicates that NewWriter was handed a bufio.Writer smaller than
	// requested; wrapping it again would double-buffer.
	ErrAlreadyBuffered = errors.New("wire: writer is already buffered")

	// ErrInvalidRead indicates that an io.Reader returned an invalid (negative) count from Read.
	ErrInvalidRead = errors.New("wire: reader returned invalid count from Read")

	// ErrTruncatedData indicates that the input ended before a length-prefixed field did.
	ErrTruncatedData = errors.New("wire: truncated data")

	// ErrFieldTooLarge indicates a length prefix beyond the reader's limit.
	ErrFieldTooLarge = errors.New("wire: length-prefixed field too large")
)
