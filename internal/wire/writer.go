package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
)

// Order is the byte order of integers and length prefixes.
var Order binary.ByteOrder = binary.LittleEndian

type flushWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
	Flush() error
}

// bufferWriter gives bytes.Buffer the no-op Flush the Writer expects.
type bufferWriter struct{ *bytes.Buffer }

func (bufferWriter) Flush() error { return nil }

// Writer is a buffered writer for binary fields. It records the first error
// that occurs; after that every write is a no-op.
type Writer struct {
	w     flushWriter
	count int64 // total bytes written
	err   error // first error encountered
	depth int   // > 0 for writers nested in another Writer
}

// NewWriterSize creates a new Writer with a buffer of at least size bytes.
// Writers over in-memory buffers are not buffered again.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch bw := w.(type) {
	// Share the buffer of an enclosing Writer; only the outermost one flushes.
	case *Writer:
		return &Writer{w: bw.w, depth: bw.depth + 1}, nil
	case *bufio.Writer:
		if bw.Size() >= size {
			return &Writer{w: bw}, nil
		}
		return nil, ErrAlreadyBuffered
	case *BytesWriter:
		return &Writer{w: bw}, nil
	case *bytes.Buffer:
		return &Writer{w: bufferWriter{bw}}, nil
	}
	return &Writer{w: bufio.NewWriterSize(w, size)}, nil
}

// NewWriter creates a new Writer with the default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteString implements io.StringWriter.
func (w *Writer) WriteString(s string) (int, error) {
	if s == "" || w.err != nil {
		return 0, w.err
	}
	n, err := w.w.WriteString(s)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(c byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.w.WriteByte(c); err != nil {
		w.setError(err)
		return err
	}
	w.count++
	return nil
}

func (w *Writer) WriteUint8(v uint8) { _ = w.WriteByte(v) }

func (w *Writer) WriteUint64(v uint64) {
	if w.err != nil {
		return
	}
	var buf [8]byte
	Order.PutUint64(buf[:], v)
	_, _ = w.Write(buf[:])
}

// WriteLengthPrefixed writes len(s) as a uint64 followed by s.
func (w *Writer) WriteLengthPrefixed(s string) {
	w.WriteUint64(uint64(len(s)))
	_, _ = w.WriteString(s)
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

// setError records the first non-nil error, keeping the root cause of a
// failure chain.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	if w.depth > 0 || w.err != nil {
		return w.err
	}
	err := w.w.Flush()
	w.setError(err)
	return err
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}
