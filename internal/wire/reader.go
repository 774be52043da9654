package wire

import (
	"bufio"
	"io"

	"github.com/cockroachdb/errors"
)

// DefaultMaxField bounds length-prefixed fields so a corrupt prefix cannot make
// the reader allocate without limit.
const DefaultMaxField = 1 << 20 // 1MB

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Reader reads binary fields. It records the first error; subsequent reads
// become no-ops.
type Reader struct {
	r        byteReader
	count    int64 // total bytes read
	err      error // first error encountered
	maxField int
}

// NewReader creates a new Reader. Readers that can already hand out single
// bytes (BytesReader, bytes.Reader, bytes.Buffer, bufio.Reader) are used
// directly; anything else is wrapped in a bufio.Reader.
func NewReader(r io.Reader) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch br := r.(type) {
	case *Reader:
		return &Reader{r: br.r, maxField: br.maxField}, nil
	case byteReader:
		return &Reader{r: br, maxField: DefaultMaxField}, nil
	}
	return &Reader{r: bufio.NewReader(r), maxField: DefaultMaxField}, nil
}

// WithMaxField sets the largest length-prefixed field the reader accepts and
// returns the reader for chaining.
func (r *Reader) WithMaxField(n int) *Reader {
	r.maxField = n
	return r
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.r.Read(p)
	if n < 0 {
		r.setError(ErrInvalidRead)
		return 0, r.err
	}
	r.count += int64(n)
	r.setError(err)
	return n, r.err
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.setError(err)
		return 0, err
	}
	r.count++
	return b, nil
}

func (r *Reader) ReadUint64(dest *uint64) {
	buf := r.readFull(8)
	if r.err == nil {
		*dest = Order.Uint64(buf)
	}
}

// ReadBytes reads n bytes into a new slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return r.readFull(n)
}

// ReadLengthPrefixed reads a field written by Writer.WriteLengthPrefixed.
func (r *Reader) ReadLengthPrefixed() []byte {
	var n uint64
	r.ReadUint64(&n)
	if r.err != nil {
		return nil
	}
	if n > uint64(r.maxField) {
		r.setError(errors.Wrapf(ErrFieldTooLarge, "%d bytes, limit %d", n, r.maxField))
		return nil
	}
	buf := r.ReadBytes(int(n))
	if r.err == io.ErrUnexpectedEOF {
		r.err = errors.Wrapf(ErrTruncatedData, "expected %d bytes", n)
	}
	return buf
}

// readFull is an internal helper to read an exact number of bytes.
func (r *Reader) readFull(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF {
			// The field was expected, so even a clean end of input truncates it.
			r.err = io.ErrUnexpectedEOF
		} else {
			r.err = err
		}
		return nil
	}
	return buf
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}
