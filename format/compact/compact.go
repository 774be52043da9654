// Package compact is a minimal binary format in the style of bincode: a tuple
// record is its fields' raw bytes in order, with no name, count or tags, and a
// string is a little-endian uint64 length followed by the string's bytes.
//
// Because records carry no count, the reader trusts the declared length of the
// type. A short input is reported as a missing field, and bytes left over after
// a value make Unmarshal fail.
package compact

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/oy3o/hexutil"
	"github.com/oy3o/hexutil/internal/wire"
)

// Encoder writes values in the compact format.
type Encoder struct {
	w *wire.Writer
}

var _ hexutil.Serializer = (*Encoder)(nil)

// NewEncoder returns an Encoder writing to w. Output may be buffered until
// Flush is called.
func NewEncoder(w io.Writer) (*Encoder, error) {
	ww, err := wire.NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &Encoder{w: ww}, nil
}

// Encode writes v.
func (e *Encoder) Encode(v hexutil.ToHex) error {
	return hexutil.Serialize(e, v)
}

// Flush writes buffered output to the underlying writer.
func (e *Encoder) Flush() error { return e.w.Flush() }

func (e *Encoder) HumanReadable() bool { return false }

func (e *Encoder) SerializeString(s string) error {
	e.w.WriteLengthPrefixed(s)
	return e.w.Err()
}

func (e *Encoder) SerializeTupleStruct(string, int) (hexutil.TupleSerializer, error) {
	return tuple{e.w}, e.w.Err()
}

type tuple struct{ w *wire.Writer }

func (t tuple) SerializeField(b byte) error {
	t.w.WriteUint8(b)
	return t.w.Err()
}

func (t tuple) End() error { return t.w.Err() }

// Decoder reads values in the compact format.
type Decoder struct {
	r *wire.Reader
}

var _ hexutil.Deserializer = (*Decoder)(nil)

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) (*Decoder, error) {
	rr, err := wire.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &Decoder{r: rr}, nil
}

// Decode reads one value into v.
func (d *Decoder) Decode(v hexutil.FromHex) error {
	return hexutil.Deserialize(d, v)
}

func (d *Decoder) HumanReadable() bool { return false }

func (d *Decoder) DeserializeString(hexutil.Metadata) (string, error) {
	b := d.r.ReadLengthPrefixed()
	if err := d.r.Err(); err != nil {
		return "", errors.Wrap(err, "compact: read string")
	}
	return string(b), nil
}

func (d *Decoder) DeserializeTupleStruct(meta hexutil.Metadata) (hexutil.SeqAccess, error) {
	return &seq{r: d.r, remaining: meta.Len, declared: meta.Len}, nil
}

type seq struct {
	r         *wire.Reader
	remaining int
	declared  int
}

func (s *seq) NextElement() (byte, bool, error) {
	if s.remaining == 0 {
		return 0, false, nil
	}
	b, err := s.r.ReadByte()
	if err == io.EOF {
		// The input ran out inside the record: a missing field.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "compact: read field")
	}
	s.remaining--
	return b, true, nil
}

func (s *seq) SizeHint() (int, bool) { return s.declared, true }

// Size returns the number of bytes Marshal produces for v.
func Size(v hexutil.ToHex) int {
	return len(v.Bytes())
}

// Marshal returns the compact encoding of v.
func Marshal(v hexutil.ToHex) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf)
	if err != nil {
		return nil, err
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalTo encodes v into the pre-allocated p without allocating and returns
// the number of bytes written. It returns io.ErrShortWrite if p is smaller than
// Size(v).
func MarshalTo(p []byte, v hexutil.ToHex) (int, error) {
	w := wire.NewBytesWriter(p)
	enc, err := NewEncoder(w)
	if err != nil {
		return 0, err
	}
	if err := enc.Encode(v); err != nil {
		return w.Len(), err
	}
	return w.Len(), enc.Flush()
}

// Unmarshal decodes data into v. All of data must be consumed.
func Unmarshal(data []byte, v hexutil.FromHex) error {
	r := wire.NewBytesReader(data)
	dec, err := NewDecoder(r)
	if err != nil {
		return err
	}
	if err := dec.Decode(v); err != nil {
		return err
	}
	if n := r.Available(); n > 0 {
		return errors.Wrapf(hexutil.ErrTrailingData, "compact: %d bytes left", n)
	}
	return nil
}
