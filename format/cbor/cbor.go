// Package cbor connects hexutil values to CBOR through ugorji/go/codec. CBOR is
// a binary format: values are written as an array of unsigned integers, one per
// byte.
package cbor

import (
	"github.com/cockroachdb/errors"
	"github.com/oy3o/hexutil"
	"github.com/ugorji/go/codec"
)

var handle = &codec.CborHandle{}

// Encoder adapts a *codec.Encoder using a CBOR handle to hexutil.Serializer.
type Encoder struct {
	enc *codec.Encoder
}

var _ hexutil.Serializer = (*Encoder)(nil)

func NewEncoder(enc *codec.Encoder) *Encoder {
	return &Encoder{enc: enc}
}

func (e *Encoder) HumanReadable() bool { return false }

func (e *Encoder) SerializeString(s string) error {
	return errors.Wrap(e.enc.Encode(s), "cbor: write string")
}

func (e *Encoder) SerializeTupleStruct(_ string, n int) (hexutil.TupleSerializer, error) {
	return &tuple{enc: e.enc, fields: make([]uint64, 0, n)}, nil
}

// tuple collects the fields so the array is written with a definite length.
type tuple struct {
	enc    *codec.Encoder
	fields []uint64
}

func (t *tuple) SerializeField(b byte) error {
	t.fields = append(t.fields, uint64(b))
	return nil
}

func (t *tuple) End() error {
	return errors.Wrap(t.enc.Encode(t.fields), "cbor: write array")
}

// Decoder adapts a *codec.Decoder using a CBOR handle to hexutil.Deserializer.
type Decoder struct {
	dec *codec.Decoder
}

var _ hexutil.Deserializer = (*Decoder)(nil)

func NewDecoder(dec *codec.Decoder) *Decoder {
	return &Decoder{dec: dec}
}

func (d *Decoder) HumanReadable() bool { return false }

func (d *Decoder) next() (any, error) {
	var v any
	if err := d.dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "cbor: read value")
	}
	return v, nil
}

func (d *Decoder) DeserializeString(meta hexutil.Metadata) (string, error) {
	v, err := d.next()
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", hexutil.NewTypeError(hexutil.UnexpectedValue(v), meta.Expecting)
	}
	return s, nil
}

func (d *Decoder) DeserializeTupleStruct(meta hexutil.Metadata) (hexutil.SeqAccess, error) {
	v, err := d.next()
	if err != nil {
		return nil, err
	}
	items, ok := v.([]any)
	if !ok {
		return nil, hexutil.NewTypeError(hexutil.UnexpectedValue(v), meta.Expecting)
	}
	return &seq{items: items}, nil
}

type seq struct {
	items []any
	i     int
}

func (s *seq) NextElement() (byte, bool, error) {
	if s.i >= len(s.items) {
		return 0, false, nil
	}
	v := s.items[s.i]
	s.i++
	b, err := hexutil.FieldByte(v)
	return b, err == nil, err
}

func (s *seq) SizeHint() (int, bool) { return len(s.items), true }

// Marshal returns the CBOR encoding of v.
func Marshal(v hexutil.ToHex) ([]byte, error) {
	var out []byte
	if err := hexutil.Serialize(NewEncoder(codec.NewEncoderBytes(&out, handle)), v); err != nil {
		return nil, err
	}
	return out, nil
}

// Unmarshal decodes data into v. All of data must be consumed.
func Unmarshal(data []byte, v hexutil.FromHex) error {
	dec := codec.NewDecoderBytes(data, handle)
	if err := hexutil.Deserialize(NewDecoder(dec), v); err != nil {
		return err
	}
	if n := len(data) - dec.NumBytesRead(); n > 0 {
		return errors.Wrapf(hexutil.ErrTrailingData, "cbor: %d bytes left", n)
	}
	return nil
}
