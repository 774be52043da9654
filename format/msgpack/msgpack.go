// Package msgpack connects hexutil values to MessagePack. It is a binary
// format: values are written as an array with one unsigned integer per byte.
package msgpack

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/oy3o/hexutil"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Encoder adapts a *msgpack.Encoder to hexutil.Serializer.
type Encoder struct {
	enc *msgpack.Encoder
}

var _ hexutil.Serializer = (*Encoder)(nil)

func NewEncoder(enc *msgpack.Encoder) *Encoder {
	return &Encoder{enc: enc}
}

func (e *Encoder) HumanReadable() bool { return false }

func (e *Encoder) SerializeString(s string) error {
	return e.enc.EncodeString(s)
}

func (e *Encoder) SerializeTupleStruct(_ string, n int) (hexutil.TupleSerializer, error) {
	if err := e.enc.EncodeArrayLen(n); err != nil {
		return nil, err
	}
	return tuple{e.enc}, nil
}

type tuple struct{ enc *msgpack.Encoder }

func (t tuple) SerializeField(b byte) error { return t.enc.EncodeUint(uint64(b)) }

func (t tuple) End() error { return nil }

// Decoder adapts a *msgpack.Decoder to hexutil.Deserializer.
type Decoder struct {
	dec *msgpack.Decoder
}

var _ hexutil.Deserializer = (*Decoder)(nil)

func NewDecoder(dec *msgpack.Decoder) *Decoder {
	return &Decoder{dec: dec}
}

func (d *Decoder) HumanReadable() bool { return false }

func (d *Decoder) DeserializeString(meta hexutil.Metadata) (string, error) {
	code, err := d.dec.PeekCode()
	if err != nil {
		return "", errors.Wrap(err, "msgpack: read string")
	}
	if !isString(code) {
		return "", d.typeError(meta.Expecting)
	}
	s, err := d.dec.DecodeString()
	return s, errors.Wrap(err, "msgpack: read string")
}

func (d *Decoder) DeserializeTupleStruct(meta hexutil.Metadata) (hexutil.SeqAccess, error) {
	code, err := d.dec.PeekCode()
	if err != nil {
		return nil, errors.Wrap(err, "msgpack: read array")
	}
	if !isArray(code) {
		return nil, d.typeError(meta.Expecting)
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return nil, errors.Wrap(err, "msgpack: read array")
	}
	return &seq{dec: d.dec, remaining: n, declared: n}, nil
}

// typeError consumes the offending value so it can be described.
func (d *Decoder) typeError(expecting string) error {
	v, err := d.dec.DecodeInterface()
	if err != nil {
		return errors.Wrap(err, "msgpack: read value")
	}
	return hexutil.NewTypeError(hexutil.UnexpectedValue(v), expecting)
}

type seq struct {
	dec       *msgpack.Decoder
	remaining int
	declared  int
}

func (s *seq) NextElement() (byte, bool, error) {
	if s.remaining <= 0 {
		return 0, false, nil
	}
	s.remaining--
	v, err := s.dec.DecodeInterface()
	if err != nil {
		return 0, false, errors.Wrap(err, "msgpack: read field")
	}
	b, err := hexutil.FieldByte(v)
	return b, err == nil, err
}

func (s *seq) SizeHint() (int, bool) { return s.declared, true }

func isString(c byte) bool {
	return msgpcode.IsFixedString(c) ||
		c == msgpcode.Str8 || c == msgpcode.Str16 || c == msgpcode.Str32 ||
		c == msgpcode.Bin8 || c == msgpcode.Bin16 || c == msgpcode.Bin32
}

func isArray(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

// EncodeValue writes v to enc. Types use it to implement msgpack.CustomEncoder:
//
//	func (k *Key) EncodeMsgpack(enc *msgpack.Encoder) error {
//		return hexmsgpack.EncodeValue(enc, k)
//	}
func EncodeValue(enc *msgpack.Encoder, v hexutil.ToHex) error {
	return hexutil.Serialize(NewEncoder(enc), v)
}

// DecodeValue reads v from dec, for msgpack.CustomDecoder implementations.
func DecodeValue(dec *msgpack.Decoder, v hexutil.FromHex) error {
	return hexutil.Deserialize(NewDecoder(dec), v)
}

// Marshal returns the MessagePack encoding of v.
func Marshal(v hexutil.ToHex) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeValue(msgpack.NewEncoder(&buf), v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes data into v. All of data must be consumed.
func Unmarshal(data []byte, v hexutil.FromHex) error {
	r := bytes.NewReader(data)
	if err := DecodeValue(msgpack.NewDecoder(r), v); err != nil {
		return err
	}
	if n := r.Len(); n > 0 {
		return errors.Wrapf(hexutil.ErrTrailingData, "msgpack: %d bytes left", n)
	}
	return nil
}
