// Package json connects hexutil values to JSON through json-iterator.
//
// By default JSON is human-readable and a value is written as a hex string.
// With Options.Binary set, the package instead behaves like a binary format and
// writes an array of byte numbers, which is useful to exercise the binary path
// with a readable wire form.
package json

import (
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/oy3o/hexutil"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// Encoder adapts a *jsoniter.Stream to hexutil.Serializer.
type Encoder struct {
	stream *jsoniter.Stream
	binary bool
}

var _ hexutil.Serializer = (*Encoder)(nil)

func NewEncoder(stream *jsoniter.Stream, binary bool) *Encoder {
	return &Encoder{stream: stream, binary: binary}
}

func (e *Encoder) HumanReadable() bool { return !e.binary }

func (e *Encoder) SerializeString(s string) error {
	e.stream.WriteString(s)
	return e.stream.Error
}

func (e *Encoder) SerializeTupleStruct(string, int) (hexutil.TupleSerializer, error) {
	e.stream.WriteArrayStart()
	return &tuple{stream: e.stream}, e.stream.Error
}

type tuple struct {
	stream *jsoniter.Stream
	n      int
}

func (t *tuple) SerializeField(b byte) error {
	if t.n > 0 {
		t.stream.WriteMore()
	}
	t.n++
	t.stream.WriteUint8(b)
	return t.stream.Error
}

func (t *tuple) End() error {
	t.stream.WriteArrayEnd()
	return t.stream.Error
}

// Decoder adapts a *jsoniter.Iterator to hexutil.Deserializer.
type Decoder struct {
	iter   *jsoniter.Iterator
	binary bool
}

var _ hexutil.Deserializer = (*Decoder)(nil)

func NewDecoder(iter *jsoniter.Iterator, binary bool) *Decoder {
	return &Decoder{iter: iter, binary: binary}
}

func (d *Decoder) HumanReadable() bool { return !d.binary }

func (d *Decoder) DeserializeString(meta hexutil.Metadata) (string, error) {
	if d.iter.WhatIsNext() != jsoniter.StringValue {
		return "", d.typeError(meta.Expecting)
	}
	s := d.iter.ReadString()
	return s, d.err("read string")
}

func (d *Decoder) DeserializeTupleStruct(meta hexutil.Metadata) (hexutil.SeqAccess, error) {
	if d.iter.WhatIsNext() != jsoniter.ArrayValue {
		return nil, d.typeError(meta.Expecting)
	}
	return &seq{d: d}, nil
}

func (d *Decoder) typeError(expecting string) error {
	v := d.iter.Read()
	if err := d.err("read value"); err != nil {
		return err
	}
	return hexutil.NewTypeError(hexutil.UnexpectedValue(v), expecting)
}

// err returns the iterator's pending error. A number that ends the input leaves
// io.EOF behind, which is not a failure.
func (d *Decoder) err(op string) error {
	if d.iter.Error == nil || d.iter.Error == io.EOF {
		return nil
	}
	return errors.Wrapf(d.iter.Error, "json: %s", op)
}

type seq struct {
	d    *Decoder
	done bool
}

func (s *seq) NextElement() (byte, bool, error) {
	if s.done {
		return 0, false, nil
	}
	iter := s.d.iter
	if !iter.ReadArray() {
		s.done = true
		return 0, false, s.d.err("read array")
	}
	if err := s.d.err("read array"); err != nil {
		return 0, false, err
	}

	var v any
	if iter.WhatIsNext() == jsoniter.NumberValue {
		v = number(string(iter.ReadNumber()))
	} else {
		v = iter.Read()
	}
	if err := s.d.err("read field"); err != nil {
		return 0, false, err
	}
	b, err := hexutil.FieldByte(v)
	return b, err == nil, err
}

// JSON arrays do not announce their length.
func (s *seq) SizeHint() (int, bool) { return 0, false }

// number keeps integers exact so they are reported as integers in errors.
func number(n string) any {
	if u, err := strconv.ParseUint(n, 10, 64); err == nil {
		return u
	}
	if i, err := strconv.ParseInt(n, 10, 64); err == nil {
		return i
	}
	f, _ := strconv.ParseFloat(n, 64)
	return f
}

// Options selects the JSON flavor.
type Options struct {
	// Binary writes and reads byte arrays instead of hex strings.
	Binary bool
}

// Marshal returns the JSON encoding of v.
func (o Options) Marshal(v hexutil.ToHex) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)

	if err := hexutil.Serialize(NewEncoder(stream, o.Binary), v); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, errors.Wrap(stream.Error, "json: write")
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// Unmarshal decodes one JSON value from data into v. Anything but whitespace
// after the value is an error.
func (o Options) Unmarshal(data []byte, v hexutil.FromHex) error {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)

	if err := hexutil.Deserialize(NewDecoder(iter, o.Binary), v); err != nil {
		return err
	}
	if iter.WhatIsNext() != jsoniter.InvalidValue || iter.Error != io.EOF {
		return errors.Wrap(hexutil.ErrTrailingData, "json")
	}
	return nil
}

// Marshal returns the human-readable JSON encoding of v.
func Marshal(v hexutil.ToHex) ([]byte, error) { return Options{}.Marshal(v) }

// Unmarshal decodes human-readable JSON into v.
func Unmarshal(data []byte, v hexutil.FromHex) error { return Options{}.Unmarshal(data, v) }
