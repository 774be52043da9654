package hexutil

import "fmt"

// Serializer is the writing side of a serialization format.
type Serializer interface {
	// HumanReadable reports whether the format prefers text over compact binary.
	HumanReadable() bool
	// SerializeString writes a single text field. s must not be retained.
	SerializeString(s string) error
	// SerializeTupleStruct starts a tuple record named name holding exactly n fields.
	SerializeTupleStruct(name string, n int) (TupleSerializer, error)
}

// TupleSerializer writes the fields of one tuple record, in order.
type TupleSerializer interface {
	SerializeField(b byte) error
	End() error
}

// Deserializer is the reading side of a serialization format. meta describes the
// type being decoded; formats use it for the record name and in error messages.
type Deserializer interface {
	HumanReadable() bool
	// DeserializeString reads a single text field.
	DeserializeString(meta Metadata) (string, error)
	// DeserializeTupleStruct opens a tuple record of meta.Len fields.
	DeserializeTupleStruct(meta Metadata) (SeqAccess, error)
}

// SeqAccess hands out the fields of one record.
type SeqAccess interface {
	// NextElement returns the next field, or ok == false once the record has no
	// more fields.
	NextElement() (b byte, ok bool, err error)
	// SizeHint returns the number of fields the record declares, if the format
	// knows it up front.
	SizeHint() (int, bool)
}

// Serialize writes v to s: as a hex string if s is human-readable, otherwise as a
// tuple record named after v's type with one field per byte.
func Serialize(s Serializer, v ToHex) error {
	view := v.Bytes()
	if s.HumanReadable() {
		return s.SerializeString(EncodeToString(view))
	}

	tuple, err := s.SerializeTupleStruct(MetadataOf(v).Name, len(view))
	if err != nil {
		return err
	}
	for _, b := range view {
		if err := tuple.SerializeField(b); err != nil {
			return err
		}
	}
	return tuple.End()
}

// Deserialize reads v from d, mirroring Serialize. Conversion failures are
// returned as *DecodeError. Binary formats need v to have a fixed length.
func Deserialize(d Deserializer, v FromHex) error {
	meta := MetadataOf(v)
	if d.HumanReadable() {
		s, err := d.DeserializeString(meta)
		if err != nil {
			return err
		}
		if err := ParseString(s, v); err != nil {
			return decodeError(err, Unexpected{Kind: UnexpectedStr, Str: s}, meta.Expecting)
		}
		return nil
	}

	if !meta.Fixed {
		return NewCustomError(fmt.Sprintf("the type %s does not have a known length", meta.Name))
	}
	seq, err := d.DeserializeTupleStruct(meta)
	if err != nil {
		return err
	}
	buf, err := readTuple(seq, meta)
	if err != nil {
		return err
	}
	if err := v.SetBytes(buf); err != nil {
		return decodeError(err, Unexpected{Kind: UnexpectedSeq}, meta.Expecting)
	}
	return nil
}

// readTuple reads exactly meta.Len fields and then makes sure the record holds
// no further field. The first failure ends the read.
func readTuple(seq SeqAccess, meta Metadata) ([]byte, error) {
	declared, ok := seq.SizeHint()
	if !ok {
		declared = meta.Len
	}

	buf := make([]byte, meta.Len)
	for i := range buf {
		b, ok, err := seq.NextElement()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, NewLengthError(i, meta.Expecting)
		}
		buf[i] = b
	}

	_, extra, err := seq.NextElement()
	if err != nil {
		return nil, err
	}
	if extra {
		return nil, NewLengthError(declared, meta.Expecting)
	}
	return buf, nil
}
