package hexutil

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Int is an integer whose binary form is its little-endian encoding, so
// Int[uint16]{V: 0x1234} is "3412".
type Int[T constraints.Integer] struct {
	V T
}

func (x Int[T]) Size() int { return int(unsafe.Sizeof(x.V)) }

func (x Int[T]) Bytes() []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, 8), uint64(x.V))[:x.Size()]
}

func (x *Int[T]) SetBytes(b []byte) error {
	if len(b) != x.Size() {
		return InvalidLength(len(b))
	}
	var u uint64
	for i := len(b) - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	x.V = T(u)
	return nil
}

func (x Int[T]) String() string { return String(x) }

func (x Int[T]) MarshalText() ([]byte, error) { return MarshalText(x) }

func (x *Int[T]) UnmarshalText(text []byte) error { return Parse(text, x) }
