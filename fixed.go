package hexutil

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// Order is the byte order Fixed encodes its payload in.
var Order binary.ByteOrder = binary.BigEndian

// sizeCache avoids the high performance cost of reflection in `binary.Size`
// on every call. xsync.Map makes it concurrent-safe.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// Fixed gives any fixed-size Payload a hex form: its binary form is the payload
// encoded with encoding/binary in Order.
//
// Constraint: Payload MUST NOT contain variable-size fields like slices, maps or
// strings. Size panics for such payloads.
type Fixed[Payload any] struct {
	Payload Payload
}

var (
	_ Value                      = (*Fixed[uint32])(nil)
	_ Sizer                      = (*Fixed[uint32])(nil)
	_ fmt.Stringer               = (*Fixed[uint32])(nil)
	_ encoding.TextMarshaler     = (*Fixed[uint32])(nil)
	_ encoding.TextUnmarshaler   = (*Fixed[uint32])(nil)
	_ encoding.BinaryMarshaler   = (*Fixed[uint32])(nil)
	_ encoding.BinaryUnmarshaler = (*Fixed[uint32])(nil)
)

// Size returns the size of the payload in bytes, cached per payload type.
func (c *Fixed[Payload]) Size() int {
	payloadType := reflect.TypeOf((*Payload)(nil)).Elem()
	if size, ok := sizeCache.Load(payloadType); ok {
		return size
	}

	size := binary.Size(&c.Payload)
	if size < 0 {
		panic(fmt.Sprintf("hexutil: Fixed payload %s is not fixed-size", payloadType))
	}
	sizeCache.Store(payloadType, size)
	return size
}

// Bytes returns a new slice holding the encoded payload.
func (c *Fixed[Payload]) Bytes() []byte {
	buf := make([]byte, c.Size())
	if _, err := binary.Encode(buf, Order, &c.Payload); err != nil {
		// buf is exactly Size bytes, which binary.Encode always accepts for a
		// fixed-size payload.
		panic(err)
	}
	return buf
}

// SetBytes decodes the payload from b, which must be exactly Size bytes.
func (c *Fixed[Payload]) SetBytes(b []byte) error {
	if len(b) != c.Size() {
		return InvalidLength(len(b))
	}
	if _, err := binary.Decode(b, Order, &c.Payload); err != nil {
		return InvalidLength(len(b))
	}
	return nil
}

func (c *Fixed[Payload]) String() string { return String(c) }

func (c *Fixed[Payload]) MarshalText() ([]byte, error) { return MarshalText(c) }

func (c *Fixed[Payload]) UnmarshalText(text []byte) error { return Parse(text, c) }

func (c *Fixed[Payload]) MarshalBinary() ([]byte, error) { return c.Bytes(), nil }

func (c *Fixed[Payload]) UnmarshalBinary(data []byte) error { return c.SetBytes(data) }
