package hexutil

// ToHex is implemented by values that have a canonical binary form.
//
// Bytes returns that form. The slice may be materialized on each call (for
// example from an integer) or borrowed from the value's own storage; callers
// only read it and never keep it past the conversion.
type ToHex interface {
	Bytes() []byte
}

// FromHex is implemented by values that can be rebuilt from their binary form.
//
// SetBytes is the fallible constructor. It should report failures with the
// conversion errors of this package (InvalidLength, InvalidValue, Custom, ...);
// any other error is treated as a custom message by the serialization layer.
// SetBytes must not retain b.
type FromHex interface {
	SetBytes(b []byte) error
}

// Value is a type that converts in both directions.
type Value interface {
	ToHex
	FromHex
}

// Sizer is an interface for types whose binary form has a fixed size.
// This lets decoders size their buffers before anything has been decoded.
type Sizer interface {
	// Size returns the size of the type in bytes.
	Size() int
}

// Described is implemented by types that declare their Metadata explicitly
// instead of having it derived by MetadataOf.
type Described interface {
	HexMetadata() Metadata
}
