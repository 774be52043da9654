package hexutil

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// Metadata describes a type to the serialization layer.
type Metadata struct {
	// Name is the type name written on tuple records.
	Name string
	// Expecting describes a valid value in error messages.
	Expecting string
	// Len is the number of bytes in the binary form. Only meaningful if Fixed.
	Len int
	// Fixed reports whether every value of the type has Len bytes. Binary
	// formats can only decode fixed types.
	Fixed bool
}

// FixedMetadata returns the metadata of a type named name whose values are
// always n bytes long.
func FixedMetadata(name string, n int) Metadata {
	return Metadata{
		Name:      name,
		Expecting: fmt.Sprintf("a valid %s (%d bytes of data)", name, n),
		Len:       n,
		Fixed:     true,
	}
}

// VariableMetadata returns the metadata of a type named name without a fixed
// length.
func VariableMetadata(name string) Metadata {
	return Metadata{Name: name, Expecting: "a valid " + name}
}

// metadataCache keeps derived metadata per dynamic type so the reflection below
// runs once per type.
var metadataCache = xsync.NewMap[reflect.Type, Metadata]()

// MetadataOf returns v's metadata. Types implementing Described are asked
// directly. For the rest the name is taken from the dynamic type (pointers are
// dereferenced) and the length from Sizer, if implemented; Size must then
// return the same value for every value of the type.
func MetadataOf(v any) Metadata {
	if d, ok := v.(Described); ok {
		return d.HexMetadata()
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return VariableMetadata("nil")
	}
	if meta, ok := metadataCache.Load(t); ok {
		return meta
	}

	name := typeName(t)
	meta := VariableMetadata(name)
	if s, ok := v.(Sizer); ok {
		meta = FixedMetadata(name, s.Size())
	}
	metadataCache.Store(t, meta)
	return meta
}

func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
