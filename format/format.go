// Package format names the serialization formats hexutil values can travel in,
// so tools can pick one at runtime.
package format

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/oy3o/hexutil"
	"github.com/oy3o/hexutil/format/cbor"
	"github.com/oy3o/hexutil/format/compact"
	"github.com/oy3o/hexutil/format/json"
	"github.com/oy3o/hexutil/format/msgpack"
	"github.com/samber/lo"
)

var ErrUnknownFormat = errors.New("format: unknown format")

// Format converts values to and from one serialization format.
type Format interface {
	Name() string
	// HumanReadable reports whether values are written as hex strings.
	HumanReadable() bool
	Marshal(v hexutil.ToHex) ([]byte, error)
	Unmarshal(data []byte, v hexutil.FromHex) error
}

type funcs struct {
	name      string
	human     bool
	marshal   func(hexutil.ToHex) ([]byte, error)
	unmarshal func([]byte, hexutil.FromHex) error
}

func (f funcs) Name() string                                   { return f.name }
func (f funcs) HumanReadable() bool                            { return f.human }
func (f funcs) Marshal(v hexutil.ToHex) ([]byte, error)        { return f.marshal(v) }
func (f funcs) Unmarshal(data []byte, v hexutil.FromHex) error { return f.unmarshal(data, v) }

var registry = map[string]Format{}

func register(f funcs) { registry[f.name] = f }

func init() {
	register(funcs{"hex", true, hexutil.MarshalText, hexutil.Parse})
	register(funcs{"json", true, json.Marshal, json.Unmarshal})
	jb := json.Options{Binary: true}
	register(funcs{"json-binary", false, jb.Marshal, jb.Unmarshal})
	register(funcs{"msgpack", false, msgpack.Marshal, msgpack.Unmarshal})
	register(funcs{"cbor", false, cbor.Marshal, cbor.Unmarshal})
	register(funcs{"compact", false, compact.Marshal, compact.Unmarshal})
}

// Lookup returns the format called name.
func Lookup(name string) (Format, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", name)
	}
	return f, nil
}

// Names returns the names of all formats, sorted.
func Names() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}
