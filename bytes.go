package hexutil

// Bytes is a byte string of any length. Its hex form is simply the hex of its
// contents. Having no fixed length, it can be written to binary formats but not
// read back from them.
type Bytes []byte

func (b Bytes) Bytes() []byte { return b }

func (b *Bytes) SetBytes(p []byte) error {
	*b = append((*b)[:0], p...)
	return nil
}

func (Bytes) HexMetadata() Metadata { return VariableMetadata("Bytes") }

func (b Bytes) String() string { return String(b) }

func (b Bytes) MarshalText() ([]byte, error) { return MarshalText(b) }

func (b *Bytes) UnmarshalText(text []byte) error { return Parse(text, b) }
