package hexutil

import "io"

// String returns the hexadecimal representation of v. Types usually call it
// from their own String method.
func String(v ToHex) string {
	return EncodeToString(v.Bytes())
}

// WriteHex writes the hexadecimal representation of v to w without allocating
// for values of up to 256 bytes.
func WriteHex(w io.Writer, v ToHex) (int, error) {
	b := v.Bytes()
	need := len(b) * 2

	bufPtr := scratchPool.Get().(*[]byte)
	defer scratchPool.Put(bufPtr)
	if cap(*bufPtr) < need {
		*bufPtr = make([]byte, need)
	}
	buf := (*bufPtr)[:need]

	Encode(buf, b)
	n, err := w.Write(buf)
	if err == nil && n < need {
		err = io.ErrShortWrite
	}
	return n, err
}

// MarshalText implements the body of encoding.TextMarshaler for v.
func MarshalText(v ToHex) ([]byte, error) {
	return AppendEncode(nil, v.Bytes()), nil
}

// Parse decodes hexadecimal text into v.
//
// The byte buffer handed to v.SetBytes is sized from v's fixed length when it
// has one and from the input otherwise. Odd input lengths and inputs that do
// not match the fixed length fail with InvalidLength(len(text)).
func Parse(text []byte, v FromHex) error {
	return parse(text, v)
}

// ParseString is Parse for string input.
func ParseString(s string, v FromHex) error {
	return parse(s, v)
}

// ParseAs decodes s into a new T, for types whose pointer implements FromHex.
func ParseAs[T any, PT interface {
	*T
	FromHex
}](s string) (T, error) {
	var v T
	err := parse(s, PT(&v))
	return v, err
}

func parse[S ~string | ~[]byte](text S, v FromHex) error {
	if len(text)&1 != 0 {
		return InvalidLength(len(text))
	}
	n := len(text) / 2
	if meta := MetadataOf(v); meta.Fixed {
		n = meta.Len
	}
	if n*2 != len(text) {
		return InvalidLength(len(text))
	}

	buf := make([]byte, n)
	if err := decode(buf, text); err != nil {
		return err
	}
	return v.SetBytes(buf)
}
