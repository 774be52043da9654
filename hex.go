package hexutil

import (
	"fmt"
	"slices"
	"unsafe"
)

const hexDigits = "0123456789abcdef"

// Encode writes the lowercase hexadecimal representation of src into dst and
// returns it as a string that shares dst's memory. No allocation takes place,
// so the result is only valid until dst is modified.
//
// dst must be exactly twice as long as src. Anything else is a bug in the
// caller and Encode panics.
func Encode(dst, src []byte) string {
	if len(dst) != len(src)*2 {
		panic(fmt.Sprintf("hexutil: Encode into %d bytes, need exactly %d", len(dst), len(src)*2))
	}
	for i, b := range src {
		dst[i*2] = hexDigits[b>>4]
		dst[i*2+1] = hexDigits[b&0x0f]
	}
	return unsafe.String(unsafe.SliceData(dst), len(dst))
}

// Decode decodes the hexadecimal text src into dst. Upper and lower case digits
// are accepted.
//
// It fails with InvalidLength(len(src)) unless len(src) == 2*len(dst), and with
// InvalidHexCharacter on the first byte that is not a hex digit; the reported
// index is the position of that byte in src. Decoding stops at the first
// failure and dst is left partially written.
func Decode(dst, src []byte) error {
	return decode(dst, src)
}

func decode[S ~string | ~[]byte](dst []byte, src S) error {
	if len(src) != len(dst)*2 {
		return InvalidLength(len(src))
	}
	for i := range dst {
		hi, ok := fromHexChar(src[i*2])
		if !ok {
			return InvalidHexCharacter(i*2, src[i*2])
		}
		lo, ok := fromHexChar(src[i*2+1])
		if !ok {
			return InvalidHexCharacter(i*2+1, src[i*2+1])
		}
		dst[i] = hi<<4 | lo
	}
	return nil
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// EncodeToString returns the lowercase hexadecimal representation of src in a
// newly allocated string.
func EncodeToString(src []byte) string {
	// buf never escapes anywhere else, so the view Encode returns is immutable.
	return Encode(make([]byte, len(src)*2), src)
}

// AppendEncode appends the hexadecimal representation of src to dst and returns
// the extended buffer.
func AppendEncode(dst, src []byte) []byte {
	n := len(dst)
	dst = slices.Grow(dst, len(src)*2)[:n+len(src)*2]
	Encode(dst[n:], src)
	return dst
}

// DecodeString decodes hexadecimal text of any even length into a new slice.
func DecodeString(s string) ([]byte, error) {
	if len(s)&1 != 0 {
		return nil, InvalidLength(len(s))
	}
	buf := make([]byte, len(s)/2)
	if err := decode(buf, s); err != nil {
		return nil, err
	}
	return buf, nil
}
