package hexutil

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// UnexpectedKind classifies what a decoder found instead of what it wanted.
type UnexpectedKind uint8

const (
	UnexpectedOther UnexpectedKind = iota
	UnexpectedBool
	UnexpectedUnsigned
	UnexpectedSigned
	UnexpectedFloat
	UnexpectedChar
	UnexpectedStr
	UnexpectedBytes
	UnexpectedUnit
	UnexpectedSeq
	UnexpectedMap
)

// Unexpected describes the input that was found in a DecodeError.
type Unexpected struct {
	Kind     UnexpectedKind
	Bool     bool
	Unsigned uint64
	Signed   int64
	Float    float64
	Char     rune
	Str      string
	// Other names the input when Kind is UnexpectedOther.
	Other string
}

func (u Unexpected) String() string {
	switch u.Kind {
	case UnexpectedBool:
		return fmt.Sprintf("boolean `%t`", u.Bool)
	case UnexpectedUnsigned:
		return fmt.Sprintf("integer `%d`", u.Unsigned)
	case UnexpectedSigned:
		return fmt.Sprintf("integer `%d`", u.Signed)
	case UnexpectedFloat:
		return fmt.Sprintf("floating point `%v`", u.Float)
	case UnexpectedChar:
		return fmt.Sprintf("character `%c`", u.Char)
	case UnexpectedStr:
		return fmt.Sprintf("string %q", u.Str)
	case UnexpectedBytes:
		return "byte array"
	case UnexpectedUnit:
		return "null"
	case UnexpectedSeq:
		return "sequence"
	case UnexpectedMap:
		return "map"
	}
	if u.Other == "" {
		return "unknown input"
	}
	return u.Other
}

// UnexpectedValue describes a dynamically decoded value, as produced by the
// interface{} decoding of self-describing formats.
func UnexpectedValue(v any) Unexpected {
	switch x := v.(type) {
	case nil:
		return Unexpected{Kind: UnexpectedUnit}
	case bool:
		return Unexpected{Kind: UnexpectedBool, Bool: x}
	case uint:
		return Unexpected{Kind: UnexpectedUnsigned, Unsigned: uint64(x)}
	case uint8:
		return Unexpected{Kind: UnexpectedUnsigned, Unsigned: uint64(x)}
	case uint16:
		return Unexpected{Kind: UnexpectedUnsigned, Unsigned: uint64(x)}
	case uint32:
		return Unexpected{Kind: UnexpectedUnsigned, Unsigned: uint64(x)}
	case uint64:
		return Unexpected{Kind: UnexpectedUnsigned, Unsigned: x}
	case int:
		return Unexpected{Kind: UnexpectedSigned, Signed: int64(x)}
	case int8:
		return Unexpected{Kind: UnexpectedSigned, Signed: int64(x)}
	case int16:
		return Unexpected{Kind: UnexpectedSigned, Signed: int64(x)}
	case int32:
		return Unexpected{Kind: UnexpectedSigned, Signed: int64(x)}
	case int64:
		return Unexpected{Kind: UnexpectedSigned, Signed: x}
	case float32:
		return Unexpected{Kind: UnexpectedFloat, Float: float64(x)}
	case float64:
		return Unexpected{Kind: UnexpectedFloat, Float: x}
	case string:
		return Unexpected{Kind: UnexpectedStr, Str: x}
	case []byte:
		return Unexpected{Kind: UnexpectedBytes}
	case []any:
		return Unexpected{Kind: UnexpectedSeq}
	case map[string]any, map[any]any:
		return Unexpected{Kind: UnexpectedMap}
	}
	return Unexpected{Other: fmt.Sprintf("%T", v)}
}

// expectingByte is what a tuple field must hold.
const expectingByte = "u8"

// FieldByte converts one dynamically decoded tuple field into a byte. Integers
// in 0..255 are accepted; other integers are invalid values and anything else
// is an invalid type.
func FieldByte(v any) (byte, error) {
	u := UnexpectedValue(v)
	switch u.Kind {
	case UnexpectedUnsigned:
		if u.Unsigned <= 0xff {
			return byte(u.Unsigned), nil
		}
		return 0, NewValueError(u, expectingByte)
	case UnexpectedSigned:
		if 0 <= u.Signed && u.Signed <= 0xff {
			return byte(u.Signed), nil
		}
		return 0, NewValueError(u, expectingByte)
	}
	return 0, NewTypeError(u, expectingByte)
}

// DecodeKind is the category of a DecodeError.
type DecodeKind uint8

const (
	DecodeLength DecodeKind = iota + 1
	DecodeValue
	DecodeType
	DecodeCustom
)

// DecodeError is the error type of the serialization layer. Deserialize maps
// every conversion error onto one of its kinds and keeps the conversion error as
// the cause, so errors.As can still recover the exact *Error (and with it the
// index of a bad hex character).
type DecodeError struct {
	Kind DecodeKind
	// Len is the offending length for DecodeLength.
	Len int
	// Unexpected is the offending input for DecodeValue and DecodeType.
	Unexpected Unexpected
	// Expected describes what would have been valid.
	Expected string
	// Msg is the complete message for DecodeCustom.
	Msg string

	cause error
}

// NewLengthError reports a sequence or text of length n where expected was wanted.
func NewLengthError(n int, expected string) *DecodeError {
	return &DecodeError{Kind: DecodeLength, Len: n, Expected: expected, cause: InvalidLength(n)}
}

// NewValueError reports input of the right type but with an unacceptable value.
func NewValueError(unexp Unexpected, expected string) *DecodeError {
	return &DecodeError{Kind: DecodeValue, Unexpected: unexp, Expected: expected}
}

// NewTypeError reports input of the wrong type.
func NewTypeError(unexp Unexpected, expected string) *DecodeError {
	return &DecodeError{Kind: DecodeType, Unexpected: unexp, Expected: expected}
}

// NewCustomError reports a failure that only has a message.
func NewCustomError(msg string) *DecodeError {
	return &DecodeError{Kind: DecodeCustom, Msg: msg, cause: Custom(msg)}
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case DecodeLength:
		return fmt.Sprintf("invalid length %d, expected %s", e.Len, e.Expected)
	case DecodeValue:
		return fmt.Sprintf("invalid value: %s, expected %s", e.Unexpected, e.Expected)
	case DecodeType:
		return fmt.Sprintf("invalid type: %s, expected %s", e.Unexpected, e.Expected)
	}
	return e.Msg
}

// Unwrap returns the conversion error behind e, if there is one.
func (e *DecodeError) Unwrap() error { return e.cause }

// decodeError maps an error returned by Parse or SetBytes into a DecodeError.
// unexp describes the whole input and expecting the target type.
func decodeError(err error, unexp Unexpected, expecting string) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}

	var ce *Error
	if !errors.As(err, &ce) {
		return &DecodeError{Kind: DecodeValue, Unexpected: unexp, Expected: err.Error(), cause: err}
	}
	switch ce.Kind {
	case KindInvalidLength:
		return &DecodeError{Kind: DecodeLength, Len: ce.Len, Expected: expecting, cause: err}
	case KindInvalidHexCharacter:
		return &DecodeError{
			Kind:       DecodeValue,
			Unexpected: Unexpected{Kind: UnexpectedChar, Char: rune(ce.Char)},
			Expected:   expecting,
			cause:      err,
		}
	case KindCustom:
		return &DecodeError{Kind: DecodeValue, Unexpected: unexp, Expected: ce.Msg, cause: err}
	}
	return &DecodeError{Kind: DecodeValue, Unexpected: unexp, Expected: expecting, cause: err}
}
