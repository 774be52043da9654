package hexutil

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidLength indicates that a byte or character count is odd or does not
	// match the fixed length of the target type.
	ErrInvalidLength = errors.New("hexutil: invalid number of bytes")

	// ErrInvalidHexCharacter indicates that a byte outside 0-9, a-f and A-F was found
	// while decoding hexadecimal text.
	ErrInvalidHexCharacter = errors.New("hexutil: invalid hex character")

	// ErrInvalidValue indicates that the decoded bytes are well-formed but were
	// rejected by the target type.
	ErrInvalidValue = errors.New("hexutil: invalid value")

	// ErrCustom is the parent of every type-specific conversion failure that
	// carries its own message.
	ErrCustom = errors.New("hexutil: conversion failed")

	// ErrTrailingData is returned by the format Unmarshal functions when input is
	// left over after a complete value has been decoded.
	ErrTrailingData = errors.New("hexutil: trailing data after value")
)

// Kind identifies one member of the closed conversion error taxonomy.
type Kind uint8

const (
	KindInvalidLength Kind = iota + 1
	KindInvalidHexCharacter
	KindInvalidValue
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindInvalidLength:
		return "invalid length"
	case KindInvalidHexCharacter:
		return "invalid hex character"
	case KindInvalidValue:
		return "invalid value"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Error is a conversion error. Only the fields that belong to Kind are set:
// Len for KindInvalidLength, Index and Char for KindInvalidHexCharacter and
// Msg for KindCustom.
type Error struct {
	Kind  Kind
	Len   int
	Index int
	Char  byte
	Msg   string
}

// InvalidLength reports an odd or mismatching byte/character count n.
func InvalidLength(n int) *Error {
	return &Error{Kind: KindInvalidLength, Len: n}
}

// InvalidHexCharacter reports the byte c found at position index of the input text.
func InvalidHexCharacter(index int, c byte) *Error {
	return &Error{Kind: KindInvalidHexCharacter, Index: index, Char: c}
}

// InvalidValue reports bytes that the target type refuses.
func InvalidValue() *Error {
	return &Error{Kind: KindInvalidValue}
}

// Custom reports a type-specific failure with a fixed message.
func Custom(msg string) *Error {
	return &Error{Kind: KindCustom, Msg: msg}
}

// Customf is like Custom but formats the message.
func Customf(format string, args ...any) *Error {
	return &Error{Kind: KindCustom, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidLength:
		return fmt.Sprintf("invalid number of bytes: %d", e.Len)
	case KindInvalidHexCharacter:
		return fmt.Sprintf("invalid hex character at %d: %q", e.Index, rune(e.Char))
	case KindInvalidValue:
		return "invalid value"
	case KindCustom:
		return e.Msg
	default:
		return "hexutil: unknown conversion error"
	}
}

// Unwrap returns the sentinel for the error's kind, so errors.Is(err,
// ErrInvalidLength) and friends work on wrapped conversion errors.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindInvalidLength:
		return ErrInvalidLength
	case KindInvalidHexCharacter:
		return ErrInvalidHexCharacter
	case KindInvalidValue:
		return ErrInvalidValue
	case KindCustom:
		return ErrCustom
	}
	return nil
}
