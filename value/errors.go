package value

import (
	"errors"
	"fmt"
)

// ErrConversion is wrapped by every AsXxx accessor failure: a recoverable,
// local error distinct from a parse error (sax.ParseError).
var ErrConversion = errors.New("value: conversion error")

// ErrNotExact is returned by AsInt64/AsUint64 when a double value cannot
// be represented exactly in the requested integer type.
var ErrNotExact = errors.New("value: not exact")

// ErrIntegerOverflow is returned when an exact conversion would overflow
// the destination integer type.
var ErrIntegerOverflow = errors.New("value: integer overflow")

// ErrTooLarge is returned by a container or string mutator that would
// grow past its maximum size (MaxArrayLen, MaxObjectLen, MaxStringLen).
var ErrTooLarge = errors.New("value: too large")

func notKind(want Kind, v Value) error {
	return fmt.Errorf("%w: not %s: got %s", ErrConversion, want, v.kind)
}

func tooLarge(kind string, n, max int) error {
	return fmt.Errorf("%w: %s length %d exceeds maximum %d", ErrTooLarge, kind, n, max)
}
