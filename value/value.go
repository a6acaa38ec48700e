package value

import (
	"math"

	"github.com/mcvoid/domjson/memres"
)

// Value is the DOM's tagged union: exactly one of the payload fields
// below is meaningful, selected by kind. Every Value carries a
// memres.Handle so containers constructed from it inherit the same
// resource.
type Value struct {
	kind   Kind
	handle memres.Handle
	boolV  bool
	i64    int64
	u64    uint64
	f64    float64
	str    *String
	arr    *Array
	obj    *Object
}

// Null returns a null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, boolV: b} }

// Int64 returns a signed-integer value.
func Int64(i int64) Value { return Value{kind: KindInt64, i64: i} }

// Uint64 returns an unsigned-integer value.
func Uint64(u uint64) Value { return Value{kind: KindUint64, u64: u} }

// Double returns a floating-point value.
func Double(d float64) Value { return Value{kind: KindDouble, f64: d} }

// Str returns a string value copied from s, allocated against res.
func Str(res memres.Resource, s string) Value {
	str := NewString(res, s)
	return Value{kind: KindString, handle: memres.New(res), str: &str}
}

// Arr wraps an existing Array as a value.
func Arr(a Array) Value {
	return Value{kind: KindArray, handle: memres.New(a.Resource()), arr: &a}
}

// Obj wraps an existing Object as a value.
func Obj(o Object) Value {
	return Value{kind: KindObject, handle: memres.New(o.Resource()), obj: &o}
}

// Kind reports which JSON type this value holds.
func (v Value) Kind() Kind { return v.kind }

// Resource returns the memory resource this value's own internal
// allocations (if any) use.
func (v Value) Resource() memres.Resource { return v.handle.Resource() }

// Take zeroes the receiver to a null value and returns its prior
// contents, a move in place of a copy-then-clear. Go moves are already
// non-throwing, so this collapses what other implementations need a
// pilfer-construct for into a swap-with-zero.
func (v *Value) Take() Value {
	old := *v
	*v = Value{}
	return old
}

// AsNull returns an error unless v is null.
func (v Value) AsNull() error {
	if v.kind != KindNull {
		return notKind(KindNull, v)
	}
	return nil
}

// AsBool extracts a boolean.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, notKind(KindBool, v)
	}
	return v.boolV, nil
}

// AsInt64 extracts a signed integer. A uint64 value converts only if it
// fits in int64 exactly; a double converts only if it has no fractional
// part and fits exactly.
func (v Value) AsInt64() (int64, error) {
	switch v.kind {
	case KindInt64:
		return v.i64, nil
	case KindUint64:
		if v.u64 > math.MaxInt64 {
			return 0, ErrIntegerOverflow
		}
		return int64(v.u64), nil
	case KindDouble:
		if math.Trunc(v.f64) != v.f64 {
			return 0, ErrNotExact
		}
		if v.f64 < math.MinInt64 || v.f64 >= math.MaxInt64 {
			return 0, ErrIntegerOverflow
		}
		return int64(v.f64), nil
	}
	return 0, notKind(KindInt64, v)
}

// AsUint64 extracts an unsigned integer, with the same exactness rules as
// AsInt64.
func (v Value) AsUint64() (uint64, error) {
	switch v.kind {
	case KindUint64:
		return v.u64, nil
	case KindInt64:
		if v.i64 < 0 {
			return 0, ErrIntegerOverflow
		}
		return uint64(v.i64), nil
	case KindDouble:
		if math.Trunc(v.f64) != v.f64 {
			return 0, ErrNotExact
		}
		if v.f64 < 0 || v.f64 >= math.MaxUint64 {
			return 0, ErrIntegerOverflow
		}
		return uint64(v.f64), nil
	}
	return 0, notKind(KindUint64, v)
}

// AsDouble extracts a double. Integers widen to double (which may lose
// precision for magnitudes above 2^53; that's a caller concern, not an
// error).
func (v Value) AsDouble() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.f64, nil
	case KindInt64:
		return float64(v.i64), nil
	case KindUint64:
		return float64(v.u64), nil
	}
	return 0, notKind(KindDouble, v)
}

// AsString extracts the string contents.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", notKind(KindString, v)
	}
	return v.str.String(), nil
}

// AsStringValue extracts the *String container itself, for callers that
// want to mutate or inspect SBO representation without copying out.
func (v Value) AsStringValue() (*String, error) {
	if v.kind != KindString {
		return nil, notKind(KindString, v)
	}
	return v.str, nil
}

// AsArray extracts the *Array container.
func (v Value) AsArray() (*Array, error) {
	if v.kind != KindArray {
		return nil, notKind(KindArray, v)
	}
	return v.arr, nil
}

// AsObject extracts the *Object container.
func (v Value) AsObject() (*Object, error) {
	if v.kind != KindObject {
		return nil, notKind(KindObject, v)
	}
	return v.obj, nil
}

// Equal reports structural equality: same kind and contents, except
// int64/uint64 compare numerically across those two
// kinds, and double compares bitwise only to other doubles (so NaN !=
// NaN, and +0.0 == -0.0 only because Go's == already treats them that
// way for float64).
func (v Value) Equal(other Value) bool {
	switch v.kind {
	case KindNull:
		return other.kind == KindNull
	case KindBool:
		return other.kind == KindBool && v.boolV == other.boolV
	case KindInt64:
		switch other.kind {
		case KindInt64:
			return v.i64 == other.i64
		case KindUint64:
			return v.i64 >= 0 && uint64(v.i64) == other.u64
		}
		return false
	case KindUint64:
		switch other.kind {
		case KindUint64:
			return v.u64 == other.u64
		case KindInt64:
			return other.i64 >= 0 && v.u64 == uint64(other.i64)
		}
		return false
	case KindDouble:
		return other.kind == KindDouble && v.f64 == other.f64
	case KindString:
		return other.kind == KindString && v.str.Equal(other.str)
	case KindArray:
		return other.kind == KindArray && v.arr.Equal(other.arr)
	case KindObject:
		return other.kind == KindObject && v.obj.Equal(other.obj)
	}
	return false
}
