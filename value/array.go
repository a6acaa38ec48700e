package value

import "github.com/mcvoid/domjson/memres"

// MinArrayCap is the minimum capacity an Array allocates on its first
// growth.
const MinArrayCap = 16

// MaxArrayLen is the largest number of elements an Array accepts.
const MaxArrayLen = 1<<31 - 2

// Array is a contiguous vector of Values. Growth doubles capacity (or
// grows to the requested size if larger), starting from MinArrayCap.
// Values are address-independent (no Value holds a pointer into another
// container's storage), so growing an Array never invalidates indices
// held elsewhere — a relocation-safety property Go's slice-growth-by-copy
// gives for free.
type Array struct {
	handle memres.Handle
	items  []Value
}

// NewArray returns an empty array backed by res.
func NewArray(res memres.Resource) Array {
	return Array{handle: memres.New(res)}
}

// NewArrayFrom builds an array in one allocation from the given values,
// mirroring FromUnchecked's "bulk-initialize without re-validating" shape
// for caller-assembled rather than parser-assembled data.
func NewArrayFrom(res memres.Resource, vals ...Value) Array {
	a := Array{handle: memres.New(res)}
	if len(vals) == 0 {
		return a
	}
	a.items = make([]Value, len(vals))
	copy(a.items, vals)
	return a
}

// Len reports the number of elements.
func (a *Array) Len() int { return len(a.items) }

// At returns the element at i. It panics on an out-of-range index, same
// as a Go slice index — callers doing untrusted lookups should check Len
// first.
func (a *Array) At(i int) Value { return a.items[i] }

// Set replaces the element at i.
func (a *Array) Set(i int, v Value) { a.items[i] = v }

// Slice returns the backing slice of elements in order. Callers must not
// retain it past the next mutation of a.
func (a *Array) Slice() []Value { return a.items }

// Append adds v to the end, growing storage (2x growth, 16-element
// floor) when capacity is exhausted. It returns ErrTooLarge instead of
// growing past MaxArrayLen elements.
func (a *Array) Append(v Value) error {
	if len(a.items) >= MaxArrayLen {
		return tooLarge("array", len(a.items)+1, MaxArrayLen)
	}
	if len(a.items) == cap(a.items) {
		a.grow(len(a.items) + 1)
	}
	a.items = append(a.items, v)
	return nil
}

func (a *Array) grow(minCap int) {
	newCap := cap(a.items) * 2
	if newCap < MinArrayCap {
		newCap = MinArrayCap
	}
	if newCap < minCap {
		newCap = minCap
	}
	grown := make([]Value, len(a.items), newCap)
	copy(grown, a.items)
	a.items = grown
}

// Insert inserts v at index i, shifting subsequent elements right. It
// returns ErrTooLarge instead of growing past MaxArrayLen elements.
func (a *Array) Insert(i int, v Value) error {
	if len(a.items) >= MaxArrayLen {
		return tooLarge("array", len(a.items)+1, MaxArrayLen)
	}
	a.items = append(a.items, Value{})
	copy(a.items[i+1:], a.items[i:])
	a.items[i] = v
	return nil
}

// Erase removes the element at index i, shifting subsequent elements
// left.
func (a *Array) Erase(i int) {
	copy(a.items[i:], a.items[i+1:])
	a.items[len(a.items)-1] = Value{}
	a.items = a.items[:len(a.items)-1]
}

// Clear empties the array without releasing its backing storage.
func (a *Array) Clear() {
	for i := range a.items {
		a.items[i] = Value{}
	}
	a.items = a.items[:0]
}

// Resource returns the memory resource backing this array.
func (a *Array) Resource() memres.Resource { return a.handle.Resource() }

// Equal reports structural equality: same length, elementwise-equal
// values in order.
func (a *Array) Equal(other *Array) bool {
	if len(a.items) != len(other.items) {
		return false
	}
	for i := range a.items {
		if !a.items[i].Equal(other.items[i]) {
			return false
		}
	}
	return true
}
