// Package memres implements the polymorphic memory-resource abstraction
// that the DOM and the SAX parser build on: a small interface for raw byte
// allocation, plus a handful of concrete resources (default, monotonic,
// static, null) with different ownership and failure semantics.
package memres

import (
	"errors"
	"fmt"
)

// ErrOutOfMemory is returned by Allocate when a resource cannot satisfy a
// request: the static resource's buffer is exhausted, or the null resource
// is asked for anything at all.
var ErrOutOfMemory = errors.New("memres: out of memory")

// Resource is the polymorphic allocator interface shared by every
// container in package value and by the SAX parser's raw stack. All
// concrete resources in this package are safe to use from exactly one
// goroutine at a time; only the reference count inside a Handle is
// synchronized (see Handle).
type Resource interface {
	// Allocate returns a zeroed byte slice of exactly size bytes, aligned
	// to align (align must be a power of two; callers that don't care
	// pass 1). It fails with ErrOutOfMemory, wrapped with resource-
	// specific context, when the resource cannot satisfy the request.
	Allocate(size, align int) ([]byte, error)

	// Deallocate releases a region previously returned by Allocate on
	// this same resource. Resources whose NeedFree is false treat this
	// as a no-op; callers may still call it unconditionally.
	Deallocate(buf []byte)

	// IsEqual reports whether other refers to the same underlying
	// resource. Two containers may only swap internal storage, rather
	// than deep-copy, when their resources compare equal.
	IsEqual(other Resource) bool

	// NeedFree is a static per-resource trait: false means Deallocate is
	// a no-op, which lets a container holding only deallocate-is-null
	// elements skip a destructor walk entirely on teardown.
	NeedFree() bool

	// String identifies the resource for diagnostics, e.g. in log lines
	// emitted by internal/diag when an allocation fails. It is not part
	// of the resource's equality or allocation contract.
	String() string
}

func oomf(resource string, size, align int) error {
	return fmt.Errorf("%w: %s: requested %d bytes (align %d)", ErrOutOfMemory, resource, size, align)
}

// alignUp rounds size up to the next multiple of align. align must be a
// power of two; align <= 1 is treated as no alignment requirement.
func alignUp(size, align int) int {
	if align <= 1 {
		return size
	}
	return (size + align - 1) &^ (align - 1)
}
