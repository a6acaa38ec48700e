package memres

import "sync/atomic"

// Handle is the smart pointer every value.Value and container carries for
// its memory resource. A pointer-sized handle with a couple of stolen
// alignment bits (is-counted, deallocate-is-null) is the usual C++ shape
// for a polymorphic allocator with refcounting; Go gives pointers no
// spare bits to steal, so this models the same two properties as an
// ordinary small struct instead: a Resource, an optional shared atomic
// refcount, and the cached deallocate-is-null trait so hot paths don't
// need a virtual call just to check it.
type Handle struct {
	res     Resource
	count   *int32
	noFree  bool
}

// Zero is the null handle: it carries no resource and resolves to Default
// at use.
var Zero Handle

// New wraps res in an uncounted handle: cloning it does not share
// ownership, each copy is independent. Use this for resources that outlive
// every value referencing them (Default, Null, a resource the caller owns
// and manages directly).
func New(res Resource) Handle {
	if res == nil {
		return Zero
	}
	return Handle{res: res, noFree: !res.NeedFree()}
}

// NewCounted wraps res in a reference-counted handle with an initial count
// of one. Cloning increments the shared count; Release decrements it. The
// resource itself is still reclaimed by Go's GC once unreachable — the
// count exists so callers (e.g. a builder handing the same arena to many
// sibling containers) can tell when they hold the last live reference and
// it is safe to, say, reuse or reset the arena.
func NewCounted(res Resource) Handle {
	if res == nil {
		return Zero
	}
	n := int32(1)
	return Handle{res: res, count: &n, noFree: !res.NeedFree()}
}

// Resource returns the underlying resource, resolving a null handle to
// Default.
func (h Handle) Resource() Resource {
	if h.res == nil {
		return Default
	}
	return h.res
}

// NeedFree reports the cached deallocate-is-null trait of the underlying
// resource (true for Default, false for Monotonic/Static/Null).
func (h Handle) NeedFree() bool {
	if h.res == nil {
		return true
	}
	return !h.noFree
}

// IsCounted reports whether this handle participates in reference
// counting.
func (h Handle) IsCounted() bool { return h.count != nil }

// Clone increments the shared refcount (if counted) and returns a handle
// referring to the same resource. Relaxed memory ordering is sufficient
// here, the standard refcount-increment idiom: no other thread can be
// deciding to free based on this clone seeing a stale count, since the
// count only ever decreases to zero.
func (h Handle) Clone() Handle {
	if h.count != nil {
		atomic.AddInt32(h.count, 1)
	}
	return h
}

// Release decrements the shared refcount (if counted) and reports whether
// this was the last live reference. Uses acquire-release ordering on the
// decrement per the standard refcount idiom, so that a caller observing
// last==true has a happens-before relationship with every prior Clone.
func (h Handle) Release() (last bool) {
	if h.count == nil {
		return true
	}
	return atomic.AddInt32(h.count, -1) == 0
}

// IsEqual reports whether h and other refer to the same resource, the
// precondition for swap/move-without-copy between two containers.
func (h Handle) IsEqual(other Handle) bool {
	return h.Resource().IsEqual(other.Resource())
}
