package value

import "github.com/mcvoid/domjson/memres"

// sboCap is the small-buffer inline capacity for 64-bit pointers:
// 2*sizeof(pointer) - sizeof(kind) - 1 = 14 bytes. Go gives a
// string/Value struct no pointer-packing games to exploit, so this value
// exists purely to keep the short/long split semantics (and the 14-byte
// threshold itself) consistent rather than to shrink Value's memory
// footprint.
const sboCap = 14

// MaxStringLen is the largest string size this DOM accepts.
const MaxStringLen = 1<<31 - 2

// String is the SBO string container: short strings live inline, long
// strings are allocated from a memres.Resource. Both representations are
// always valid UTF-8 unless constructed via FromUnchecked, a
// bulk-initialize escape hatch for parser-produced bytes that have
// already been validated.
type String struct {
	handle    memres.Handle
	inline    [sboCap]byte
	inlineLen uint8
	long      []byte // nil when short; allocated from handle's resource when long
	isLong    bool
}

// NewString copies s into a String allocated against res. Short strings
// (len(s) <= sboCap) never touch res.
func NewString(res memres.Resource, s string) String {
	return newStringFromBytes(memres.New(res), []byte(s), true)
}

// FromUnchecked builds a String from bytes the caller has already
// validated as UTF-8 (the SAX parser validates string payloads itself, so
// the builder does not need to re-scan them). copyBytes controls whether
// the bytes are copied (true) or whether ownership of b transfers to the
// String for the long representation (false) — callers passing a buffer
// they will not reuse can avoid a copy.
func FromUnchecked(res memres.Resource, b []byte, copyBytes bool) String {
	return newStringFromBytes(memres.New(res), b, copyBytes)
}

func newStringFromBytes(h memres.Handle, b []byte, cp bool) String {
	s := String{handle: h}
	if len(b) <= sboCap {
		copy(s.inline[:], b)
		s.inlineLen = uint8(len(b))
		return s
	}
	s.isLong = true
	if cp {
		buf, err := h.Resource().Allocate(len(b), 1)
		if err != nil {
			// Allocation failure propagates as-is; callers that can't
			// tolerate a panic should pre-check against a Static
			// resource's remaining capacity.
			panic(err)
		}
		copy(buf, b)
		s.long = buf
	} else {
		s.long = b
	}
	return s
}

// Len returns the string's length in bytes.
func (s *String) Len() int {
	if s.isLong {
		return len(s.long)
	}
	return int(s.inlineLen)
}

// Bytes returns the string's contents. The returned slice must not be
// mutated by the caller when the string is long (it aliases the
// resource-owned buffer).
func (s *String) Bytes() []byte {
	if s.isLong {
		return s.long
	}
	return s.inline[:s.inlineLen]
}

// String returns a copy of the contents as a Go string.
func (s *String) String() string {
	return string(s.Bytes())
}

// IsShort reports whether the string is using the inline (SBO)
// representation.
func (s *String) IsShort() bool { return !s.isLong }

// Resource returns the memory resource the string was constructed with
// and allocates from when long. A short string reports that same
// resource even though it owns no allocation of its own.
func (s *String) Resource() memres.Resource { return s.handle.Resource() }

// stringGrowth computes the new capacity for a string growing from
// oldCap to at least needed bytes: new_cap = max(2*old_cap, needed),
// capped at MaxStringLen.
func stringGrowth(oldCap, needed int) int {
	grown := oldCap * 2
	if grown < needed {
		grown = needed
	}
	if grown > MaxStringLen {
		grown = MaxStringLen
	}
	return grown
}

// Append grows the string (reallocating if it is long, or promoting a
// short string to long once it exceeds sboCap) and appends b. It returns
// ErrTooLarge instead of growing past MaxStringLen bytes.
func (s *String) Append(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	newLen := s.Len() + len(b)
	if newLen > MaxStringLen {
		return tooLarge("string", newLen, MaxStringLen)
	}
	if !s.isLong && newLen <= sboCap {
		copy(s.inline[s.inlineLen:], b)
		s.inlineLen = uint8(newLen)
		return nil
	}
	oldCap := cap(s.long)
	if !s.isLong {
		oldCap = sboCap
	}
	if s.isLong && newLen <= cap(s.long) {
		oldLen := len(s.long)
		s.long = s.long[:newLen]
		copy(s.long[oldLen:], b)
		return nil
	}
	newCap := stringGrowth(oldCap, newLen)
	buf, err := s.handle.Resource().Allocate(newCap, 1)
	if err != nil {
		panic(err)
	}
	copy(buf, s.Bytes())
	copy(buf[s.Len():], b)
	s.long = buf[:newLen]
	s.isLong = true
	return nil
}

// setBytes rewrites the string's contents in place to b, choosing the
// inline or long representation by length the same way newStringFromBytes
// does for a fresh String.
func (s *String) setBytes(b []byte) error {
	if len(b) > MaxStringLen {
		return tooLarge("string", len(b), MaxStringLen)
	}
	if len(b) <= sboCap {
		s.isLong = false
		s.long = nil
		copy(s.inline[:], b)
		s.inlineLen = uint8(len(b))
		return nil
	}
	buf, err := s.handle.Resource().Allocate(len(b), 1)
	if err != nil {
		panic(err)
	}
	copy(buf, b)
	s.long = buf
	s.isLong = true
	return nil
}

// Insert inserts b at byte offset i, shifting existing bytes from i
// onward to the right. It returns ErrTooLarge instead of growing past
// MaxStringLen bytes. i must be in [0, Len()], same as a Go slice
// insertion point.
func (s *String) Insert(i int, b []byte) error {
	if len(b) == 0 {
		return nil
	}
	cur := s.Bytes()
	newLen := len(cur) + len(b)
	if newLen > MaxStringLen {
		return tooLarge("string", newLen, MaxStringLen)
	}
	out := make([]byte, 0, newLen)
	out = append(out, cur[:i]...)
	out = append(out, b...)
	out = append(out, cur[i:]...)
	return s.setBytes(out)
}

// Erase removes the n bytes starting at offset i.
func (s *String) Erase(i, n int) error {
	if n == 0 {
		return nil
	}
	cur := s.Bytes()
	out := make([]byte, 0, len(cur)-n)
	out = append(out, cur[:i]...)
	out = append(out, cur[i+n:]...)
	return s.setBytes(out)
}

// Replace overwrites the n bytes starting at offset i with b. It returns
// ErrTooLarge instead of growing past MaxStringLen bytes.
func (s *String) Replace(i, n int, b []byte) error {
	cur := s.Bytes()
	newLen := len(cur) - n + len(b)
	if newLen > MaxStringLen {
		return tooLarge("string", newLen, MaxStringLen)
	}
	out := make([]byte, 0, newLen)
	out = append(out, cur[:i]...)
	out = append(out, b...)
	out = append(out, cur[i+n:]...)
	return s.setBytes(out)
}

// ShrinkToFit may downgrade a long string back to the short
// representation when its contents now fit inline.
func (s *String) ShrinkToFit() {
	if s.isLong && len(s.long) <= sboCap {
		var inline [sboCap]byte
		copy(inline[:], s.long)
		s.inline = inline
		s.inlineLen = uint8(len(s.long))
		s.isLong = false
		s.long = nil
	}
}

// Equal reports byte-for-byte equality, independent of representation.
func (s *String) Equal(other *String) bool {
	return string(s.Bytes()) == string(other.Bytes())
}
