package memres

import "github.com/google/uuid"

// Static allocates from a single fixed caller-provided buffer. Allocate
// fails with ErrOutOfMemory once the buffer is exhausted; Deallocate is
// always a no-op, so callers cannot reclaim space mid-lifetime — Static is
// meant for short-lived, size-bounded builds (e.g. parsing one document of
// known maximum size into scratch the caller already owns).
type Static struct {
	id        uuid.UUID
	buf       []byte
	used      int
	highWater int
}

// NewStatic creates a static resource over buf. The resource never grows;
// callers size buf for the largest single build they intend to perform.
func NewStatic(buf []byte) *Static {
	return &Static{id: uuid.New(), buf: buf}
}

func (s *Static) Allocate(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, oomf("static", size, align)
	}
	start := alignUp(s.used, align)
	if start+size > len(s.buf) {
		return nil, oomf(s.String(), size, align)
	}
	out := s.buf[start : start+size : start+size]
	s.used = start + size
	if s.used > s.highWater {
		s.highWater = s.used
	}
	return out, nil
}

func (s *Static) Deallocate(_ []byte) {}

func (s *Static) IsEqual(other Resource) bool {
	o, ok := other.(*Static)
	return ok && o == s
}

func (*Static) NeedFree() bool { return false }

func (s *Static) String() string { return "static:" + s.id.String() }

// HighWaterMark reports the largest cumulative allocation total ever
// observed, which is monotonically non-decreasing for the lifetime of
// the resource.
func (s *Static) HighWaterMark() int { return s.highWater }

// Capacity reports the total size of the backing buffer.
func (s *Static) Capacity() int { return len(s.buf) }
