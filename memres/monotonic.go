package memres

import "github.com/google/uuid"

const (
	minBlockSize = 1024
	maxBlockSize = 1 << 30
)

// monotonicBlock is one link in the resource's owned chain of growing
// buffers. current tracks how many bytes of buf are already handed out.
type monotonicBlock struct {
	buf     []byte
	current int
	next    *monotonicBlock
}

// Monotonic is a bump allocator: Allocate carves sequential regions off its
// current block and grows a new, larger block when the current one is
// exhausted. Deallocate is always a no-op; every block is released at once
// when the resource is dropped (Go's GC reclaims the chain once the
// Monotonic value itself becomes unreachable — there is no explicit
// destructor to run, so dropping the resource frees the whole arena in
// one shot).
type Monotonic struct {
	id            uuid.UUID
	head          *monotonicBlock
	nextBlockSize int
	highWater     int
}

// NewMonotonic creates a monotonic resource whose first block is sized
// initialSize (clamped to [minBlockSize, maxBlockSize]); 0 selects an
// OS-page-sized default.
func NewMonotonic(initialSize int) *Monotonic {
	if initialSize <= 0 {
		initialSize = defaultInitialBlockSize()
	}
	return &Monotonic{
		id:            uuid.New(),
		nextBlockSize: clampBlockSize(initialSize),
	}
}

// NewMonotonicBuffer creates a monotonic resource whose first block is the
// caller-supplied buffer. The resource never writes past len(buf) in that
// first block; once exhausted it grows a new, freshly allocated block the
// normal way.
func NewMonotonicBuffer(buf []byte) *Monotonic {
	m := &Monotonic{
		id:            uuid.New(),
		nextBlockSize: clampBlockSize(2 * max(len(buf), minBlockSize)),
	}
	if len(buf) > 0 {
		m.head = &monotonicBlock{buf: buf}
	}
	return m
}

func clampBlockSize(n int) int {
	if n < minBlockSize {
		return minBlockSize
	}
	if n > maxBlockSize {
		return maxBlockSize
	}
	return n
}

// Allocate satisfies size bytes aligned to align from the current block,
// growing a new block (double the previous, clamped) when there isn't
// enough room left.
func (m *Monotonic) Allocate(size, align int) ([]byte, error) {
	if size < 0 {
		return nil, oomf("monotonic", size, align)
	}
	if m.head == nil || !m.fits(m.head, size, align) {
		m.growFor(size, align)
	}
	start := alignUp(m.head.current, align)
	out := m.head.buf[start : start+size : start+size]
	m.head.current = start + size
	if total := m.totalUsed(); total > m.highWater {
		m.highWater = total
	}
	return out, nil
}

func (m *Monotonic) fits(b *monotonicBlock, size, align int) bool {
	start := alignUp(b.current, align)
	return start+size <= len(b.buf)
}

func (m *Monotonic) growFor(size, align int) {
	need := alignUp(size, align) + align
	blockSize := m.nextBlockSize
	for blockSize < need {
		blockSize = clampBlockSize(blockSize * 2)
		if blockSize == maxBlockSize {
			break
		}
	}
	if blockSize < need {
		blockSize = need
	}
	newBlock := &monotonicBlock{buf: make([]byte, blockSize), next: m.head}
	m.head = newBlock
	m.nextBlockSize = clampBlockSize(m.nextBlockSize * 2)
}

func (m *Monotonic) totalUsed() int {
	total := 0
	for b := m.head; b != nil; b = b.next {
		total += b.current
	}
	return total
}

// HighWaterMark reports the largest cumulative allocation total ever
// observed; it is monotonically non-decreasing for the resource's
// lifetime.
func (m *Monotonic) HighWaterMark() int { return m.highWater }

func (m *Monotonic) Deallocate(_ []byte) {}

func (m *Monotonic) IsEqual(other Resource) bool {
	o, ok := other.(*Monotonic)
	return ok && o == m
}

func (*Monotonic) NeedFree() bool { return false }

func (m *Monotonic) String() string { return "monotonic:" + m.id.String() }
