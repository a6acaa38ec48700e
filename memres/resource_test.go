package memres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson/memres"
)

func TestDefaultAlwaysSucceeds(t *testing.T) {
	t.Parallel()

	buf, err := memres.Default.Allocate(32, 8)
	require.NoError(t, err)
	assert.Len(t, buf, 32)
	assert.True(t, memres.Default.NeedFree())
}

func TestNullAlwaysFails(t *testing.T) {
	t.Parallel()

	_, err := memres.Null.Allocate(1, 1)
	assert.ErrorIs(t, err, memres.ErrOutOfMemory)
}

func TestStaticDeterministicSuccessOrFailure(t *testing.T) {
	t.Parallel()

	res := memres.NewStatic(make([]byte, 16))

	a, err := res.Allocate(10, 1)
	require.NoError(t, err)
	assert.Len(t, a, 10)
	assert.Equal(t, 10, res.HighWaterMark())

	_, err = res.Allocate(10, 1)
	assert.ErrorIs(t, err, memres.ErrOutOfMemory)
	assert.Equal(t, 10, res.HighWaterMark(), "a failed allocation must not move the high-water mark")

	b, err := res.Allocate(6, 1)
	require.NoError(t, err)
	assert.Len(t, b, 6)
	assert.Equal(t, 16, res.HighWaterMark())
}

func TestMonotonicNeverFailsAndGrows(t *testing.T) {
	t.Parallel()

	res := memres.NewMonotonic(64)

	total := 0
	for i := 0; i < 1000; i++ {
		buf, err := res.Allocate(37, 1)
		require.NoError(t, err)
		assert.Len(t, buf, 37)
		total += 37
	}
	assert.GreaterOrEqual(t, res.HighWaterMark(), total)
}

func TestMonotonicBufferUsesCallerBufferFirst(t *testing.T) {
	t.Parallel()

	seed := make([]byte, 32)
	res := memres.NewMonotonicBuffer(seed)

	buf, err := res.Allocate(16, 1)
	require.NoError(t, err)
	assert.Len(t, buf, 16)
}

func TestHandleResolvesNullToDefault(t *testing.T) {
	t.Parallel()

	var h memres.Handle
	assert.Equal(t, memres.Default, h.Resource())
	assert.True(t, h.NeedFree())
}

func TestCountedHandleRefcounting(t *testing.T) {
	t.Parallel()

	h := memres.NewCounted(memres.NewMonotonic(1024))
	clone := h.Clone()

	assert.False(t, h.Release(), "first release of two live refs is not last")
	assert.True(t, clone.Release(), "second release is the last live ref")
}

func TestHandleIsEqual(t *testing.T) {
	t.Parallel()

	a := memres.New(memres.Default)
	b := memres.New(memres.Default)
	assert.True(t, a.IsEqual(b))

	m1 := memres.New(memres.NewMonotonic(64))
	m2 := memres.New(memres.NewMonotonic(64))
	assert.False(t, m1.IsEqual(m2), "distinct monotonic resources are not equal")
}
