package rawstack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcvoid/domjson/rawstack"
)

func TestTrivialPushPopIsLIFO(t *testing.T) {
	t.Parallel()

	s := rawstack.New()
	rawstack.PushTrivial(s, uint32(1))
	rawstack.PushTrivial(s, uint32(2))
	rawstack.PushTrivial(s, uint32(3))

	assert.Equal(t, uint32(3), rawstack.PopTrivial[uint32](s))
	assert.Equal(t, uint32(2), rawstack.PopTrivial[uint32](s))
	assert.Equal(t, uint32(1), rawstack.PopTrivial[uint32](s))
	assert.Equal(t, 0, s.TrivialLen())
}

func TestNontrivialFramesAreLIFO(t *testing.T) {
	t.Parallel()

	s := rawstack.New()
	s.PushNontrivial("array-frame")
	s.PushNontrivial("object-frame")

	assert.Equal(t, "object-frame", s.PeekNontrivial())
	assert.Equal(t, "object-frame", s.PopNontrivial())
	assert.Equal(t, "array-frame", s.PopNontrivial())
	assert.Equal(t, 0, s.NontrivialLen())
}

func TestByteAreaAccumulatesAcrossChunks(t *testing.T) {
	t.Parallel()

	s := rawstack.New()
	s.AppendBytes([]byte("hel")...)
	s.AppendBytes([]byte("lo")...)

	assert.Equal(t, "hello", string(s.Bytes()))

	taken := s.TakeBytes()
	assert.Equal(t, "hello", string(taken))
	assert.Empty(t, s.Bytes())
}

func TestClearEmptiesAllRegions(t *testing.T) {
	t.Parallel()

	s := rawstack.New()
	rawstack.PushTrivial(s, uint8(9))
	s.PushNontrivial(struct{}{})
	s.AppendBytes('x')

	s.Clear()

	assert.Equal(t, 0, s.TrivialLen())
	assert.Equal(t, 0, s.NontrivialLen())
	assert.Empty(t, s.Bytes())
}
