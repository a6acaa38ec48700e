package value_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/value"
)

func TestEqualityAcrossIntKinds(t *testing.T) {
	t.Parallel()

	assert.True(t, value.Int64(5).Equal(value.Uint64(5)))
	assert.True(t, value.Uint64(5).Equal(value.Int64(5)))
	assert.False(t, value.Int64(-5).Equal(value.Uint64(5)))
	assert.False(t, value.Double(5).Equal(value.Int64(5)), "double only compares to double")
}

func TestTakeZeroesReceiver(t *testing.T) {
	t.Parallel()

	v := value.Int64(42)
	old := v.Take()

	assert.Equal(t, value.KindNull, v.Kind())
	assert.Equal(t, value.KindInt64, old.Kind())
	i, err := old.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)
}

func TestAsInt64FromDoubleRequiresExactness(t *testing.T) {
	t.Parallel()

	_, err := value.Double(1.5).AsInt64()
	assert.ErrorIs(t, err, value.ErrNotExact)

	i, err := value.Double(7).AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(7), i)
}

func TestStringSBOBoundary(t *testing.T) {
	t.Parallel()

	short := value.NewString(memres.Default, "fourteen bytes") // exactly 14
	assert.True(t, short.IsShort())
	assert.Equal(t, "fourteen bytes", short.String())

	long := value.NewString(memres.Default, "this string is definitely longer than fourteen bytes")
	assert.False(t, long.IsShort())
	assert.Equal(t, "this string is definitely longer than fourteen bytes", long.String())
}

func TestStringInsert(t *testing.T) {
	t.Parallel()

	s := value.NewString(memres.Default, "helloworld")
	require.NoError(t, s.Insert(5, []byte(", ")))
	assert.Equal(t, "hello, world", s.String())

	// Growing past the SBO threshold promotes to the long representation.
	short := value.NewString(memres.Default, "short")
	require.NoError(t, short.Insert(5, []byte(" but not for long")))
	assert.False(t, short.IsShort())
	assert.Equal(t, "short but not for long", short.String())
}

func TestStringErase(t *testing.T) {
	t.Parallel()

	s := value.NewString(memres.Default, "hello, world")
	require.NoError(t, s.Erase(5, 2))
	assert.Equal(t, "helloworld", s.String())

	s2 := value.NewString(memres.Default, "this string is definitely longer than fourteen bytes")
	require.NoError(t, s2.Erase(0, len("this string is definitely longer than ")))
	assert.Equal(t, "fourteen bytes", s2.String())
}

func TestStringReplace(t *testing.T) {
	t.Parallel()

	s := value.NewString(memres.Default, "hello, world")
	require.NoError(t, s.Replace(7, 5, []byte("there")))
	assert.Equal(t, "hello, there", s.String())
}

func TestArrayGrowthPreservesOrder(t *testing.T) {
	t.Parallel()

	a := value.NewArray(memres.Default)
	for i := 0; i < 100; i++ {
		require.NoError(t, a.Append(value.Int64(int64(i))))
	}
	require.Equal(t, 100, a.Len())
	for i := 0; i < 100; i++ {
		v, err := a.At(i).AsInt64()
		require.NoError(t, err)
		assert.Equal(t, int64(i), v)
	}
}

func TestArrayEraseShiftsLeft(t *testing.T) {
	t.Parallel()

	a := value.NewArray(memres.Default)
	require.NoError(t, a.Append(value.Int64(1)))
	require.NoError(t, a.Append(value.Int64(2)))
	require.NoError(t, a.Append(value.Int64(3)))

	a.Erase(1)

	require.Equal(t, 2, a.Len())
	v0, _ := a.At(0).AsInt64()
	v1, _ := a.At(1).AsInt64()
	assert.Equal(t, int64(1), v0)
	assert.Equal(t, int64(3), v1)
}

func TestObjectInsertionOrderPreserved(t *testing.T) {
	t.Parallel()

	o := value.NewObject(memres.Default)
	_, err := o.Emplace("a", value.Int64(1))
	require.NoError(t, err)
	_, err = o.Emplace("b", value.Int64(2))
	require.NoError(t, err)
	_, err = o.Emplace("c", value.Int64(3))
	require.NoError(t, err)

	pairs := o.Pairs()
	require.Len(t, pairs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{pairs[0].Key, pairs[1].Key, pairs[2].Key})
}

func TestObjectDuplicateKeyKeepsLast(t *testing.T) {
	t.Parallel()

	o := value.NewObject(memres.Default)
	o.Emplace("a", value.Int64(1))
	inserted, err := o.Emplace("a", value.Int64(2))
	require.NoError(t, err)

	assert.False(t, inserted)
	v, ok := o.Find("a")
	require.True(t, ok)
	i, _ := v.AsInt64()
	assert.Equal(t, int64(2), i)
	assert.Equal(t, 1, o.Len())
}

func TestObjectEraseCompactsAndKeepsOrder(t *testing.T) {
	t.Parallel()

	o := value.NewObject(memres.Default)
	_, err := o.Emplace("a", value.Int64(1))
	require.NoError(t, err)
	_, err = o.Emplace("b", value.Int64(2))
	require.NoError(t, err)
	_, err = o.Emplace("c", value.Int64(3))
	require.NoError(t, err)

	ok := o.Erase("b")
	require.True(t, ok)

	pairs := o.Pairs()
	require.Len(t, pairs, 2)
	assert.Equal(t, "a", pairs[0].Key)
	assert.Equal(t, "c", pairs[1].Key)
	assert.True(t, o.Contains("a"))
	assert.True(t, o.Contains("c"))
	assert.False(t, o.Contains("b"))
}

func TestObjectManyInsertsTriggerRehash(t *testing.T) {
	t.Parallel()

	o := value.NewObject(memres.Default)
	for i := 0; i < 500; i++ {
		_, err := o.Emplace("k"+strconv.Itoa(i), value.Int64(int64(i)))
		require.NoError(t, err)
	}
	assert.Equal(t, 500, o.Len())
	for i := 0; i < 500; i++ {
		_, ok := o.Find("k" + strconv.Itoa(i))
		assert.True(t, ok)
	}
}
