package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson/builder"
	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/sax"
)

func TestBuildsNestedStructure(t *testing.T) {
	t.Parallel()

	v, err := builder.Parse(memres.Default, sax.Options{}, []byte(`{"a":[1,2,"x"],"b":null,"c":true}`))
	require.NoError(t, err)

	obj, err := v.AsObject()
	require.NoError(t, err)
	require.Equal(t, 3, obj.Len())

	arrVal, ok := obj.Find("a")
	require.True(t, ok)
	arr, err := arrVal.AsArray()
	require.NoError(t, err)
	require.Equal(t, 3, arr.Len())

	i0, err := arr.At(0).AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), i0)

	s2, err := arr.At(2).AsString()
	require.NoError(t, err)
	assert.Equal(t, "x", s2)

	bVal, ok := obj.Find("b")
	require.True(t, ok)
	require.NoError(t, bVal.AsNull())

	cVal, ok := obj.Find("c")
	require.True(t, ok)
	cb, err := cVal.AsBool()
	require.NoError(t, err)
	assert.True(t, cb)
}

func TestBuildsScalarDocument(t *testing.T) {
	t.Parallel()

	v, err := builder.Parse(memres.Default, sax.Options{}, []byte(`42`))
	require.NoError(t, err)
	i, err := v.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)
}

func TestBuilderResetAllowsReuse(t *testing.T) {
	t.Parallel()

	b := builder.New(memres.Default)
	p := sax.NewParser(b, sax.Options{})
	require.NoError(t, p.Finish([]byte(`[1,2,3]`)))
	v1, err := b.Value()
	require.NoError(t, err)
	arr1, err := v1.AsArray()
	require.NoError(t, err)
	assert.Equal(t, 3, arr1.Len())

	b.Reset()
	p.Reset()
	require.NoError(t, p.Finish([]byte(`{"only":1}`)))
	v2, err := b.Value()
	require.NoError(t, err)
	obj2, err := v2.AsObject()
	require.NoError(t, err)
	assert.Equal(t, 1, obj2.Len())
}

func TestBuilderReassemblesStringSplitAcrossWriteSome(t *testing.T) {
	t.Parallel()

	b := builder.New(memres.Default)
	p := sax.NewParser(b, sax.Options{})

	_, err := p.WriteSome(true, []byte(`{"long`))
	require.NoError(t, err)
	_, err = p.WriteSome(true, []byte(`key":"long`))
	require.NoError(t, err)
	require.NoError(t, p.Finish([]byte(`value"}`)))

	v, err := b.Value()
	require.NoError(t, err)
	obj, err := v.AsObject()
	require.NoError(t, err)

	val, ok := obj.Find("longkey")
	require.True(t, ok)
	s, err := val.AsString()
	require.NoError(t, err)
	assert.Equal(t, "longvalue", s)
}
