package domjson_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson"
	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/sax"
)

func TestDecoderAcceptsChunkedWrites(t *testing.T) {
	t.Parallel()

	d := domjson.NewDecoder(memres.Default, sax.Options{})
	doc := []byte(`{"a":[1,2,3],"b":"hello"}`)
	for i, b := range doc {
		more := i != len(doc)-1
		n, err := d.Write(more, []byte{b})
		require.NoError(t, err)
		require.Equal(t, 1, n)
	}

	v, err := d.Value()
	require.NoError(t, err)
	obj, err := v.AsObject()
	require.NoError(t, err)
	assert.Equal(t, 2, obj.Len())
}

func TestDecoderResetAllowsReuse(t *testing.T) {
	t.Parallel()

	d := domjson.NewDecoder(memres.Default, sax.Options{})
	_, err := d.Write(false, []byte(`[1,2]`))
	require.NoError(t, err)
	v1, err := d.Value()
	require.NoError(t, err)
	arr1, err := v1.AsArray()
	require.NoError(t, err)
	assert.Equal(t, 2, arr1.Len())

	d.Reset()
	_, err = d.Write(false, []byte(`{"only":1}`))
	require.NoError(t, err)
	v2, err := d.Value()
	require.NoError(t, err)
	obj2, err := v2.AsObject()
	require.NoError(t, err)
	assert.Equal(t, 1, obj2.Len())
}

func TestStreamParseReadsFromReader(t *testing.T) {
	t.Parallel()

	v, err := domjson.StreamParse(strings.NewReader(`{"x":1}`), memres.Default, sax.Options{})
	require.NoError(t, err)
	obj, err := v.AsObject()
	require.NoError(t, err)
	x, ok := obj.Find("x")
	require.True(t, ok)
	i, err := x.AsInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(1), i)
}

func TestStreamSerializeWritesToWriter(t *testing.T) {
	t.Parallel()

	v, err := domjson.ParseString(`{"a":1,"b":[true,false]}`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, domjson.StreamSerialize(v, &buf))
	assert.Equal(t, `{"a":1,"b":[true,false]}`, buf.String())
}
