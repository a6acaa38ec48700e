package domjson_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson"
	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/sax"
)

func TestParseAndSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := domjson.ParseString(`{"b":2,"a":[1,2,3],"c":null}`)
	require.NoError(t, err)

	out, err := domjson.Serialize(v)
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":[1,2,3],"c":null}`, out)
}

func TestParseRejectsTrailingData(t *testing.T) {
	t.Parallel()

	_, err := domjson.Parse([]byte(`1 2`))
	assert.Error(t, err)
}

func TestParseOptsAllowsCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()

	opts := sax.Options{AllowComments: true, AllowTrailingCommas: true}
	v, err := domjson.ParseOpts(memres.Default, opts, []byte(`{
		// a trailing comma and a comment
		"list": [1, 2, 3,],
	}`))
	require.NoError(t, err)

	obj, err := v.AsObject()
	require.NoError(t, err)
	listVal, ok := obj.Find("list")
	require.True(t, ok)
	list, err := listVal.AsArray()
	require.NoError(t, err)
	assert.Equal(t, 3, list.Len())
}

func TestParseReaderReadsToEOF(t *testing.T) {
	t.Parallel()

	v, err := domjson.ParseReader(strings.NewReader(`[1,2,3]`))
	require.NoError(t, err)
	arr, err := v.AsArray()
	require.NoError(t, err)
	assert.Equal(t, 3, arr.Len())
}

func TestSerializeToWriter(t *testing.T) {
	t.Parallel()

	v, err := domjson.ParseString(`[1,"x",true]`)
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, domjson.SerializeToWriter(&sb, v))
	assert.Equal(t, `[1,"x",true]`, sb.String())
}
