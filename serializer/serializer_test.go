package serializer_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson/memres"
	"github.com/mcvoid/domjson/serializer"
	"github.com/mcvoid/domjson/value"
)

func TestMarshalScalars(t *testing.T) {
	t.Parallel()

	cases := []struct {
		v    value.Value
		want string
	}{
		{value.Null(), "null"},
		{value.Bool(true), "true"},
		{value.Bool(false), "false"},
		{value.Int64(-42), "-42"},
		{value.Uint64(9223372036854775808), "9223372036854775808"},
		{value.Str(memres.Default, "hi\n\"there\""), `"hi\n\"there\""`},
	}
	for _, c := range cases {
		out, err := serializer.Marshal(c.v)
		require.NoError(t, err)
		assert.Equal(t, c.want, string(out))
	}
}

func TestMarshalArrayAndObject(t *testing.T) {
	t.Parallel()

	arr := value.NewArrayFrom(memres.Default, value.Int64(1), value.Int64(2), value.Bool(true))
	out, err := serializer.Marshal(value.Arr(arr))
	require.NoError(t, err)
	assert.Equal(t, `[1,2,true]`, string(out))

	obj := value.NewObjectFrom(memres.Default,
		value.Pair{Key: "b", Value: value.Int64(2)},
		value.Pair{Key: "a", Value: value.Int64(1)},
	)
	out, err = serializer.Marshal(value.Obj(obj))
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":1}`, string(out))
}

func TestMarshalEmptyContainers(t *testing.T) {
	t.Parallel()

	out, err := serializer.Marshal(value.Arr(value.NewArray(memres.Default)))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(out))

	out, err = serializer.Marshal(value.Obj(value.NewObject(memres.Default)))
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestReadResumesAcrossSmallBuffers(t *testing.T) {
	t.Parallel()

	arr := value.NewArrayFrom(memres.Default, value.Int64(1), value.Int64(2), value.Int64(3))
	s := serializer.New()
	s.Reset(value.Arr(arr))

	var out []byte
	buf := make([]byte, 1) // force many short reads
	for !s.Done() {
		n, err := s.Read(buf)
		require.NoError(t, err)
		out = append(out, buf[:n]...)
	}
	assert.Equal(t, `[1,2,3]`, string(out))
}

func TestResetAllowsReuse(t *testing.T) {
	t.Parallel()

	s := serializer.New()
	s.Reset(value.Int64(1))
	out, err := serializeAll(s)
	require.NoError(t, err)
	assert.Equal(t, "1", string(out))

	s.Reset(value.Bool(true))
	out, err = serializeAll(s)
	require.NoError(t, err)
	assert.Equal(t, "true", string(out))
}

func TestMarshalRejectsNonFiniteDouble(t *testing.T) {
	t.Parallel()

	cases := []value.Value{
		value.Double(math.NaN()),
		value.Double(math.Inf(1)),
		value.Double(math.Inf(-1)),
	}
	for _, v := range cases {
		_, err := serializer.Marshal(v)
		assert.ErrorIs(t, err, serializer.ErrNonFiniteFloat)
	}

	// A non-finite double nested inside a container must also fail, and
	// the failure must stick across repeated Read calls.
	arr := value.NewArrayFrom(memres.Default, value.Int64(1), value.Double(math.NaN()))
	s := serializer.New()
	s.Reset(value.Arr(arr))
	buf := make([]byte, 64)
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		_, err = s.Read(buf)
	}
	assert.ErrorIs(t, err, serializer.ErrNonFiniteFloat)
	_, err = s.Read(buf)
	assert.ErrorIs(t, err, serializer.ErrNonFiniteFloat)
}

func serializeAll(s *serializer.Serializer) ([]byte, error) {
	var out []byte
	buf := make([]byte, 64)
	for !s.Done() {
		n, err := s.Read(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, buf[:n]...)
	}
	return out, nil
}
