package numlex_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcvoid/domjson/numlex"
)

func digits(a *numlex.Accumulator, s string) {
	for i := 0; i < len(s); i++ {
		a.AddIntegerDigit(s[i])
		a.AppendByte(s[i])
	}
}

func TestClassifySmallInt(t *testing.T) {
	t.Parallel()

	a := numlex.New()
	digits(a, "1234")
	require.Equal(t, numlex.KindInt64, a.Classify())
	assert.Equal(t, int64(1234), a.Int64())
}

func TestClassifyUint64Overflow(t *testing.T) {
	t.Parallel()

	a := numlex.New()
	digits(a, "9223372036854775808") // MaxInt64 + 1
	require.Equal(t, numlex.KindUint64, a.Classify())
	assert.Equal(t, uint64(9223372036854775808), a.Uint64())
}

func TestClassifyNegativeMinInt64(t *testing.T) {
	t.Parallel()

	a := numlex.New()
	a.SetNegative()
	digits(a, "9223372036854775808")
	require.Equal(t, numlex.KindInt64, a.Classify())
	assert.Equal(t, int64(math.MinInt64), a.Int64())
}

func TestClassifyOverflowsToDouble(t *testing.T) {
	t.Parallel()

	a := numlex.New()
	digits(a, "99999999999999999999") // > uint64 max
	require.Equal(t, numlex.KindDouble, a.Classify())
	d, exact := a.Double(numlex.ModePrecise)
	require.True(t, exact)
	assert.InDelta(t, 1e20, d, 1e14)
}

func TestClassifyFractionForcesDouble(t *testing.T) {
	t.Parallel()

	a := numlex.New()
	digits(a, "12")
	a.BeginFraction()
	a.AddFractionDigit('5')
	a.AppendByte('.')
	a.AppendByte('5')
	require.Equal(t, numlex.KindDouble, a.Classify())
	d, exact := a.Double(numlex.ModeFast)
	assert.True(t, exact)
	assert.Equal(t, 12.5, d)
}
