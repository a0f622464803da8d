package access

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickwritereader/structjson/types"
)

func TestBuffer_ExplicitByteMatch(t *testing.T) {
	b := GetBuffer()
	defer ReleaseBuffer(b)

	b.AddByte('{')
	b.AddRawString(`"level":`)
	b.AddInt64(42)
	b.AddByte(',')
	b.AddRawString(`"health":`)
	require.NoError(t, b.AddFloat64(99.5, 64))
	b.AddByte(',')
	b.AddRawString(`"name":`)
	b.AddString("go \"fast\"")
	b.AddByte(',')
	b.AddRawString(`"ok":`)
	b.AddBool(true)
	b.AddByte(',')
	b.AddRawString(`"none":`)
	b.AddNull()
	b.AddByte(',')
	b.AddRawString(`"raw":`)
	b.AddBase64([]byte{0xAA, 0xBB})
	b.AddByte('}')

	expected := `{"level":42,"health":99.5,"name":"go \"fast\"","ok":true,"none":null,"raw":"qrs="}`
	assert.Equal(t, expected, string(b.Bytes()))
	assert.Equal(t, len(expected), b.Len())
	assert.Equal(t, byte('}'), b.LastByte())
}

func TestBuffer_Integers(t *testing.T) {
	values := []int64{0, 7, -7, 100, -100, math.MaxInt64, math.MinInt64}
	for _, v := range values {
		b := NewBuffer(0)
		b.AddInt64(v)
		assert.Equal(t, strconv.FormatInt(v, 10), string(b.Bytes()))
	}
	b := NewBuffer(0)
	b.AddUint64(math.MaxUint64)
	assert.Equal(t, "18446744073709551615", string(b.Bytes()))
}

func TestBuffer_NonFiniteLeavesBufferUntouched(t *testing.T) {
	b := NewBuffer(0)
	b.AddRawString(`[1,`)
	err := b.AddFloat64(math.Inf(1), 64)
	assert.ErrorIs(t, err, types.ErrNonFiniteNumber)
	assert.Equal(t, `[1,`, string(b.Bytes()))
}

func TestBuffer_GeometricGrowth(t *testing.T) {
	b := GetBuffer()
	defer ReleaseBuffer(b)

	const n = 1 << 20
	for i := 0; i < n; i++ {
		b.AddByte('x')
	}
	assert.Equal(t, n, b.Len())
	// 64 B -> 1 MiB is 14 doublings
	assert.LessOrEqual(t, b.Grows(), 14)
	assert.GreaterOrEqual(t, cap(b.Bytes()), n)
}

func TestBuffer_ExtendTruncateCopy(t *testing.T) {
	b := NewBuffer(4)
	tail := b.Extend(3)
	copy(tail, "abc")
	b.AddRawString("def")
	assert.Equal(t, "abcdef", string(b.Bytes()))

	b.Truncate(2)
	assert.Equal(t, "ab", string(b.Bytes()))

	out := b.Copy()
	b.Reset()
	b.AddRawString("zz")
	assert.Equal(t, "ab", string(out))
	assert.Equal(t, "zz", string(b.Bytes()))
}

func TestBuffer_ZeroValue(t *testing.T) {
	var b Buffer
	b.AddString("x")
	assert.Equal(t, `"x"`, string(b.Bytes()))
}

var sinkBuf []byte

func BenchmarkBuffer_Record(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := GetBuffer()
		buf.AddRawString(`{"username":`)
		buf.AddString("Alice")
		buf.AddRawString(`,"level":`)
		buf.AddInt64(42)
		buf.AddRawString(`,"health":`)
		_ = buf.AddFloat64(99.5, 64)
		buf.AddByte('}')
		sinkBuf = buf.Copy()
		ReleaseBuffer(buf)
	}
}
