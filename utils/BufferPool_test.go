package utils

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeIndex(t *testing.T) {
	cases := []struct {
		n      int
		expect int
	}{
		{1, 0}, {35, 0}, {63, 0}, {64, 0}, {65, 1}, {127, 1}, {128, 1},
		{129, 2}, {255, 2}, {256, 2}, {257, 3}, {511, 3}, {512, 3},
		{1023, 4}, {1024, 4}, {2047, 5}, {2048, 5}, {4095, 6}, {4096, 6},
		{8191, 7}, {8192, 7}, {16383, 8}, {16384, 8}, {32767, 9}, {32768, 9},
		{32769, 10}, {1 << 20, 14}, {1<<20 + 1, -1}, {0, -1},
	}

	for _, tc := range cases {
		idx := SizeIndex(tc.n)
		assert.Equal(t, tc.expect, idx, "SizeIndex(%d)", tc.n)

		if idx >= 0 {
			assert.GreaterOrEqual(t, BufferSizeClass[idx], tc.n, "BufferSizeClass[%d] too small for n=%d", idx, tc.n)
		}
	}
}

func TestBufferPool_AcquireRelease(t *testing.T) {
	bp := NewBufferPool()

	for _, size := range BufferSizeClass {
		buf := bp.Acquire(size - 1)
		assert.GreaterOrEqual(t, cap(buf), size-1)
		assert.Equal(t, 0, len(buf))

		buf = append(buf, 0xAA, 0xBB)
		bp.Release(buf)

		buf2 := bp.Acquire(size - 1)
		assert.GreaterOrEqual(t, cap(buf2), size-1)
		assert.Equal(t, 0, len(buf2))
	}
}

func TestBufferPool_Oversized(t *testing.T) {
	bp := NewBufferPool()
	oversized := MaxPooledSize + 10

	buf := bp.Acquire(oversized)
	assert.Equal(t, 0, len(buf))
	assert.GreaterOrEqual(t, cap(buf), oversized)

	bp.Release(buf) // should be safely ignored
}

func TestBufferPool_Grow(t *testing.T) {
	bp := NewBufferPool()
	buf := bp.Acquire(0)
	require.Equal(t, MinBufferSize, cap(buf))

	buf = append(buf, "hello"...)
	same := bp.Grow(buf, 10)
	assert.Equal(t, cap(buf), cap(same), "no reallocation when capacity suffices")

	grown := bp.Grow(buf, 100)
	assert.Equal(t, "hello", string(grown))
	assert.GreaterOrEqual(t, cap(grown), 105)
	assert.Equal(t, 128, cap(grown))

	big := bp.Grow(grown, 10_000)
	assert.Equal(t, "hello", string(big))
	assert.Equal(t, 16384, cap(big))
}

func TestBufferPool_GrowIsLogarithmic(t *testing.T) {
	bp := NewBufferPool()
	buf := bp.Acquire(0)
	reallocs := 0
	for i := 0; i < 100_000; i++ {
		before := cap(buf)
		buf = bp.Grow(buf, 1)
		if cap(buf) != before {
			reallocs++
		}
		buf = append(buf, byte(i))
	}
	assert.Len(t, buf, 100_000)
	// 64 -> 131072 takes 11 doublings.
	assert.LessOrEqual(t, reallocs, 11)
}

var retained [][]byte

func BenchmarkGCPressureSafe(b *testing.B) {
	const count = 100_000
	const bufSize = 4096

	b.Run("Make", func(b *testing.B) {
		retained = nil
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < count; j++ {
				buf := make([]byte, 0, bufSize)
				buf = append(buf, byte(j%256))

				if j%100 == 0 {
					retained = append(retained, buf)
					if len(retained) > 1000 {
						retained = retained[1:]
					}
				}
			}
			runtime.GC()
		}
	})

	b.Run("Pooled", func(b *testing.B) {
		retained = nil
		var pool = NewBufferPool()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			for j := 0; j < count; j++ {
				buf := pool.Acquire(bufSize)
				buf = append(buf, byte(j%256))

				// retained buffers never go back to the pool
				if j%100 == 0 {
					retained = append(retained, buf)
					if len(retained) > 1000 {
						retained = retained[1:]
					}
					continue
				}

				pool.Release(buf)
			}
			runtime.GC()
		}
	})
}

func BenchmarkBufferPool_Grow(b *testing.B) {
	bp := NewBufferPool()
	sizes := []int{64, 4096, 65536}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Grow_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf := bp.Acquire(0)
				for len(buf) < size {
					buf = bp.Grow(buf, 16)
					buf = append(buf, "0123456789abcdef"...)
				}
				bp.Release(buf)
			}
		})
	}
}
