package utils

import (
	"math/bits"
	"sync"
)

const (
	minClassShift = 6  // 64 bytes
	maxClassShift = 20 // 1 MiB
	// MinBufferSize is the smallest capacity ever handed out.
	MinBufferSize = 1 << minClassShift
	// MaxPooledSize is the largest capacity kept for reuse.
	MaxPooledSize = 1 << maxClassShift
)

// BufferSizeClass lists the pooled capacities, doubling from 64 bytes to 1 MiB.
var BufferSizeClass = func() [maxClassShift - minClassShift + 1]int {
	var c [maxClassShift - minClassShift + 1]int
	for i := range c {
		c[i] = 1 << (minClassShift + i)
	}
	return c
}()

// SizeIndex returns the smallest class that holds n bytes, or -1 when n is
// out of the pooled range.
func SizeIndex(n int) int {
	if n <= 0 || n > MaxPooledSize {
		return -1
	}
	if n <= MinBufferSize {
		return 0
	}
	return bits.Len(uint(n-1)) - minClassShift
}

// BufferPool recycles byte slices by power-of-two capacity.
type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			b := make([]byte, 0, size)
			return &b
		}
	}
	return &bp
}

// DefaultPool is shared by the encoders.
var DefaultPool = NewBufferPool()

// Acquire returns an empty buffer with capacity of at least n bytes.
func (bp *BufferPool) Acquire(n int) []byte {
	idx := SizeIndex(n)
	if idx < 0 {
		if n <= 0 {
			idx = 0
		} else {
			return make([]byte, 0, n)
		}
	}
	bufPtr := bp.pools[idx].Get().(*[]byte)
	return (*bufPtr)[:0]
}

// Release returns the buffer to its pool if its capacity matches a class.
func (bp *BufferPool) Release(buf []byte) {
	c := cap(buf)
	if c < MinBufferSize || c > MaxPooledSize || c&(c-1) != 0 {
		return
	}
	buf = buf[:0]
	bp.pools[bits.Len(uint(c))-1-minClassShift].Put(&buf)
}

// Grow makes room for extra more bytes after len(buf). The new capacity is at
// least double the old one, so n appended bytes cost O(log n) reallocations.
// The old backing array goes back to the pool.
func (bp *BufferPool) Grow(buf []byte, extra int) []byte {
	need := len(buf) + extra
	if need <= cap(buf) {
		return buf
	}
	newCap := max(2*cap(buf), need, MinBufferSize)
	grown := bp.Acquire(newCap)
	grown = append(grown, buf...)
	bp.Release(buf)
	return grown
}
