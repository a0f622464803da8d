package access

import (
	"sync"
	"unsafe"

	"github.com/quickwritereader/structjson/scalar"
	"github.com/quickwritereader/structjson/utils"
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return &Buffer{}
	},
}

// GetBuffer returns an empty Buffer from the pool.
func GetBuffer() *Buffer {
	b := bufferPool.Get().(*Buffer)
	b.buf = utils.DefaultPool.Acquire(0)
	b.grows = 0
	return b
}

// ReleaseBuffer recycles b and its backing array. b must not be used afterwards,
// nor any slice obtained from b.Bytes.
func ReleaseBuffer(b *Buffer) {
	utils.DefaultPool.Release(b.buf)
	b.buf = nil
	bufferPool.Put(b)
}

// Buffer is the growable output of an encode call. Capacity at least doubles on
// every growth, so appending n bytes costs O(log n) reallocations.
type Buffer struct {
	buf   []byte
	grows int
}

// NewBuffer returns an unpooled Buffer with room for capacity bytes.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{buf: utils.DefaultPool.Acquire(capacity)}
}

// Reserve makes room for n more bytes without changing the length.
func (b *Buffer) Reserve(n int) {
	if len(b.buf)+n <= cap(b.buf) {
		return
	}
	b.buf = utils.DefaultPool.Grow(b.buf, n)
	b.grows++
}

// Extend grows the length by n and returns the new tail for in-place writes.
func (b *Buffer) Extend(n int) []byte {
	b.Reserve(n)
	l := len(b.buf)
	b.buf = b.buf[:l+n]
	return b.buf[l:]
}

func (b *Buffer) commit(next []byte) {
	if cap(next) != cap(b.buf) {
		b.grows++
	}
	b.buf = next
}

func (b *Buffer) AddByte(c byte) {
	b.Reserve(1)
	b.buf = append(b.buf, c)
}

// AddRaw appends already-encoded JSON.
func (b *Buffer) AddRaw(p []byte) {
	b.Reserve(len(p))
	b.buf = append(b.buf, p...)
}

// AddRawString appends already-encoded JSON held in a string, without copying it first.
func (b *Buffer) AddRawString(s string) {
	b.AddRaw(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// AddString appends s as a quoted, escaped JSON string.
func (b *Buffer) AddString(s string) {
	b.Reserve(len(s) + 2)
	b.commit(scalar.AppendString(b.buf, s))
}

// AddInt64 appends v in decimal, writing digits straight into the reserved tail.
func (b *Buffer) AddInt64(v int64) {
	if v < 0 {
		b.AddByte('-')
		b.AddUint64(-uint64(v))
		return
	}
	b.AddUint64(uint64(v))
}

func (b *Buffer) AddUint64(v uint64) {
	scalar.PutUint(b.Extend(scalar.DigitCount(v)), v)
}

// AddFloat64 appends f; non-finite values fail and leave the buffer untouched.
func (b *Buffer) AddFloat64(f float64, bitSize int) error {
	b.Reserve(24)
	next, err := scalar.AppendFloat(b.buf, f, bitSize)
	if err != nil {
		return err
	}
	b.commit(next)
	return nil
}

func (b *Buffer) AddBool(v bool) {
	b.Reserve(5)
	b.buf = scalar.AppendBool(b.buf, v)
}

func (b *Buffer) AddNull() {
	b.Reserve(4)
	b.buf = scalar.AppendNull(b.buf)
}

// AddBase64 appends p as a quoted base64 string.
func (b *Buffer) AddBase64(p []byte) {
	b.Reserve((len(p)+2)/3*4 + 2)
	b.buf = scalar.AppendBase64(b.buf, p)
}

// Bytes returns the committed bytes. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.buf }

func (b *Buffer) Len() int { return len(b.buf) }

// Truncate drops everything after the first n bytes.
func (b *Buffer) Truncate(n int) { b.buf = b.buf[:n] }

// LastByte returns the final committed byte, or 0 when empty.
func (b *Buffer) LastByte() byte {
	if len(b.buf) == 0 {
		return 0
	}
	return b.buf[len(b.buf)-1]
}

func (b *Buffer) Reset() { b.buf = b.buf[:0] }

// Grows reports how many times the backing array was replaced.
func (b *Buffer) Grows() int { return b.grows }

// Copy returns the committed bytes in a fresh slice owned by the caller.
func (b *Buffer) Copy() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}
