package codecs

import (
	"errors"
	"fmt"
)

// MUSSerializer is the method set of mus-go serializers, hand-written or
// generated by musgen.
type MUSSerializer[V any] interface {
	Size(v V) int
	Marshal(v V, bs []byte) int
	Unmarshal(bs []byte) (V, int, error)
}

// ErrTrailingBytes is returned by MUS when a payload holds more than one value.
var ErrTrailingBytes = errors.New("trailing bytes after value")

// MUS adapts a mus-go serializer to Codec. MUS is schema-less, so it is not
// reachable through ByName: every value type needs its own serializer.
type MUS[V any] struct {
	Ser MUSSerializer[V]
}

func (c MUS[V]) Encode(v V) ([]byte, error) {
	bs := make([]byte, c.Ser.Size(v))
	c.Ser.Marshal(v, bs)
	return bs, nil
}

func (c MUS[V]) Decode(b []byte) (V, error) {
	v, n, err := c.Ser.Unmarshal(b)
	if err != nil {
		var zero V
		return zero, fmt.Errorf("MUS.Decode: %w", err)
	}
	if n != len(b) {
		var zero V
		return zero, fmt.Errorf("MUS.Decode: %w: %d of %d", ErrTrailingBytes, len(b)-n, len(b))
	}
	return v, nil
}
