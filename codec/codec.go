// Package codec turns Go values into JSON text and back, driven by plans
// compiled once per type.
package codec

import (
	"reflect"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/types"
)

// Encode returns the JSON encoding of v. On failure no bytes are returned.
func Encode(v any, opts Options) ([]byte, error) {
	buf := access.GetBuffer()
	defer access.ReleaseBuffer(buf)
	if err := EncodeTo(buf, v, opts); err != nil {
		return nil, err
	}
	return buf.Copy(), nil
}

// EncodeTo appends the JSON encoding of v to buf. On failure buf is rolled
// back to its previous length.
func EncodeTo(buf *access.Buffer, v any, opts Options) error {
	mark := buf.Len()
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		buf.AddNull()
		return nil
	}
	e := &encodeState{buf: buf, opts: opts}
	if err := planFor(rv.Type()).encode(e, rv); err != nil {
		buf.Truncate(mark)
		return err
	}
	return nil
}

// EncodeValue is EncodeTo for an already reflected value.
func EncodeValue(buf *access.Buffer, v reflect.Value, opts Options) error {
	mark := buf.Len()
	e := &encodeState{buf: buf, opts: opts}
	if err := planFor(v.Type()).encode(e, v); err != nil {
		buf.Truncate(mark)
		return err
	}
	return nil
}

// Decode parses data and stores the result in the value ptr points to.
func Decode(data []byte, ptr any, opts Options) error {
	val, err := access.Parse(data)
	if err != nil {
		return err
	}
	return DecodeValue(val, ptr, opts)
}

// DecodeValue stores val in the value ptr points to. ptr must be a non-nil pointer.
// Members absent from val keep their current value. On failure *ptr is left
// exactly as it was.
func DecodeValue(val access.Value, ptr any, opts Options) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return types.Errorf("decode", types.ErrUnsupportedType, "target must be a non-nil pointer")
	}
	target := rv.Elem()
	// work on a copy so a failure leaves *ptr untouched
	tmp := reflect.New(target.Type()).Elem()
	tmp.Set(target)
	d := &decodeState{opts: opts}
	if err := planFor(target.Type()).decode(d, val, tmp); err != nil {
		return err
	}
	target.Set(tmp)
	return nil
}
