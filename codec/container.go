package codec

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/types"
	"github.com/quickwritereader/structjson/utils"
)

func mismatch(want access.Kind, val access.Value) error {
	return types.Errorf("decode", types.ErrTypeMismatch, fmt.Sprintf("expected %s, got %s", want, val.Kind()))
}

// sequences

func sequenceFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	elem := planFor(t.Elem())
	enc := func(e *encodeState, v reflect.Value) error {
		if v.Kind() == reflect.Slice {
			if v.IsNil() {
				e.buf.AddNull()
				return nil
			}
			if err := e.enter(v); err != nil {
				return err
			}
			defer e.leave(v)
		}
		e.buf.AddByte('[')
		for i, n := 0, v.Len(); i < n; i++ {
			if i > 0 {
				e.buf.AddByte(',')
			}
			if err := elem.encode(e, v.Index(i)); err != nil {
				return types.WithIndex("encode", err, i)
			}
		}
		e.buf.AddByte(']')
		return nil
	}
	if t.Kind() == reflect.Array {
		return enc, arrayDecoder(elem)
	}
	return enc, sliceDecoder(t, elem)
}

func sliceDecoder(t reflect.Type, elem *plan) decodeFunc {
	return func(d *decodeState, val access.Value, v reflect.Value) error {
		if val.IsNull() {
			v.SetZero()
			return nil
		}
		if val.Kind() != access.KindArray {
			return mismatch(access.KindArray, val)
		}
		// always non-nil, so [] stays distinguishable from null
		sl := reflect.MakeSlice(t, 0, 4)
		err := val.EachElement(func(i int, ev access.Value) error {
			if i >= sl.Cap() {
				grown := reflect.MakeSlice(t, i, 2*sl.Cap())
				reflect.Copy(grown, sl)
				sl = grown
			}
			sl = sl.Slice(0, i+1)
			if err := elem.decode(d, ev, sl.Index(i)); err != nil {
				return types.WithIndex("decode", err, i)
			}
			return nil
		})
		if err != nil {
			return err
		}
		v.Set(sl)
		return nil
	}
}

// arrayDecoder fills a fixed-size array: extra elements are ignored and
// missing ones stay zero.
func arrayDecoder(elem *plan) decodeFunc {
	return func(d *decodeState, val access.Value, v reflect.Value) error {
		if val.Kind() != access.KindArray {
			return mismatch(access.KindArray, val)
		}
		v.SetZero()
		n := v.Len()
		return val.EachElement(func(i int, ev access.Value) error {
			if i >= n {
				return nil
			}
			if err := elem.decode(d, ev, v.Index(i)); err != nil {
				return types.WithIndex("decode", err, i)
			}
			return nil
		})
	}
}

// associative containers

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

func associativeElem(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Map {
		return t.Elem()
	}
	return reflect.Zero(t).Interface().(types.Associative).ElemType()
}

func associativeFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	if t.Kind() == reflect.Map {
		return mapFuncs(t)
	}
	return containerFuncs(t)
}

func mapFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	elem := planFor(t.Elem())
	keyString := mapKeyEncoder(t.Key())
	keyValue := mapKeyDecoder(t.Key())

	enc := func(e *encodeState, v reflect.Value) error {
		if v.IsNil() {
			e.buf.AddNull()
			return nil
		}
		if err := e.enter(v); err != nil {
			return err
		}
		defer e.leave(v)
		n := v.Len()
		keys := make([]string, 0, n)
		vals := make([]reflect.Value, 0, n)
		it := v.MapRange()
		for it.Next() {
			k, err := keyString(it.Key())
			if err != nil {
				return err
			}
			keys = append(keys, k)
			vals = append(vals, it.Value())
		}

		e.buf.AddByte('{')
		write := func(pos, i int) error {
			if pos > 0 {
				e.buf.AddByte(',')
			}
			e.buf.AddString(keys[i])
			e.buf.AddByte(':')
			if err := elem.encode(e, vals[i]); err != nil {
				return types.WithKey("encode", err, keys[i])
			}
			return nil
		}
		if e.opts.UnsortedMapKeys {
			for i := range keys {
				if err := write(i, i); err != nil {
					return err
				}
			}
		} else {
			for pos, i := range utils.SortedOrder(keys) {
				if err := write(pos, i); err != nil {
					return err
				}
			}
		}
		e.buf.AddByte('}')
		return nil
	}

	dec := func(d *decodeState, val access.Value, v reflect.Value) error {
		if val.IsNull() {
			v.SetZero()
			return nil
		}
		if val.Kind() != access.KindObject {
			return mismatch(access.KindObject, val)
		}
		// existing entries are merged into a fresh map, published on success
		m := reflect.MakeMapWithSize(t, v.Len())
		for it := v.MapRange(); it.Next(); {
			m.SetMapIndex(it.Key(), it.Value())
		}
		err := val.EachMember(func(key string, mv access.Value) error {
			k, err := keyValue(key)
			if err != nil {
				return types.WithKey("decode", err, key)
			}
			ev := reflect.New(t.Elem()).Elem()
			if err := elem.decode(d, mv, ev); err != nil {
				return types.WithKey("decode", err, key)
			}
			m.SetMapIndex(k, ev)
			return nil
		})
		if err != nil {
			return err
		}
		v.Set(m)
		return nil
	}
	return enc, dec
}

// mapKeyEncoder follows encoding/json: string kinds are used as is, then
// TextMarshaler, then integers.
func mapKeyEncoder(kt reflect.Type) func(reflect.Value) (string, error) {
	if kt.Kind() != reflect.String && kt.Implements(textMarshalerType) {
		return textKey
	}
	switch kt.Kind() {
	case reflect.String:
		return func(k reflect.Value) (string, error) { return k.String(), nil }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(k reflect.Value) (string, error) { return strconv.FormatInt(k.Int(), 10), nil }
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(k reflect.Value) (string, error) { return strconv.FormatUint(k.Uint(), 10), nil }
	}
	return textKey
}

func textKey(k reflect.Value) (string, error) {
	if k.Kind() == reflect.Pointer && k.IsNil() {
		return "", nil
	}
	text, err := k.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return "", types.Errorf("encode", err, "map key")
	}
	return string(text), nil
}

func mapKeyDecoder(kt reflect.Type) func(string) (reflect.Value, error) {
	if kt.Kind() != reflect.String && reflect.PointerTo(kt).Implements(textUnmarshalerType) {
		return textKeyDecoder(kt)
	}
	switch kt.Kind() {
	case reflect.String:
		return func(s string) (reflect.Value, error) { return reflect.ValueOf(s).Convert(kt), nil }
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(s string) (reflect.Value, error) {
			n, err := strconv.ParseInt(s, 10, kt.Bits())
			if err != nil {
				return reflect.Value{}, types.Errorf("decode", types.ErrTypeMismatch, "map key "+strconv.Quote(s)+" is not an integer")
			}
			return reflect.ValueOf(n).Convert(kt), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(s string) (reflect.Value, error) {
			n, err := strconv.ParseUint(s, 10, kt.Bits())
			if err != nil {
				return reflect.Value{}, types.Errorf("decode", types.ErrTypeMismatch, "map key "+strconv.Quote(s)+" is not an unsigned integer")
			}
			return reflect.ValueOf(n).Convert(kt), nil
		}
	}
	return func(string) (reflect.Value, error) {
		return reflect.Value{}, types.Errorf("decode", types.ErrUnsupportedType, "map key "+kt.String())
	}
}

func textKeyDecoder(kt reflect.Type) func(string) (reflect.Value, error) {
	return func(s string) (reflect.Value, error) {
		k := reflect.New(kt)
		if err := k.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return reflect.Value{}, types.Errorf("decode", types.ErrTypeMismatch, "map key: "+err.Error())
		}
		return k.Elem(), nil
	}
}

// containerFuncs handles types.Associative implementations, which keep their
// own entry order.
func containerFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	et := associativeElem(t)
	elem := planFor(et)

	enc := func(e *encodeState, v reflect.Value) error {
		if t.Kind() == reflect.Pointer {
			if v.IsNil() {
				e.buf.AddNull()
				return nil
			}
			if err := e.enter(v); err != nil {
				return err
			}
			defer e.leave(v)
		}
		a := v.Interface().(types.Associative)
		e.buf.AddByte('{')
		var err error
		first := true
		a.RangeAny(func(key string, x any) bool {
			if !first {
				e.buf.AddByte(',')
			}
			first = false
			e.buf.AddString(key)
			e.buf.AddByte(':')
			if err = elem.encode(e, typedValue(et, x)); err != nil {
				err = types.WithKey("encode", err, key)
				return false
			}
			return true
		})
		if err != nil {
			return err
		}
		e.buf.AddByte('}')
		return nil
	}

	dec := func(d *decodeState, val access.Value, v reflect.Value) error {
		if val.IsNull() {
			v.SetZero()
			return nil
		}
		if val.Kind() != access.KindObject {
			return mismatch(access.KindObject, val)
		}
		fresh, publish := freshContainer(t, v)
		a := fresh.Interface().(types.Associative)
		err := val.EachMember(func(key string, mv access.Value) error {
			ev := reflect.New(et).Elem()
			if err := elem.decode(d, mv, ev); err != nil {
				return types.WithKey("decode", err, key)
			}
			if err := a.SetAny(key, ev.Interface()); err != nil {
				return types.WithKey("decode", err, key)
			}
			return nil
		})
		if err != nil {
			return err
		}
		publish()
		return nil
	}
	return enc, dec
}

var associativeType = reflect.TypeFor[types.Associative]()

// freshContainer returns an Associative holding a copy of the entries in v,
// and a func that stores it back into v. Types that implement Associative
// on the value itself are filled in place.
func freshContainer(t reflect.Type, v reflect.Value) (reflect.Value, func()) {
	var fresh, old reflect.Value
	switch {
	case t.Kind() == reflect.Pointer:
		fresh = reflect.New(t.Elem())
		if !v.IsNil() {
			old = v
		}
	case reflect.PointerTo(t).Implements(associativeType):
		fresh = reflect.New(t)
		old = v.Addr()
	default:
		return v, func() {}
	}
	if old.IsValid() {
		dst := fresh.Interface().(types.Associative)
		old.Interface().(types.Associative).RangeAny(func(key string, x any) bool {
			return dst.SetAny(key, x) == nil
		})
	}
	return fresh, func() {
		if t.Kind() == reflect.Pointer {
			v.Set(fresh)
		} else {
			v.Set(fresh.Elem())
		}
	}
}

// typedValue wraps x as a value of type t, keeping interface element types
// as interfaces so their plans see what they expect.
func typedValue(t reflect.Type, x any) reflect.Value {
	if t.Kind() != reflect.Interface {
		if x == nil {
			return reflect.Zero(t)
		}
		return reflect.ValueOf(x)
	}
	v := reflect.New(t).Elem()
	if x != nil {
		v.Set(reflect.ValueOf(x))
	}
	return v
}

// optionals

func optionalElem(t reflect.Type) reflect.Type {
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return reflect.Zero(t).Interface().(types.OptionalValue).ElemType()
}

func optionalFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	if t.Kind() == reflect.Pointer {
		return pointerFuncs(t)
	}
	et := optionalElem(t)
	elem := planFor(et)

	enc := func(e *encodeState, v reflect.Value) error {
		o := v.Interface().(types.OptionalValue)
		if o.IsAbsent() {
			e.buf.AddNull()
			return nil
		}
		return elem.encode(e, typedValue(et, o.ElemAny()))
	}
	dec := func(d *decodeState, val access.Value, v reflect.Value) error {
		o := v.Addr().Interface().(types.Optional)
		if val.IsNull() {
			o.Clear()
			return nil
		}
		ev := reflect.New(et).Elem()
		if err := elem.decode(d, val, ev); err != nil {
			return err
		}
		return o.SetAny(ev.Interface())
	}
	return enc, dec
}

func pointerFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	elem := planFor(t.Elem())
	enc := func(e *encodeState, v reflect.Value) error {
		if v.IsNil() {
			e.buf.AddNull()
			return nil
		}
		if err := e.enter(v); err != nil {
			return err
		}
		defer e.leave(v)
		return elem.encode(e, v.Elem())
	}
	dec := func(d *decodeState, val access.Value, v reflect.Value) error {
		if val.IsNull() {
			v.SetZero()
			return nil
		}
		// the pointee is copied, never written through
		p := reflect.New(t.Elem())
		if !v.IsNil() {
			p.Elem().Set(v.Elem())
		}
		if err := elem.decode(d, val, p.Elem()); err != nil {
			return err
		}
		v.Set(p)
		return nil
	}
	return enc, dec
}

// dynamic values

func dynamicFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	enc := func(e *encodeState, v reflect.Value) error {
		if v.IsNil() {
			e.buf.AddNull()
			return nil
		}
		inner := v.Elem()
		return planFor(inner.Type()).encode(e, inner)
	}
	dec := func(d *decodeState, val access.Value, v reflect.Value) error {
		if t.NumMethod() > 0 {
			// only a pointer already held by the interface can be filled
			if v.IsNil() || v.Elem().Kind() != reflect.Pointer || v.Elem().IsNil() {
				return types.Errorf("decode", types.ErrUnsupportedType, "non-empty interface "+t.String())
			}
			inner := v.Elem()
			p := reflect.New(inner.Type().Elem())
			p.Elem().Set(inner.Elem())
			if err := planFor(p.Type().Elem()).decode(d, val, p.Elem()); err != nil {
				return err
			}
			v.Set(p)
			return nil
		}
		x, err := access.DecodeAny(val)
		if err != nil {
			return err
		}
		if x == nil {
			v.SetZero()
			return nil
		}
		v.Set(reflect.ValueOf(x))
		return nil
	}
	return enc, dec
}
