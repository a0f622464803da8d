package codec

import (
	"bytes"
	"encoding"
	"reflect"

	gojson "github.com/goccy/go-json"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/schema"
	"github.com/quickwritereader/structjson/types"
)

// customFuncs serves types that encode or decode themselves. A direction the
// type does not implement falls back to the plan its kind would get.
func customFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	var fallback *plan
	kindPlan := func() *plan {
		if fallback == nil {
			fallback = &plan{typ: t, shape: types.Classify(t)}
			fallback.encode, fallback.decode = kindFuncs(t, fallback.shape)
		}
		return fallback
	}

	enc := customEncoder(t)
	if enc == nil {
		enc = kindPlan().encode
	}
	dec := customDecoder(t)
	if dec == nil {
		dec = kindPlan().decode
	}
	return enc, dec
}

func kindFuncs(t reflect.Type, shape types.Shape) (encodeFunc, decodeFunc) {
	switch shape {
	case types.ShapeScalar:
		return scalarFuncs(t)
	case types.ShapeSequence:
		return sequenceFuncs(t)
	case types.ShapeAssociative:
		return associativeFuncs(t)
	case types.ShapeRecord:
		return recordFuncs(t)
	}
	return unsupportedFuncs(t)
}

func customEncoder(t reflect.Type) encodeFunc {
	kind := schema.EncodeCustom(t)
	viaPointer := false
	if kind == schema.CustomNone {
		kind = schema.EncodeCustom(reflect.PointerTo(t))
		viaPointer = true
	}
	if kind == schema.CustomNone {
		return nil
	}
	receiver := func(v reflect.Value) any {
		if !viaPointer {
			return v.Interface()
		}
		if v.CanAddr() {
			return v.Addr().Interface()
		}
		p := reflect.New(t)
		p.Elem().Set(v)
		return p.Interface()
	}

	switch kind {
	case schema.CustomAccess:
		return func(e *encodeState, v reflect.Value) error {
			return receiver(v).(access.Marshaler).AppendJSON(e.buf)
		}
	case schema.CustomJSON:
		return func(e *encodeState, v reflect.Value) error {
			raw, err := receiver(v).(gojson.Marshaler).MarshalJSON()
			if err != nil {
				return types.Errorf("encode", err, t.String()+".MarshalJSON")
			}
			var compact bytes.Buffer
			if err := gojson.Compact(&compact, raw); err != nil {
				return types.Errorf("encode", types.ErrSyntax, t.String()+".MarshalJSON returned invalid JSON")
			}
			e.buf.AddRaw(compact.Bytes())
			return nil
		}
	default:
		return func(e *encodeState, v reflect.Value) error {
			text, err := receiver(v).(encoding.TextMarshaler).MarshalText()
			if err != nil {
				return types.Errorf("encode", err, t.String()+".MarshalText")
			}
			e.buf.AddString(string(text))
			return nil
		}
	}
}

func customDecoder(t reflect.Type) decodeFunc {
	switch schema.DecodeCustom(t) {
	case schema.CustomAccess:
		return func(_ *decodeState, val access.Value, v reflect.Value) error {
			return v.Addr().Interface().(access.Unmarshaler).DecodeJSON(val)
		}
	case schema.CustomJSON:
		return func(_ *decodeState, val access.Value, v reflect.Value) error {
			if err := v.Addr().Interface().(gojson.Unmarshaler).UnmarshalJSON(val.Raw()); err != nil {
				return types.Errorf("decode", types.ErrTypeMismatch, t.String()+".UnmarshalJSON: "+err.Error())
			}
			return nil
		}
	case schema.CustomText:
		return func(_ *decodeState, val access.Value, v reflect.Value) error {
			if val.IsNull() {
				return nil
			}
			s, err := val.String()
			if err != nil {
				return err
			}
			if err := v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
				return types.Errorf("decode", types.ErrTypeMismatch, t.String()+".UnmarshalText: "+err.Error())
			}
			return nil
		}
	}
	return nil
}
