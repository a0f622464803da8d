package codec

import (
	"reflect"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/scalar"
	"github.com/quickwritereader/structjson/types"
)

func scalarFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	switch t.Kind() {
	case reflect.Bool:
		return encodeBool, decodeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return encodeInt, decodeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return encodeUint, decodeUint
	case reflect.Float32, reflect.Float64:
		return encodeFloat, decodeFloat
	case reflect.String:
		return encodeString, decodeString
	case reflect.Slice:
		return encodeBytes, decodeBytes
	}
	return unsupportedFuncs(t)
}

func encodeBool(e *encodeState, v reflect.Value) error {
	e.buf.AddBool(v.Bool())
	return nil
}

func encodeInt(e *encodeState, v reflect.Value) error {
	e.buf.AddInt64(v.Int())
	return nil
}

func encodeUint(e *encodeState, v reflect.Value) error {
	e.buf.AddUint64(v.Uint())
	return nil
}

func encodeFloat(e *encodeState, v reflect.Value) error {
	return e.buf.AddFloat64(v.Float(), v.Type().Bits())
}

func encodeString(e *encodeState, v reflect.Value) error {
	e.buf.AddString(v.String())
	return nil
}

func encodeBytes(e *encodeState, v reflect.Value) error {
	if v.IsNil() {
		e.buf.AddNull()
		return nil
	}
	e.buf.AddBase64(v.Bytes())
	return nil
}

func decodeBool(_ *decodeState, val access.Value, v reflect.Value) error {
	b, err := scalar.ParseBool(val.Raw())
	if err != nil {
		return err
	}
	v.SetBool(b)
	return nil
}

func decodeInt(_ *decodeState, val access.Value, v reflect.Value) error {
	n, err := scalar.ParseInt(val.Raw(), v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetInt(n)
	return nil
}

func decodeUint(_ *decodeState, val access.Value, v reflect.Value) error {
	n, err := scalar.ParseUint(val.Raw(), v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetUint(n)
	return nil
}

func decodeFloat(_ *decodeState, val access.Value, v reflect.Value) error {
	f, err := scalar.ParseFloat(val.Raw(), v.Type().Bits())
	if err != nil {
		return err
	}
	v.SetFloat(f)
	return nil
}

func decodeString(_ *decodeState, val access.Value, v reflect.Value) error {
	s, err := val.String()
	if err != nil {
		return err
	}
	v.SetString(s)
	return nil
}

func decodeBytes(_ *decodeState, val access.Value, v reflect.Value) error {
	if val.IsNull() {
		v.SetZero()
		return nil
	}
	if val.Kind() != access.KindString {
		return types.Errorf("decode", types.ErrTypeMismatch, "expected base64 string, got "+val.Kind().String())
	}
	b, err := scalar.DecodeBase64(val.Raw())
	if err != nil {
		return err
	}
	v.SetBytes(b)
	return nil
}
