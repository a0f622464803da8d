package access

import (
	"bytes"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"

	"github.com/quickwritereader/structjson/scalar"
	"github.com/quickwritereader/structjson/types"
)

// Kind is the JSON type of a Value, read from its first byte.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

var iterAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Value is a read-only view of one JSON value. Navigation is lazy: nested
// members are only located when asked for.
type Value struct {
	raw []byte
}

// Parse validates data as a single JSON document and returns a view of it.
// A string that fails to decode is reported with its own error
// (ErrInvalidEscape, ErrInvalidUnicode); anything else malformed is ErrSyntax.
func Parse(data []byte) (Value, error) {
	if err := checkTokens(data); err != nil {
		return Value{}, err
	}
	if !gojson.Valid(data) {
		return Value{}, types.Errorf("decode", types.ErrSyntax, "document is not valid JSON")
	}
	return Value{raw: bytes.TrimSpace(data)}, nil
}

// RawValue wraps bytes that are already known to hold one JSON value.
func RawValue(raw []byte) Value {
	return Value{raw: bytes.TrimSpace(raw)}
}

// Raw returns the underlying JSON text.
func (v Value) Raw() []byte { return v.raw }

func (v Value) Kind() Kind {
	if len(v.raw) == 0 {
		return KindInvalid
	}
	switch c := v.raw[0]; {
	case c == '{':
		return KindObject
	case c == '[':
		return KindArray
	case c == '"':
		return KindString
	case c == 't' || c == 'f':
		return KindBool
	case c == 'n':
		return KindNull
	case c == '-' || (c >= '0' && c <= '9'):
		return KindNumber
	}
	return KindInvalid
}

func (v Value) IsNull() bool { return scalar.IsNull(v.raw) }

func (v Value) String() (string, error) { return scalar.DecodeString(v.raw) }

func (v Value) Int64() (int64, error) { return scalar.ParseInt(v.raw, 64) }

func (v Value) Uint64() (uint64, error) { return scalar.ParseUint(v.raw, 64) }

func (v Value) Float64() (float64, error) { return scalar.ParseFloat(v.raw, 64) }

func (v Value) Bool() (bool, error) { return scalar.ParseBool(v.raw) }

func (v Value) mismatch(want Kind) error {
	return types.Errorf("decode", types.ErrTypeMismatch, fmt.Sprintf("expected %s, got %s", want, v.Kind()))
}

// EachMember calls fn for every member of an object in document order.
// Returning an error from fn stops the walk and is returned as is.
// Keys are decoded with the same rules as string values.
func (v Value) EachMember(fn func(key string, val Value) error) error {
	if v.Kind() != KindObject {
		return v.mismatch(KindObject)
	}
	it := iterAPI.BorrowIterator(nil)
	defer iterAPI.ReturnIterator(it)

	raw := v.raw
	i := skipSpace(raw, 1)
	if i < len(raw) && raw[i] == '}' {
		return nil
	}
	for {
		if i >= len(raw) || raw[i] != '"' {
			return syntaxError("expected object key")
		}
		end, _ := stringEnd(raw, i)
		if end < 0 {
			return syntaxError("unterminated object key")
		}
		key, err := scalar.DecodeString(raw[i : end+1])
		if err != nil {
			return err
		}
		i = skipSpace(raw, end+1)
		if i >= len(raw) || raw[i] != ':' {
			return syntaxError("expected ':' after object key")
		}
		i = skipSpace(raw, i+1)
		n, err := skipValue(it, raw[i:])
		if err != nil {
			return err
		}
		if err := fn(key, Value{raw: raw[i : i+n]}); err != nil {
			return err
		}
		i = skipSpace(raw, i+n)
		if i >= len(raw) {
			return syntaxError("unterminated object")
		}
		switch raw[i] {
		case ',':
			i = skipSpace(raw, i+1)
		case '}':
			return nil
		default:
			return syntaxError("expected ',' or '}' in object")
		}
	}
}

// EachElement calls fn for every element of an array in order.
func (v Value) EachElement(fn func(i int, val Value) error) error {
	if v.Kind() != KindArray {
		return v.mismatch(KindArray)
	}
	it := iterAPI.BorrowIterator(v.raw)
	defer iterAPI.ReturnIterator(it)

	var cbErr error
	i := 0
	it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
		raw := it.SkipAndReturnBytes()
		if it.Error != nil {
			return false
		}
		cbErr = fn(i, RawValue(raw))
		i++
		return cbErr == nil
	})
	if cbErr != nil {
		return cbErr
	}
	if it.Error != nil {
		return types.Errorf("decode", types.ErrSyntax, it.Error.Error())
	}
	return nil
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Object returns the members of an object in document order.
func (v Value) Object() ([]Member, error) {
	var out []Member
	err := v.EachMember(func(key string, val Value) error {
		out = append(out, Member{Key: key, Value: val})
		return nil
	})
	return out, err
}

// Array returns the elements of an array.
func (v Value) Array() ([]Value, error) {
	var out []Value
	err := v.EachElement(func(_ int, val Value) error {
		out = append(out, val)
		return nil
	})
	return out, err
}

// Get looks up key in an object. When a key repeats, the last one wins.
func (v Value) Get(key string) (Value, error) {
	var found Value
	ok := false
	err := v.EachMember(func(k string, val Value) error {
		if k == key {
			found, ok = val, true
		}
		return nil
	})
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Value{}, types.Errorf("decode", types.ErrNotFound, "key "+key)
	}
	return found, nil
}

// Index returns the i-th element of an array.
func (v Value) Index(i int) (Value, error) {
	var found Value
	ok := false
	err := v.EachElement(func(j int, val Value) error {
		if j == i {
			found, ok = val, true
			return errStop
		}
		return nil
	})
	if err != nil && err != errStop {
		return Value{}, err
	}
	if !ok {
		return Value{}, types.Errorf("decode", types.ErrNotFound, fmt.Sprintf("index %d", i))
	}
	return found, nil
}

var errStop = errors.New("stop")
