package access

import (
	"fmt"

	"github.com/quickwritereader/structjson/types"
)

// DecodeAny converts v into plain Go values: map[string]any, []any, float64,
// string, bool or nil.
func DecodeAny(v Value) (any, error) {
	return decodeAny(v, false)
}

// DecodeOrderedAny is DecodeAny with objects decoded as *types.OrderedMapAny,
// keeping member order.
func DecodeOrderedAny(v Value) (any, error) {
	return decodeAny(v, true)
}

func decodeAny(v Value, ordered bool) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Float64()
	case KindString:
		return v.String()
	case KindArray:
		return DecodeTupleGeneric(v, ordered)
	case KindObject:
		if ordered {
			return DecodeOrderedMapAny(v)
		}
		return DecodeMapAny(v)
	}
	return nil, types.Errorf("decode", types.ErrSyntax, "unrecognised value")
}

// DecodeTupleGeneric decodes an array into []any. An empty array gives an
// empty, non-nil slice.
func DecodeTupleGeneric(v Value, ordered bool) ([]any, error) {
	out := []any{}
	err := v.EachElement(func(i int, elem Value) error {
		x, err := decodeAny(elem, ordered)
		if err != nil {
			return types.WithIndex("decode", err, i)
		}
		out = append(out, x)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("DecodeTupleGeneric: %w", err)
	}
	return out, nil
}

// DecodeMapAny decodes an object into map[string]any.
func DecodeMapAny(v Value) (map[string]any, error) {
	out := make(map[string]any)
	err := v.EachMember(func(key string, val Value) error {
		x, err := decodeAny(val, false)
		if err != nil {
			return types.WithKey("decode", err, key)
		}
		out[key] = x
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("DecodeMapAny: %w", err)
	}
	return out, nil
}

// DecodeOrderedMapAny decodes an object into an OrderedMapAny,
// preserving member order.
func DecodeOrderedMapAny(v Value) (*types.OrderedMapAny, error) {
	out := types.NewOrderedMapAny()
	err := v.EachMember(func(key string, val Value) error {
		x, err := decodeAny(val, true)
		if err != nil {
			return types.WithKey("decode", err, key)
		}
		out.Set(key, x)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("DecodeOrderedMapAny: %w", err)
	}
	return out, nil
}
