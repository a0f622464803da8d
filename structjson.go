// Package structjson encodes Go structs to JSON text and decodes JSON back
// into structs. Field layout is discovered once per type by reflection and
// cached; every later call reuses the compiled plan.
//
//	type Player struct {
//		Username  string   `json:"username"`
//		Level     int      `json:"level"`
//		Health    float64  `json:"health"`
//		Inventory []string `json:"inventory"`
//	}
//
//	b, err := structjson.Marshal(Player{Username: "Alice", Level: 42})
//
// Absent optional fields (nil pointers, slices and maps, and absent
// packable.Nullable values) are left out of the output unless
// Options.AbsentAsNull is set. Unknown members are ignored on decode.
package structjson

import (
	"bytes"

	gojson "github.com/goccy/go-json"

	"github.com/quickwritereader/structjson/codec"
)

// Marshal returns the compact JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return codec.Encode(v, codec.Options{})
}

// MarshalWith is Marshal with explicit options.
func MarshalWith(v any, opts Options) ([]byte, error) {
	return codec.Encode(v, opts.codec())
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	return Indent(compact, prefix, indent)
}

// Indent reformats encoded JSON with one member or element per line.
func Indent(src []byte, prefix, indent string) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(len(src) * 2)
	if err := gojson.Indent(&out, src, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Unmarshal decodes data into the value ptr points to.
func Unmarshal(data []byte, ptr any) error {
	return codec.Decode(data, ptr, codec.Options{})
}

// UnmarshalWith is Unmarshal with explicit options.
func UnmarshalWith(data []byte, ptr any, opts Options) error {
	return codec.Decode(data, ptr, opts.codec())
}
