// Package codecs puts structjson behind the same small Codec interface as the
// other serializers it is usually compared with, so callers and benchmarks
// can swap formats by name.
package codecs

import (
	"fmt"
	"sort"
)

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

var names = map[string]string{
	"structjson": "this module's reflection codec",
	"std":        "encoding/json",
	"goccy":      "github.com/goccy/go-json",
	"jsoniter":   "github.com/json-iterator/go",
	"sonic":      "github.com/bytedance/sonic",
	"msgpack":    "github.com/vmihailenco/msgpack/v5",
	"cbor":       "github.com/fxamacker/cbor/v2 (core deterministic)",
}

// Names lists the codecs ByName knows, sorted.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Describe returns a one-line description of a registered codec.
func Describe(name string) string { return names[name] }

// ByName returns the codec registered under name.
func ByName[V any](name string) (Codec[V], error) {
	switch name {
	case "structjson":
		return JSON[V]{}, nil
	case "std":
		return StdJSON[V]{}, nil
	case "goccy":
		return GoJSON[V]{}, nil
	case "jsoniter":
		return JSONIter[V]{}, nil
	case "sonic":
		return Sonic[V]{}, nil
	case "msgpack":
		return Msgpack[V]{}, nil
	case "cbor":
		c, err := NewCBOR[V](true)
		if err != nil {
			return nil, fmt.Errorf("ByName: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("ByName: unknown codec %q (have %v)", name, Names())
}

// IsJSON reports whether the named codec produces JSON text.
func IsJSON(name string) bool {
	return name != "msgpack" && name != "cbor" && names[name] != ""
}
