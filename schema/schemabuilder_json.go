package schema

import (
	"reflect"

	"github.com/quickwritereader/structjson/types"
)

// SchemaJSON is a serialisable description of a RecordSchema, for tooling
// and debugging output.
type SchemaJSON struct {
	Type   string      `json:"type"`
	Fields []FieldJSON `json:"fields"`
}

// FieldJSON describes one field. Nested records are expanded once; a type
// that is already being described is referenced by name only.
type FieldJSON struct {
	Name      string      `json:"name"`
	GoType    string      `json:"goType"`
	Shape     string      `json:"shape"`
	Index     []int       `json:"index"`
	OmitEmpty bool        `json:"omitEmpty,omitempty"`
	Schema    *SchemaJSON `json:"schema,omitempty"`
}

// Describe returns the description of s.
func (s *RecordSchema) Describe() SchemaJSON {
	return describe(s, map[reflect.Type]bool{})
}

func describe(s *RecordSchema, active map[reflect.Type]bool) SchemaJSON {
	active[s.Type] = true
	defer delete(active, s.Type)

	js := SchemaJSON{Type: s.Type.String(), Fields: make([]FieldJSON, len(s.Fields))}
	for i := range s.Fields {
		f := &s.Fields[i]
		fj := FieldJSON{
			Name:      f.Name,
			GoType:    f.Type.String(),
			Shape:     f.Shape.String(),
			Index:     f.Index,
			OmitEmpty: f.OmitEmpty,
		}
		if rt := recordType(f.Type); rt != nil && !active[rt] {
			if nested, err := SchemaOf(rt); err == nil {
				d := describe(nested, active)
				fj.Schema = &d
			}
		}
		js.Fields[i] = fj
	}
	return js
}

// recordType finds the struct type behind pointers and containers of t.
func recordType(t reflect.Type) reflect.Type {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map:
			t = t.Elem()
		case reflect.Struct:
			if ShapeOf(t) != types.ShapeRecord {
				return nil
			}
			return t
		default:
			return nil
		}
	}
}
