package schema

import (
	"encoding"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	gojson "github.com/goccy/go-json"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/scalar"
	"github.com/quickwritereader/structjson/types"
)

// FieldDescriptor describes one encoded field of a struct type.
// It is built once per type and never mutated afterwards.
type FieldDescriptor struct {
	Name      string
	Ordinal   int   // position in RecordSchema.Fields
	Index     []int // reflect index path, through flattened embeds
	Type      reflect.Type
	Shape     types.Shape
	OmitEmpty bool
	Tagged    bool

	literal string // `"name":`
}

// Literal returns the pre-encoded `"name":` prefix.
func (f *FieldDescriptor) Literal() string { return f.literal }

// Value reads the field out of record (a struct value of the schema's type).
func (f *FieldDescriptor) Value(record reflect.Value) reflect.Value {
	if len(f.Index) == 1 {
		return record.Field(f.Index[0])
	}
	return record.FieldByIndex(f.Index)
}

// Field returns the field of an addressable record for writing.
func (f *FieldDescriptor) Field(record reflect.Value) reflect.Value {
	return f.Value(record)
}

// Optional reports whether the field has a natural absent state, or is
// omitempty, so that strict decoding does not require it.
func (f *FieldDescriptor) Optional() bool {
	if f.OmitEmpty {
		return true
	}
	switch f.Shape {
	case types.ShapeOptional, types.ShapeDynamic:
		return true
	}
	switch f.Type.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}

// RecordSchema is the ordered field list of one struct type.
type RecordSchema struct {
	Type   reflect.Type
	Fields []FieldDescriptor
	byName map[string]int
}

func (s *RecordSchema) Len() int { return len(s.Fields) }

// Lookup finds a field by its exact JSON name.
func (s *RecordSchema) Lookup(name string) (*FieldDescriptor, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.Fields[i], true
}

// Names returns the JSON names in encode order.
func (s *RecordSchema) Names() []string {
	names := make([]string, len(s.Fields))
	for i := range s.Fields {
		names[i] = s.Fields[i].Name
	}
	return names
}

type entry struct {
	once   sync.Once
	schema *RecordSchema
	err    error
}

var cache sync.Map // reflect.Type -> *entry

// SchemaOf returns the cached schema of struct type t, building it on first use.
// Concurrent first calls build it once and all get the same pointer.
func SchemaOf(t reflect.Type) (*RecordSchema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("SchemaOf: %v is not a struct: %w", t, types.ErrUnsupportedType)
	}
	v, ok := cache.Load(t)
	if !ok {
		v, _ = cache.LoadOrStore(t, &entry{})
	}
	e := v.(*entry)
	e.once.Do(func() {
		e.schema, e.err = build(t)
	})
	return e.schema, e.err
}

// For is SchemaOf for a type parameter.
func For[T any]() (*RecordSchema, error) {
	return SchemaOf(reflect.TypeFor[T]())
}

func build(t reflect.Type) (*RecordSchema, error) {
	fields := dominantFields(collect(t))
	s := &RecordSchema{
		Type:   t,
		Fields: make([]FieldDescriptor, len(fields)),
		byName: make(map[string]int, len(fields)),
	}
	for i, c := range fields {
		s.Fields[i] = FieldDescriptor{
			Name:      c.name,
			Ordinal:   i,
			Index:     c.index,
			Type:      c.typ,
			Shape:     ShapeOf(c.typ),
			OmitEmpty: c.omitEmpty,
			Tagged:    c.tagged,
			literal:   string(scalar.AppendString(nil, c.name)) + ":",
		}
		s.byName[c.name] = i
	}
	return s, nil
}

type candidate struct {
	name      string
	tagged    bool
	omitEmpty bool
	index     []int
	typ       reflect.Type
}

func (c *candidate) depth() int { return len(c.index) }

// collect walks t breadth first, descending into untagged embedded structs.
func collect(t reflect.Type) []candidate {
	type level struct {
		typ   reflect.Type
		index []int
	}
	var out []candidate
	next := []level{{typ: t}}
	visited := map[reflect.Type]bool{}

	for len(next) > 0 {
		current := next
		next = nil
		for _, l := range current {
			if visited[l.typ] {
				continue
			}
			visited[l.typ] = true

			for i := 0; i < l.typ.NumField(); i++ {
				sf := l.typ.Field(i)
				tag := sf.Tag.Get("json")
				if tag == "-" {
					continue
				}
				name, opts := parseTag(tag)
				index := append(slices.Clip(l.index), i)

				if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
					// unexported embedded structs still promote their exported fields
					next = append(next, level{typ: sf.Type, index: index})
					continue
				}
				if !sf.IsExported() {
					continue
				}
				c := candidate{
					name:      name,
					tagged:    name != "",
					omitEmpty: opts.has("omitempty"),
					index:     index,
					typ:       sf.Type,
				}
				if c.name == "" {
					c.name = sf.Name
				}
				out = append(out, c)
			}
		}
	}
	return out
}

// dominantFields applies the shadowing rules: for each name the shallowest
// field wins; a tie is broken by a json tag; anything else drops the name.
// The result is in declaration order, embedded fields at the embedding position.
func dominantFields(all []candidate) []candidate {
	byName := make(map[string][]candidate, len(all))
	var order []string
	for _, c := range all {
		if _, seen := byName[c.name]; !seen {
			order = append(order, c.name)
		}
		byName[c.name] = append(byName[c.name], c)
	}

	out := make([]candidate, 0, len(order))
	for _, name := range order {
		if c, ok := dominant(byName[name]); ok {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b candidate) int {
		return slices.Compare(a.index, b.index)
	})
	return out
}

func dominant(cs []candidate) (candidate, bool) {
	if len(cs) == 1 {
		return cs[0], true
	}
	minDepth := cs[0].depth()
	for _, c := range cs[1:] {
		minDepth = min(minDepth, c.depth())
	}
	var shallow, tagged []candidate
	for _, c := range cs {
		if c.depth() != minDepth {
			continue
		}
		shallow = append(shallow, c)
		if c.tagged {
			tagged = append(tagged, c)
		}
	}
	if len(shallow) == 1 {
		return shallow[0], true
	}
	if len(tagged) == 1 {
		return tagged[0], true
	}
	return candidate{}, false
}

type tagOptions string

func parseTag(tag string) (string, tagOptions) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, tagOptions(opts)
}

func (o tagOptions) has(opt string) bool {
	s := string(o)
	for s != "" {
		var cur string
		cur, s, _ = strings.Cut(s, ",")
		if cur == opt {
			return true
		}
	}
	return false
}

var (
	marshalerType       = reflect.TypeFor[access.Marshaler]()
	unmarshalerType     = reflect.TypeFor[access.Unmarshaler]()
	jsonMarshalerType   = reflect.TypeFor[gojson.Marshaler]()
	jsonUnmarshalerType = reflect.TypeFor[gojson.Unmarshaler]()
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// CustomKind tells which self-encoding interface a type (or its pointer) has.
type CustomKind uint8

const (
	CustomNone   CustomKind = iota
	CustomAccess            // access.Marshaler / access.Unmarshaler
	CustomJSON              // MarshalJSON / UnmarshalJSON
	CustomText              // MarshalText / UnmarshalText
)

// EncodeCustom reports how values of t encode themselves, if at all.
// Pass reflect.PointerTo(t) to find pointer-receiver methods.
func EncodeCustom(t reflect.Type) CustomKind {
	return customKind(t, marshalerType, jsonMarshalerType, textMarshalerType)
}

// DecodeCustom reports how *t decodes itself, if at all.
func DecodeCustom(t reflect.Type) CustomKind {
	return customKind(reflect.PointerTo(t), unmarshalerType, jsonUnmarshalerType, textUnmarshalerType)
}

func customKind(t, own, json, text reflect.Type) CustomKind {
	switch {
	case t.Implements(own):
		return CustomAccess
	case t.Implements(json):
		return CustomJSON
	case t.Implements(text):
		return CustomText
	}
	return CustomNone
}

// ShapeOf classifies t, recognising self-encoding types on top of
// types.Classify. Pointers stay Optional even when the pointee is custom.
func ShapeOf(t reflect.Type) types.Shape {
	if types.ImplementsOptional(t) {
		return types.ShapeOptional
	}
	if types.ImplementsAssociative(t) {
		return types.ShapeAssociative
	}
	if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
		return types.Classify(t)
	}
	if EncodeCustom(t) != CustomNone || EncodeCustom(reflect.PointerTo(t)) != CustomNone || DecodeCustom(t) != CustomNone {
		return types.ShapeCustom
	}
	return types.Classify(t)
}
