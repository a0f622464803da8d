package types

import (
	"encoding"
	"reflect"
)

// Shape classifies a Go type by how it maps onto JSON.
// It is resolved once per type and reused for every value of that type.
type Shape uint8

const (
	ShapeInvalid     Shape = 0
	ShapeScalar      Shape = 1 // string, bool, integers, floats, []byte
	ShapeSequence    Shape = 2 // slices and arrays
	ShapeAssociative Shape = 3 // maps and Associative implementations
	ShapeOptional    Shape = 4 // pointers and Optional implementations
	ShapeRecord      Shape = 5 // structs
	ShapeDynamic     Shape = 6 // interface values
	ShapeCustom      Shape = 7 // self-encoding types
)

// String returns the human-readable name of the shape
func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeSequence:
		return "sequence"
	case ShapeAssociative:
		return "associative"
	case ShapeOptional:
		return "optional"
	case ShapeRecord:
		return "record"
	case ShapeDynamic:
		return "dynamic"
	case ShapeCustom:
		return "custom"
	default:
		return "invalid"
	}
}

// Associative is implemented by key/value containers that are not Go maps.
// SetAny receives values of ElemType.
type Associative interface {
	Len() int
	RangeAny(yield func(key string, v any) bool)
	SetAny(key string, v any) error
	ElemType() reflect.Type
}

// OptionalValue is the read half of Optional. Its methods have value
// receivers so unaddressable values can still be encoded.
// ElemAny returns the wrapped value when present.
type OptionalValue interface {
	IsAbsent() bool
	ElemType() reflect.Type
	ElemAny() any
}

// Optional is implemented by *T for value types T that carry their own
// presence flag.
type Optional interface {
	OptionalValue
	SetAny(v any) error
	Clear()
}

var (
	associativeType   = reflect.TypeFor[Associative]()
	optionalType      = reflect.TypeFor[Optional]()
	optionalValueType = reflect.TypeFor[OptionalValue]()
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
)

// IsByteSlice reports whether t is a []byte-like slice encoded as base64.
func IsByteSlice(t reflect.Type) bool {
	return t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 && !t.Elem().Implements(textMarshalerType)
}

// ImplementsAssociative reports whether *t (or t itself, for pointer types)
// is an Associative container.
func ImplementsAssociative(t reflect.Type) bool {
	return t.Implements(associativeType)
}

// ImplementsOptional reports whether values of t are Optional wrappers
// that can be read by value and written through a pointer.
func ImplementsOptional(t reflect.Type) bool {
	return t.Kind() != reflect.Pointer && t.Implements(optionalValueType) && reflect.PointerTo(t).Implements(optionalType)
}

// ValidMapKey reports whether k can be turned into a JSON object key.
func ValidMapKey(k reflect.Type) bool {
	switch k.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return k.Implements(textMarshalerType)
}

// Classify returns the shape of t. Custom codecs are detected by the caller,
// which owns the marshaler interfaces; Classify only sees reflection kinds.
func Classify(t reflect.Type) Shape {
	if ImplementsOptional(t) {
		return ShapeOptional
	}
	if ImplementsAssociative(t) {
		return ShapeAssociative
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return ShapeScalar
	case reflect.Slice:
		if IsByteSlice(t) {
			return ShapeScalar
		}
		return ShapeSequence
	case reflect.Array:
		return ShapeSequence
	case reflect.Map:
		if !ValidMapKey(t.Key()) {
			return ShapeInvalid
		}
		return ShapeAssociative
	case reflect.Pointer:
		return ShapeOptional
	case reflect.Struct:
		return ShapeRecord
	case reflect.Interface:
		return ShapeDynamic
	default:
		return ShapeInvalid
	}
}
