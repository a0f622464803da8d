package codec

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/schema"
	"github.com/quickwritereader/structjson/types"
)

type encodeState struct {
	buf  *access.Buffer
	opts Options
	// depth counts the references entered on the current path; seen is
	// only filled past cycleDepth.
	depth int
	seen  map[refKey]struct{}
}

// cycleDepth is how deep encoding goes before it starts looking for cycles.
const cycleDepth = 1000

type refKey struct {
	ptr unsafe.Pointer
	len int
}

// enter records v, a pointer, map or slice, on the current path. Once the
// path is deep enough, meeting the same reference twice is a cycle.
func (e *encodeState) enter(v reflect.Value) error {
	e.depth++
	if e.depth <= cycleDepth {
		return nil
	}
	k := refKeyOf(v)
	if _, ok := e.seen[k]; ok {
		return types.Errorf("encode", types.ErrUnsupportedType, "cycle through "+v.Type().String())
	}
	if e.seen == nil {
		e.seen = make(map[refKey]struct{})
	}
	e.seen[k] = struct{}{}
	return nil
}

func (e *encodeState) leave(v reflect.Value) {
	if e.depth > cycleDepth {
		delete(e.seen, refKeyOf(v))
	}
	e.depth--
}

func refKeyOf(v reflect.Value) refKey {
	k := refKey{ptr: v.UnsafePointer()}
	if v.Kind() == reflect.Slice {
		k.len = v.Len()
	}
	return k
}

type decodeState struct {
	opts Options
}

type encodeFunc func(e *encodeState, v reflect.Value) error

// decodeFunc writes val into v, which is always addressable.
type decodeFunc func(d *decodeState, val access.Value, v reflect.Value) error

// plan is the compiled encode/decode logic for one Go type.
type plan struct {
	typ    reflect.Type
	shape  types.Shape
	encode encodeFunc
	decode decodeFunc
	// absent is nil for types without an absent state.
	absent func(v reflect.Value) bool
	empty  func(v reflect.Value) bool
}

var plans sync.Map // reflect.Type -> *plan

// planFor returns the cached plan of t. A type that refers to itself gets a
// placeholder while its plan is being built; the placeholder waits for the
// real plan, so it is only ever called after construction has finished.
func planFor(t reflect.Type) *plan {
	if p, ok := plans.Load(t); ok {
		return p.(*plan)
	}

	var (
		wg   sync.WaitGroup
		real *plan
	)
	wg.Add(1)
	placeholder := &plan{
		typ:    t,
		shape:  schema.ShapeOf(t),
		absent: absentFunc(t),
		empty:  emptyFunc(t),
		encode: func(e *encodeState, v reflect.Value) error {
			wg.Wait()
			return real.encode(e, v)
		},
		decode: func(d *decodeState, val access.Value, v reflect.Value) error {
			wg.Wait()
			return real.decode(d, val, v)
		},
	}
	p, loaded := plans.LoadOrStore(t, placeholder)
	if loaded {
		return p.(*plan)
	}

	real = newPlan(t)
	wg.Done()
	plans.Store(t, real)
	return real
}

func newPlan(t reflect.Type) *plan {
	p := &plan{
		typ:    t,
		shape:  schema.ShapeOf(t),
		absent: absentFunc(t),
		empty:  emptyFunc(t),
	}
	switch p.shape {
	case types.ShapeScalar:
		p.encode, p.decode = scalarFuncs(t)
	case types.ShapeSequence:
		p.encode, p.decode = sequenceFuncs(t)
	case types.ShapeAssociative:
		p.encode, p.decode = associativeFuncs(t)
	case types.ShapeOptional:
		p.encode, p.decode = optionalFuncs(t)
	case types.ShapeRecord:
		p.encode, p.decode = recordFuncs(t)
	case types.ShapeDynamic:
		p.encode, p.decode = dynamicFuncs(t)
	case types.ShapeCustom:
		p.encode, p.decode = customFuncs(t)
	default:
		p.encode, p.decode = unsupportedFuncs(t)
	}
	return p
}

func unsupportedFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	return func(*encodeState, reflect.Value) error {
			return types.Errorf("encode", types.ErrUnsupportedType, t.String())
		}, func(*decodeState, access.Value, reflect.Value) error {
			return types.Errorf("decode", types.ErrUnsupportedType, t.String())
		}
}

func absentFunc(t reflect.Type) func(reflect.Value) bool {
	if types.ImplementsOptional(t) {
		return func(v reflect.Value) bool {
			return v.Interface().(types.OptionalValue).IsAbsent()
		}
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return reflect.Value.IsNil
	}
	return nil
}

// emptyFunc matches the omitempty rules of encoding/json, with absent
// Optional wrappers counted as empty.
func emptyFunc(t reflect.Type) func(reflect.Value) bool {
	if types.ImplementsOptional(t) {
		return absentFunc(t)
	}
	switch t.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return func(v reflect.Value) bool { return v.Len() == 0 }
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return reflect.Value.IsZero
	case reflect.Interface, reflect.Pointer:
		return reflect.Value.IsNil
	}
	return func(reflect.Value) bool { return false }
}

// Compile builds the plan of t and every type reachable from it, and reports
// the first type that cannot be encoded.
func Compile(t reflect.Type) error {
	planFor(t)
	return check(t, map[reflect.Type]bool{})
}

func check(t reflect.Type, seen map[reflect.Type]bool) error {
	if seen[t] {
		return nil
	}
	seen[t] = true

	switch schema.ShapeOf(t) {
	case types.ShapeInvalid:
		return types.Errorf("compile", types.ErrUnsupportedType, t.String())
	case types.ShapeSequence:
		if err := check(t.Elem(), seen); err != nil {
			return types.WithIndex("compile", err, 0)
		}
	case types.ShapeAssociative:
		et := associativeElem(t)
		if err := check(et, seen); err != nil {
			return types.WithKey("compile", err, "*")
		}
	case types.ShapeOptional:
		if err := check(optionalElem(t), seen); err != nil {
			return err
		}
	case types.ShapeRecord:
		s, err := schema.SchemaOf(t)
		if err != nil {
			return err
		}
		for i := range s.Fields {
			if err := check(s.Fields[i].Type, seen); err != nil {
				return types.WithField("compile", err, s.Fields[i].Name)
			}
		}
	}
	return nil
}
