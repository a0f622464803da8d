package packable

import (
	"fmt"
	"reflect"

	"github.com/quickwritereader/structjson/types"
)

// Nullable holds a T that may be absent. Struct fields of this type are left
// out of objects while absent and decode null back to the absent state.
type Nullable[T any] struct {
	V     T
	Valid bool
}

func Some[T any](v T) Nullable[T] { return Nullable[T]{V: v, Valid: true} }

func None[T any]() Nullable[T] { return Nullable[T]{} }

// FromPtr is absent for a nil pointer and holds a copy of *p otherwise.
func FromPtr[T any](p *T) Nullable[T] {
	if p == nil {
		return Nullable[T]{}
	}
	return Some(*p)
}

// Ptr returns nil when absent.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

func (n Nullable[T]) Get() (T, bool) { return n.V, n.Valid }

func (n Nullable[T]) OrElse(def T) T {
	if !n.Valid {
		return def
	}
	return n.V
}

func (n Nullable[T]) IsAbsent() bool         { return !n.Valid }
func (n Nullable[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }
func (n Nullable[T]) ElemAny() any           { return n.V }

func (n *Nullable[T]) SetAny(v any) error {
	if v == nil {
		var zero T
		n.V, n.Valid = zero, true
		return nil
	}
	val, ok := v.(T)
	if !ok {
		return types.Errorf("decode", types.ErrTypeMismatch, fmt.Sprintf("%T is not %s", v, n.ElemType()))
	}
	n.V, n.Valid = val, true
	return nil
}

func (n *Nullable[T]) Clear() { *n = Nullable[T]{} }

func (n Nullable[T]) String() string {
	if !n.Valid {
		return "<absent>"
	}
	return fmt.Sprint(n.V)
}
