package types

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"reflect"

	jsoniter "github.com/json-iterator/go"
)

// Pair represents a key/value pair for initialization
type Pair[V any] struct {
	Key   string
	Value V
}

func OP[V any](k string, v V) Pair[V] {
	return Pair[V]{Key: k, Value: v}
}

// Alias for Pair[any]
type PairAny = Pair[any]

// OPAny is a helper to construct a Pair[any] inline.
func OPAny(k string, v any) PairAny {
	return PairAny{Key: k, Value: v}
}

type node[V any] struct {
	key   string
	value V
	prev  *node[V]
	next  *node[V]
}

// OrderedMap is a string-keyed map that remembers insertion order.
// The zero value is ready to use. *OrderedMap[V] is an Associative container,
// so struct fields of that type encode as objects in insertion order.
type OrderedMap[V any] struct {
	data map[string]*node[V]
	head *node[V]
	tail *node[V]
}

// NewOrderedMap creates a new OrderedMap, optionally initialized with pairs.
func NewOrderedMap[V any](pairs ...Pair[V]) *OrderedMap[V] {
	om := &OrderedMap[V]{data: make(map[string]*node[V], len(pairs))}
	for _, p := range pairs {
		om.Set(p.Key, p.Value)
	}
	return om
}

// Alias for OrderedMap with any values
type OrderedMapAny = OrderedMap[any]

// NewOrderedMapAny creates an OrderedMap[any] initialized with pairs.
func NewOrderedMapAny(pairs ...PairAny) *OrderedMapAny {
	return NewOrderedMap(pairs...)
}

func (om *OrderedMap[V]) Len() int {
	if om == nil {
		return 0
	}
	return len(om.data)
}

// Set inserts or updates a key. Updating keeps the original position.
func (om *OrderedMap[V]) Set(key string, value V) {
	if om.data == nil {
		om.data = make(map[string]*node[V])
	}
	if n, ok := om.data[key]; ok {
		n.value = value
		return
	}
	n := &node[V]{key: key, value: value}
	om.data[key] = n
	if om.tail == nil {
		om.head, om.tail = n, n
	} else {
		n.prev = om.tail
		om.tail.next = n
		om.tail = n
	}
}

// Get retrieves a value
func (om *OrderedMap[V]) Get(key string) (V, bool) {
	if om == nil {
		var zero V
		return zero, false
	}
	n, ok := om.data[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.value, true
}

// GetAs returns the value under key converted to U, or the zero U.
func GetAs[U any](om *OrderedMapAny, key string) U {
	v, _ := om.Get(key)
	u, _ := v.(U)
	return u
}

// Delete removes a key
func (om *OrderedMap[V]) Delete(key string) {
	n, ok := om.data[key]
	if !ok {
		return
	}
	delete(om.data, key)
	om.unlink(n)
}

func (om *OrderedMap[V]) unlink(n *node[V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		om.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		om.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Keys returns keys in insertion order
func (om *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, om.Len())
	for k := range om.KeysIter() {
		keys = append(keys, k)
	}
	return keys
}

// Values returns values in insertion order
func (om *OrderedMap[V]) Values() []V {
	values := make([]V, 0, om.Len())
	for v := range om.ValuesIter() {
		values = append(values, v)
	}
	return values
}

// Items returns key/value pairs in insertion order
func (om *OrderedMap[V]) Items() []Pair[V] {
	items := make([]Pair[V], 0, om.Len())
	for k, v := range om.ItemsIter() {
		items = append(items, Pair[V]{Key: k, Value: v})
	}
	return items
}

// MoveToEnd moves a key to the back (last=true) or the front.
func (om *OrderedMap[V]) MoveToEnd(key string, last bool) error {
	n, ok := om.data[key]
	if !ok {
		return fmt.Errorf("MoveToEnd: %q: %w", key, ErrNotFound)
	}
	om.unlink(n)
	if last {
		n.prev = om.tail
		if om.tail != nil {
			om.tail.next = n
		}
		om.tail = n
		if om.head == nil {
			om.head = n
		}
	} else {
		n.next = om.head
		if om.head != nil {
			om.head.prev = n
		}
		om.head = n
		if om.tail == nil {
			om.tail = n
		}
	}
	return nil
}

func (om *OrderedMap[V]) Equal(other *OrderedMap[V]) bool {
	if om.Len() != other.Len() {
		return false
	}
	if om.Len() == 0 {
		return true
	}
	n1, n2 := om.head, other.head
	for n1 != nil && n2 != nil {
		if n1.key != n2.key || !reflect.DeepEqual(n1.value, n2.value) {
			return false
		}
		n1, n2 = n1.next, n2.next
	}
	return true
}

// RangeAny walks the entries in insertion order.
func (om *OrderedMap[V]) RangeAny(yield func(key string, v any) bool) {
	for k, v := range om.ItemsIter() {
		if !yield(k, v) {
			return
		}
	}
}

// SetAny stores v under key. A nil v stores the zero V.
func (om *OrderedMap[V]) SetAny(key string, v any) error {
	if v == nil {
		var zero V
		om.Set(key, zero)
		return nil
	}
	val, ok := v.(V)
	if !ok {
		return Errorf("decode", ErrTypeMismatch, fmt.Sprintf("%T is not %s", v, om.ElemType()))
	}
	om.Set(key, val)
	return nil
}

func (om *OrderedMap[V]) ElemType() reflect.Type {
	return reflect.TypeFor[V]()
}

var orderedJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// MarshalJSON encodes as JSON object in insertion order
func (om *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	stream := orderedJSON.BorrowStream(nil)
	defer orderedJSON.ReturnStream(stream)

	stream.WriteObjectStart()
	first := true
	for k, v := range om.ItemsIter() {
		if !first {
			stream.WriteMore()
		}
		first = false
		stream.WriteObjectField(k)
		stream.WriteVal(v)
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, fmt.Errorf("OrderedMap.MarshalJSON: %w", stream.Error)
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON decodes JSON object preserving order
func (om *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	*om = OrderedMap[V]{data: make(map[string]*node[V])}
	it := orderedJSON.BorrowIterator(data)
	defer orderedJSON.ReturnIterator(it)

	if it.WhatIsNext() != jsoniter.ObjectValue {
		return fmt.Errorf("OrderedMap.UnmarshalJSON: expected object: %w", ErrTypeMismatch)
	}
	it.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		var val V
		it.ReadVal(&val)
		if it.Error != nil {
			return false
		}
		om.Set(key, val)
		return true
	})
	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return fmt.Errorf("OrderedMap.UnmarshalJSON: %w: %v", ErrSyntax, it.Error)
	}
	return nil
}

// KeysIter returns an iterator over keys
func (om *OrderedMap[V]) KeysIter() iter.Seq[string] {
	return func(yield func(string) bool) {
		if om == nil {
			return
		}
		for n := om.head; n != nil; n = n.next {
			if !yield(n.key) {
				return
			}
		}
	}
}

// ValuesIter returns an iterator over values
func (om *OrderedMap[V]) ValuesIter() iter.Seq[V] {
	return func(yield func(V) bool) {
		if om == nil {
			return
		}
		for n := om.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// ItemsIter returns an iterator over key/value pairs
func (om *OrderedMap[V]) ItemsIter() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if om == nil {
			return
		}
		for n := om.head; n != nil; n = n.next {
			if !yield(n.key, n.value) {
				return
			}
		}
	}
}

// ConvertUnorderedToOrdered takes a plain map[string]any and a desired key order,
// and returns an OrderedMapAny with keys in that order.
func ConvertUnorderedToOrdered(m map[string]any, order []string) *OrderedMapAny {
	om := NewOrderedMapAny()
	for _, k := range order {
		if v, ok := m[k]; ok {
			om.Set(k, v)
		}
	}
	return om
}
