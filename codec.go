package structjson

import (
	"reflect"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/codec"
	"github.com/quickwritereader/structjson/scalar"
	"github.com/quickwritereader/structjson/schema"
	"github.com/quickwritereader/structjson/types"
)

// Codec encodes and decodes values of one type with fixed options.
// It is safe for concurrent use.
type Codec[T any] struct {
	opts Options
	co   codec.Options
	log  Logger
}

// New validates T and compiles its plans up front, so a type that cannot be
// encoded fails here instead of on first use.
func New[T any](opts Options) (*Codec[T], error) {
	log := opts.logger()
	typ := reflect.TypeFor[T]()
	if err := codec.Compile(typ); err != nil {
		log.Error("structjson.codec_rejected", Fields{"type": typ.String(), "err": err.Error()})
		return nil, err
	}
	f := Fields{
		"type":    typ.String(),
		"shape":   schema.ShapeOf(typ).String(),
		"scanner": scalar.Scanner().Name,
	}
	if s, err := schema.SchemaOf(typ); err == nil {
		f["fields"] = s.Len()
	}
	log.Debug("structjson.codec_ready", f)
	return &Codec[T]{opts: opts, co: opts.codec(), log: log}, nil
}

// Must is like New but panics on error. Handy for package-level codecs.
func Must[T any](opts Options) *Codec[T] {
	c, err := New[T](opts)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec[T]) Encode(v T) ([]byte, error) {
	b, err := codec.Encode(v, c.co)
	if err != nil {
		c.log.Warn("structjson.encode_failed", Fields{"type": reflect.TypeFor[T]().String(), "err": err.Error()})
		return nil, err
	}
	return b, nil
}

func (c *Codec[T]) Decode(data []byte) (T, error) {
	var v T
	if err := codec.Decode(data, &v, c.co); err != nil {
		c.log.Warn("structjson.decode_failed", Fields{"type": reflect.TypeFor[T]().String(), "bytes": len(data), "err": err.Error()})
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeValue decodes a value already located inside a parsed document.
func (c *Codec[T]) DecodeValue(val access.Value) (T, error) {
	var v T
	if err := codec.DecodeValue(val, &v, c.co); err != nil {
		c.log.Warn("structjson.decode_failed", Fields{"type": reflect.TypeFor[T]().String(), "bytes": len(val.Raw()), "err": err.Error()})
		var zero T
		return zero, err
	}
	return v, nil
}

// DecodeInto decodes into an existing value, keeping fields the document
// does not mention.
func (c *Codec[T]) DecodeInto(data []byte, v *T) error {
	return codec.Decode(data, v, c.co)
}

func (c *Codec[T]) Options() Options { return c.opts }

// Register compiles the schema and plans of T ahead of the first call.
func Register[T any]() error {
	return codec.Compile(reflect.TypeFor[T]())
}

// SchemaOf returns the cached record schema of the struct type T.
func SchemaOf[T any]() (*schema.RecordSchema, error) {
	return schema.For[T]()
}

// ShapeOf reports how T maps onto JSON.
func ShapeOf[T any]() types.Shape {
	return schema.ShapeOf(reflect.TypeFor[T]())
}
