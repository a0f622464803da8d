package structjson

import "github.com/quickwritereader/structjson/codec"

// Options configures a Codec. The zero value decodes leniently, leaves
// absent fields out, sorts map keys and does not log.
type Options struct {
	// Strict rejects documents that lack a field with no absent state.
	Strict bool
	// AbsentAsNull writes null for absent fields instead of omitting them.
	AbsentAsNull bool
	// UnsortedMapKeys writes Go maps in iteration order.
	UnsortedMapKeys bool
	// Logger receives construction and failure events. Nil disables logging.
	Logger Logger
}

func (o Options) codec() codec.Options {
	return codec.Options{
		Strict:          o.Strict,
		AbsentAsNull:    o.AbsentAsNull,
		UnsortedMapKeys: o.UnsortedMapKeys,
	}
}

func (o Options) logger() Logger {
	if o.Logger == nil {
		return NopLogger{}
	}
	return o.Logger
}
