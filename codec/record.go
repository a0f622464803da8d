package codec

import (
	"reflect"

	"github.com/quickwritereader/structjson/access"
	"github.com/quickwritereader/structjson/schema"
	"github.com/quickwritereader/structjson/types"
)

func recordFuncs(t reflect.Type) (encodeFunc, decodeFunc) {
	s, err := schema.SchemaOf(t)
	if err != nil {
		return unsupportedFuncs(t)
	}
	fields := make([]*plan, len(s.Fields))
	for i := range s.Fields {
		fields[i] = planFor(s.Fields[i].Type)
	}

	enc := func(e *encodeState, v reflect.Value) error {
		e.buf.AddByte('{')
		first := true
		for i := range s.Fields {
			f := &s.Fields[i]
			fp := fields[i]
			fv := f.Value(v)
			if f.OmitEmpty && fp.empty(fv) {
				continue
			}
			if fp.absent != nil && fp.absent(fv) {
				if !e.opts.AbsentAsNull {
					continue
				}
				if !first {
					e.buf.AddByte(',')
				}
				first = false
				e.buf.AddRawString(f.Literal())
				e.buf.AddNull()
				continue
			}
			if !first {
				e.buf.AddByte(',')
			}
			first = false
			e.buf.AddRawString(f.Literal())
			if err := fp.encode(e, fv); err != nil {
				return types.WithField("encode", err, f.Name)
			}
		}
		e.buf.AddByte('}')
		return nil
	}

	dec := func(d *decodeState, val access.Value, v reflect.Value) error {
		if val.Kind() != access.KindObject {
			return mismatch(access.KindObject, val)
		}
		var seen []bool
		if d.opts.Strict {
			seen = make([]bool, len(s.Fields))
		}
		err := val.EachMember(func(key string, mv access.Value) error {
			f, ok := s.Lookup(key)
			if !ok {
				return nil
			}
			if err := fields[f.Ordinal].decode(d, mv, f.Field(v)); err != nil {
				return types.WithField("decode", err, f.Name)
			}
			if seen != nil {
				seen[f.Ordinal] = true
			}
			return nil
		})
		if err != nil || seen == nil {
			return err
		}
		for i := range s.Fields {
			if !seen[i] && !s.Fields[i].Optional() {
				return types.WithField("decode", types.Errorf("decode", types.ErrMissingField, ""), s.Fields[i].Name)
			}
		}
		return nil
	}
	return enc, dec
}
