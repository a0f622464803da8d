package packable

import (
	"github.com/quickwritereader/structjson/access"
)

// Raw is an already encoded JSON value. It is copied verbatim on encode,
// and on decode it receives the member's text without further parsing.
// An empty Raw encodes as null.
type Raw []byte

func (r Raw) AppendJSON(b *access.Buffer) error {
	if len(r) == 0 {
		b.AddNull()
		return nil
	}
	v, err := access.Parse(r)
	if err != nil {
		return err
	}
	b.AddRaw(v.Raw())
	return nil
}

func (r *Raw) DecodeJSON(v access.Value) error {
	*r = append((*r)[:0], v.Raw()...)
	return nil
}

// Value parses r into a navigable view.
func (r Raw) Value() (access.Value, error) {
	return access.Parse(r)
}
