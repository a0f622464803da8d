package access

// Marshaler is implemented by types that write their own JSON.
// AppendJSON must append exactly one JSON value to b.
type Marshaler interface {
	AppendJSON(b *Buffer) error
}

// Unmarshaler is implemented by types that read themselves from a JSON value.
// The method is called on a pointer; v may be null.
type Unmarshaler interface {
	DecodeJSON(v Value) error
}
