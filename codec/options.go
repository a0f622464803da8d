package codec

// Options tune a single encode or decode call. The zero value is lenient
// decoding, omitted absent fields and sorted map keys.
type Options struct {
	// Strict makes decoding fail with ErrMissingField when a field that has
	// no absent state (and is not omitempty) is missing from the input.
	Strict bool
	// AbsentAsNull writes null for absent optional fields instead of
	// leaving them out. omitempty fields are still left out.
	AbsentAsNull bool
	// UnsortedMapKeys writes Go map entries in iteration order.
	UnsortedMapKeys bool
}
