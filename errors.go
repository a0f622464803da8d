package structjson

import "github.com/quickwritereader/structjson/types"

var (
	ErrTypeMismatch    = types.ErrTypeMismatch
	ErrMissingField    = types.ErrMissingField
	ErrInvalidEscape   = types.ErrInvalidEscape
	ErrInvalidUnicode  = types.ErrInvalidUnicode
	ErrNonFiniteNumber = types.ErrNonFiniteNumber
	ErrNotFound        = types.ErrNotFound
	ErrSyntax          = types.ErrSyntax
	ErrUnsupportedType = types.ErrUnsupportedType
)

// Error carries the operation and value path of a failure.
type Error = types.Error
