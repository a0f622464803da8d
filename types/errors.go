package types

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrMissingField    = errors.New("missing field")
	ErrInvalidEscape   = errors.New("invalid escape sequence")
	ErrInvalidUnicode  = errors.New("invalid unicode escape")
	ErrNonFiniteNumber = errors.New("non-finite number")
	ErrNotFound        = errors.New("not found")
	ErrSyntax          = errors.New("invalid JSON syntax")
	ErrUnsupportedType = errors.New("unsupported type")
)

// Error locates a failure inside the value being encoded or decoded.
// Path is built innermost-first as the error bubbles up, e.g. "stats.hp" or "inventory[1]".
type Error struct {
	Op     string // "encode" or "decode"
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Op)
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(e.Path)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf returns a located error for a sentinel with an optional detail.
func Errorf(op string, sentinel error, detail string) *Error {
	return &Error{Op: op, Err: sentinel, Detail: detail}
}

// WithField prefixes the path of err with a field name.
// Errors that are not *Error are wrapped first.
func WithField(op string, err error, name string) error {
	e := asError(op, err)
	if e.Path == "" || e.Path[0] == '[' {
		e.Path = name + e.Path
	} else {
		e.Path = name + "." + e.Path
	}
	return e
}

// WithIndex prefixes the path of err with a sequence index.
func WithIndex(op string, err error, index int) error {
	e := asError(op, err)
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(strconv.Itoa(index))
	sb.WriteByte(']')
	if e.Path != "" && e.Path[0] != '[' {
		sb.WriteByte('.')
	}
	sb.WriteString(e.Path)
	e.Path = sb.String()
	return e
}

// WithKey prefixes the path of err with an object key.
func WithKey(op string, err error, key string) error {
	e := asError(op, err)
	prefix := "[" + quoteKey(key) + "]"
	if e.Path != "" && e.Path[0] != '[' {
		prefix += "."
	}
	e.Path = prefix + e.Path
	return e
}

// asError returns a copy of the *Error in err's chain, so prefixing a path
// never changes an error value someone else may hold on to.
func asError(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		c := *e
		return &c
	}
	return &Error{Op: op, Err: err}
}

func quoteKey(k string) string {
	return `"` + strings.ReplaceAll(k, `"`, `\"`) + `"`
}
