package access

import (
	"bytes"
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/quickwritereader/structjson/scalar"
	"github.com/quickwritereader/structjson/types"
)

var (
	litNull  = []byte("null")
	litTrue  = []byte("true")
	litFalse = []byte("false")
)

func syntaxError(detail string) error {
	return types.Errorf("decode", types.ErrSyntax, detail)
}

// checkTokens walks every token outside of structure: literals must be
// spelled out in full and strings holding escapes or control bytes must
// decode. String failures keep their own sentinel.
func checkTokens(data []byte) error {
	for i := 0; i < len(data); {
		switch c := data[i]; c {
		case '"':
			end, escaped := stringEnd(data, i)
			if end < 0 {
				return syntaxError("unterminated string")
			}
			if escaped {
				if _, err := scalar.DecodeString(data[i : end+1]); err != nil {
					return err
				}
			}
			i = end + 1
		case 't', 'f', 'n':
			lit := litNull
			if c == 't' {
				lit = litTrue
			} else if c == 'f' {
				lit = litFalse
			}
			next := i + len(lit)
			if !bytes.HasPrefix(data[i:], lit) || (next < len(data) && !isDelimiter(data[next])) {
				return syntaxError("invalid literal")
			}
			i = next
		default:
			i++
		}
	}
	return nil
}

// stringEnd returns the offset of the quote closing the string that opens
// at start, or -1. escaped reports a backslash or a raw control byte.
func stringEnd(data []byte, start int) (end int, escaped bool) {
	for j := start + 1; j < len(data); j++ {
		switch c := data[j]; {
		case c == '"':
			return j, escaped
		case c == '\\':
			escaped = true
			j++
		case c < 0x20:
			escaped = true
		}
	}
	return -1, escaped
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ',', ']', '}', ':':
		return true
	}
	return false
}

func skipSpace(data []byte, i int) int {
	for i < len(data) {
		switch data[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// skipValue measures the value at the start of data, which must not begin
// with whitespace.
func skipValue(it *jsoniter.Iterator, data []byte) (int, error) {
	it.ResetBytes(data)
	it.Error = nil
	n := len(it.SkipAndReturnBytes())
	if it.Error != nil && !errors.Is(it.Error, io.EOF) {
		return 0, syntaxError(it.Error.Error())
	}
	if n == 0 {
		return 0, syntaxError("missing value")
	}
	return n, nil
}
