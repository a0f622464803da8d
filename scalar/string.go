package scalar

import (
	"encoding/base64"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"
	"unsafe"

	"github.com/quickwritereader/structjson/types"
)

const hexDigits = "0123456789abcdef"

// AppendString appends s as a quoted JSON string.
// Clean strings are copied in one piece; otherwise each clean run between
// escapes is copied whole.
func AppendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	i := IndexEscape(s)
	if i < 0 {
		dst = append(dst, s...)
		return append(dst, '"')
	}
	for i >= 0 {
		dst = append(dst, s[:i]...)
		dst = appendEscaped(dst, s[i])
		s = s[i+1:]
		i = IndexEscape(s)
	}
	dst = append(dst, s...)
	return append(dst, '"')
}

func appendEscaped(dst []byte, c byte) []byte {
	switch c {
	case '"', '\\':
		return append(dst, '\\', c)
	case '\b':
		return append(dst, '\\', 'b')
	case '\f':
		return append(dst, '\\', 'f')
	case '\n':
		return append(dst, '\\', 'n')
	case '\r':
		return append(dst, '\\', 'r')
	case '\t':
		return append(dst, '\\', 't')
	}
	return append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
}

// AppendBase64 appends b as a quoted standard base64 string.
func AppendBase64(dst []byte, b []byte) []byte {
	dst = append(dst, '"')
	dst = base64.StdEncoding.AppendEncode(dst, b)
	return append(dst, '"')
}

// DecodeString decodes a quoted JSON string token.
func DecodeString(raw []byte) (string, error) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", types.Errorf("decode", types.ErrTypeMismatch, "expected string")
	}
	body := raw[1 : len(raw)-1]
	i := IndexEscape(unsafeString(body))
	if i < 0 {
		return string(body), nil
	}
	out := make([]byte, 0, len(body))
	out, err := unescape(out, body, i)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecodeBase64 decodes a quoted standard base64 string.
func DecodeBase64(raw []byte) ([]byte, error) {
	s, err := DecodeString(raw)
	if err != nil {
		return nil, err
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, types.Errorf("decode", types.ErrTypeMismatch, "invalid base64: "+err.Error())
	}
	return b, nil
}

// unescape copies body into out, resolving escapes from offset i on.
func unescape(out, body []byte, i int) ([]byte, error) {
	out = append(out, body[:i]...)
	for i < len(body) {
		c := body[i]
		switch {
		case c == '\\':
		case c < 0x20:
			return nil, types.Errorf("decode", types.ErrInvalidEscape, "raw control byte 0x"+strconv.FormatUint(uint64(c), 16))
		case c == '"':
			return nil, types.Errorf("decode", types.ErrSyntax, "unescaped quote inside string")
		default:
			out = append(out, c)
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, types.Errorf("decode", types.ErrInvalidEscape, "truncated escape")
		}
		switch e := body[i+1]; e {
		case '"', '\\', '/':
			out = append(out, e)
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'u':
			r, n, err := decodeUnicode(body[i:])
			if err != nil {
				return nil, err
			}
			out = utf8.AppendRune(out, r)
			i += n
			continue
		default:
			return nil, types.Errorf("decode", types.ErrInvalidEscape, `unknown escape \`+string(rune(e)))
		}
		i += 2
	}
	return out, nil
}

// decodeUnicode reads \uXXXX, or a surrogate pair \uXXXX\uXXXX, from the
// start of b and returns the rune with the number of bytes consumed.
func decodeUnicode(b []byte) (rune, int, error) {
	r1, err := hex4(b)
	if err != nil {
		return 0, 0, err
	}
	if !utf16.IsSurrogate(r1) {
		return r1, 6, nil
	}
	if r1 >= 0xDC00 {
		return 0, 0, types.Errorf("decode", types.ErrInvalidUnicode, "unpaired low surrogate")
	}
	if len(b) < 12 || b[6] != '\\' || b[7] != 'u' {
		return 0, 0, types.Errorf("decode", types.ErrInvalidUnicode, "unpaired high surrogate")
	}
	r2, err := hex4(b[6:])
	if err != nil {
		return 0, 0, err
	}
	r := utf16.DecodeRune(r1, r2)
	if r == utf8.RuneError {
		return 0, 0, types.Errorf("decode", types.ErrInvalidUnicode, "invalid surrogate pair")
	}
	return r, 12, nil
}

func hex4(b []byte) (rune, error) {
	if len(b) < 6 {
		return 0, types.Errorf("decode", types.ErrInvalidEscape, `truncated \u escape`)
	}
	var r rune
	for _, c := range b[2:6] {
		var d byte
		switch {
		case c >= '0' && c <= '9':
			d = c - '0'
		case c >= 'a' && c <= 'f':
			d = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			d = c - 'A' + 10
		default:
			return 0, types.Errorf("decode", types.ErrInvalidEscape, `non-hex digit in \u escape`)
		}
		r = r<<4 | rune(d)
	}
	return r, nil
}

func unsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
