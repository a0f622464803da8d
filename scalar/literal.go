package scalar

import (
	"github.com/quickwritereader/structjson/types"
)

func AppendBool(dst []byte, b bool) []byte {
	if b {
		return append(dst, "true"...)
	}
	return append(dst, "false"...)
}

func AppendNull(dst []byte) []byte {
	return append(dst, "null"...)
}

// ParseBool accepts exactly true or false.
func ParseBool(raw []byte) (bool, error) {
	switch string(raw) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, types.Errorf("decode", types.ErrTypeMismatch, "expected boolean, got "+preview(raw))
}

// IsNull reports whether raw is exactly null.
func IsNull(raw []byte) bool {
	return string(raw) == "null"
}
