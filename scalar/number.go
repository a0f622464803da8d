package scalar

import (
	"math"
	"math/bits"
	"strconv"

	"github.com/quickwritereader/structjson/types"
)

const digitPairs = "00010203040506070809101112131415161718192021222324252627282930313233343536373839404142434445464748495051525354555657585960616263646566676869707172737475767778798081828384858687888990919293949596979899"

var pow10 = [...]uint64{
	1, 10, 100, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// DigitCount returns the number of decimal digits of u (1 for zero).
func DigitCount(u uint64) int {
	// 1233/4096 ~ log10(2)
	v := u | 1
	t := (bits.Len64(v) * 1233) >> 12
	if v < pow10[t] {
		return t
	}
	return t + 1
}

// PutUint writes u into dst back to front, two digits per step.
// len(dst) must equal DigitCount(u).
func PutUint(dst []byte, u uint64) {
	i := len(dst)
	for u >= 100 {
		q := u / 100
		r := (u - q*100) * 2
		i -= 2
		dst[i], dst[i+1] = digitPairs[r], digitPairs[r+1]
		u = q
	}
	if u >= 10 {
		r := u * 2
		dst[i-2], dst[i-1] = digitPairs[r], digitPairs[r+1]
		return
	}
	dst[i-1] = byte('0' + u)
}

// AppendUint extends dst by exactly the digit count of u and fills it in.
func AppendUint(dst []byte, u uint64) []byte {
	n := DigitCount(u)
	l := len(dst)
	dst = append(dst, make([]byte, n)...)
	PutUint(dst[l:], u)
	return dst
}

// AppendInt appends v in decimal. math.MinInt64 is handled through its
// unsigned magnitude.
func AppendInt(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		return AppendUint(dst, -uint64(v))
	}
	return AppendUint(dst, uint64(v))
}

// AppendFloat appends f in the shortest form that round-trips at bitSize.
// Magnitudes in [1e-6, 1e21) use plain decimal notation, the rest use an
// exponent without a padded leading zero.
func AppendFloat(dst []byte, f float64, bitSize int) ([]byte, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return dst, types.Errorf("encode", types.ErrNonFiniteNumber, strconv.FormatFloat(f, 'g', -1, bitSize))
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 {
		if bitSize == 64 && (abs < 1e-6 || abs >= 1e21) ||
			bitSize == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	dst = strconv.AppendFloat(dst, f, format, -1, bitSize)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(dst)
		if n >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	return dst, nil
}

// IsNumber reports whether raw is exactly one JSON number literal.
func IsNumber(raw []byte) bool {
	i := 0
	if i < len(raw) && raw[i] == '-' {
		i++
	}
	switch {
	case i < len(raw) && raw[i] == '0':
		i++
	case i < len(raw) && raw[i] >= '1' && raw[i] <= '9':
		i = skipDigits(raw, i+1)
	default:
		return false
	}
	if i < len(raw) && raw[i] == '.' {
		j := skipDigits(raw, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}
	if i < len(raw) && (raw[i] == 'e' || raw[i] == 'E') {
		i++
		if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
			i++
		}
		j := skipDigits(raw, i)
		if j == i {
			return false
		}
		i = j
	}
	return i == len(raw)
}

func skipDigits(raw []byte, i int) int {
	for i < len(raw) && raw[i] >= '0' && raw[i] <= '9' {
		i++
	}
	return i
}

func isInteger(raw []byte) bool {
	if !IsNumber(raw) {
		return false
	}
	for _, c := range raw {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

// ParseInt decodes a JSON integer literal that fits in bitSize bits.
// Fractions, exponents and overflow are type mismatches.
func ParseInt(raw []byte, bitSize int) (int64, error) {
	if !isInteger(raw) {
		return 0, types.Errorf("decode", types.ErrTypeMismatch, "expected integer, got "+preview(raw))
	}
	v, err := strconv.ParseInt(unsafeString(raw), 10, bitSize)
	if err != nil {
		return 0, types.Errorf("decode", types.ErrTypeMismatch, preview(raw)+" overflows int"+strconv.Itoa(bitSize))
	}
	return v, nil
}

// ParseUint decodes a non-negative JSON integer literal that fits in bitSize bits.
func ParseUint(raw []byte, bitSize int) (uint64, error) {
	if !isInteger(raw) || raw[0] == '-' {
		return 0, types.Errorf("decode", types.ErrTypeMismatch, "expected unsigned integer, got "+preview(raw))
	}
	v, err := strconv.ParseUint(unsafeString(raw), 10, bitSize)
	if err != nil {
		return 0, types.Errorf("decode", types.ErrTypeMismatch, preview(raw)+" overflows uint"+strconv.Itoa(bitSize))
	}
	return v, nil
}

// ParseFloat decodes any JSON number literal.
func ParseFloat(raw []byte, bitSize int) (float64, error) {
	if !IsNumber(raw) {
		return 0, types.Errorf("decode", types.ErrTypeMismatch, "expected number, got "+preview(raw))
	}
	v, err := strconv.ParseFloat(unsafeString(raw), bitSize)
	if err != nil {
		return 0, types.Errorf("decode", types.ErrTypeMismatch, preview(raw)+" out of float"+strconv.Itoa(bitSize)+" range")
	}
	return v, nil
}

func preview(raw []byte) string {
	const limit = 32
	if len(raw) > limit {
		return string(raw[:limit]) + "..."
	}
	return string(raw)
}
