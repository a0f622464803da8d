package scalar

import (
	"encoding/binary"
	"math/bits"
	"os"
	"strings"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// ScannerEnv forces the escape scanner: "portable" or "wide".
const ScannerEnv = "STRUCTJSON_SCANNER"

const (
	ScannerPortable = "portable"
	ScannerWide     = "wide"
)

// Strategy is one escape-scanning implementation.
// Index returns the offset of the first byte of s that must be escaped
// inside a JSON string, or -1.
type Strategy struct {
	Name  string
	Index func(s string) int
}

var (
	portable = Strategy{Name: ScannerPortable, Index: indexEscapePortable}
	wide     = Strategy{Name: ScannerWide, Index: indexEscapeWide}
	selected = detect(os.Getenv(ScannerEnv))
)

// Scanner reports the strategy chosen at init.
func Scanner() Strategy { return selected }

// IndexEscape returns the offset of the first byte of s that needs escaping:
// '"', '\\' or a control byte below 0x20. It returns -1 when s is clean.
// Bytes >= 0x80 never need escaping.
func IndexEscape(s string) int {
	return selected.Index(s)
}

func detect(force string) Strategy {
	switch strings.ToLower(strings.TrimSpace(force)) {
	case ScannerPortable:
		return portable
	case ScannerWide:
		return wide
	}
	if bits.UintSize < 64 {
		return portable
	}
	// The wide scanner does unaligned 8-byte loads; only take it on CPU
	// families where those are cheap.
	if cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD || cpu.PPC64.IsPOWER8 || cpu.S390X.HasZARCH {
		return wide
	}
	return portable
}

// Features lists the CPU flags detection looked at.
func Features() []string {
	var f []string
	add := func(ok bool, name string) {
		if ok {
			f = append(f, name)
		}
	}
	add(cpu.X86.HasSSE2, "sse2")
	add(cpu.X86.HasSSE42, "sse4.2")
	add(cpu.X86.HasAVX2, "avx2")
	add(cpu.X86.HasAVX512BW, "avx512bw")
	add(cpu.ARM64.HasASIMD, "asimd")
	add(cpu.PPC64.IsPOWER8, "power8")
	add(cpu.S390X.HasZARCH, "zarch")
	return f
}

func needsEscape(c byte) bool {
	return c < 0x20 || c == '"' || c == '\\'
}

func indexEscapePortable(s string) int {
	for i := 0; i < len(s); i++ {
		if needsEscape(s[i]) {
			return i
		}
	}
	return -1
}

const (
	lsb   = 0x0101010101010101
	msb   = 0x8080808080808080
	quote = lsb * '"'
	slash = lsb * '\\'
	space = lsb * 0x20
)

// escapeMask flags every byte of w that needs escaping. Bits above the
// lowest flagged byte may be spurious (borrow propagation), so callers only
// trust the lowest set bit.
func escapeMask(w uint64) uint64 {
	ctl := (w - space) & ^w & msb
	q := w ^ quote
	q = (q - lsb) & ^q & msb
	b := w ^ slash
	b = (b - lsb) & ^b & msb
	return ctl | q | b
}

func indexEscapeWide(s string) int {
	if len(s) == 0 {
		return -1
	}
	p := unsafe.Slice(unsafe.StringData(s), len(s))
	i := 0
	for ; i+8 <= len(p); i += 8 {
		if m := escapeMask(binary.LittleEndian.Uint64(p[i:])); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
	}
	for ; i < len(p); i++ {
		if needsEscape(p[i]) {
			return i
		}
	}
	return -1
}
