package object

import (
	"fmt"
	"strings"
	"unicode"
)

// HexBytes formats bytes as space-separated hex pairs: "12 34 56 78".
func HexBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(b)*3 - 1)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}

// Hex32 formats a 32-bit value as its four big-endian bytes: "12 34 56 78".
func Hex32(v uint32) string {
	return HexBytes([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

// HexDump renders data as classic 16-bytes-per-row hex with an ASCII gutter,
// capped at maxBytes (0 means no cap).
func HexDump(data []byte, maxBytes int) []string {
	total := len(data)
	if maxBytes > 0 && len(data) > maxBytes {
		data = data[:maxBytes]
	}
	var lines []string
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		hexCol := HexBytes(row)
		var ascii strings.Builder
		for _, c := range row {
			if c < 0x80 && unicode.IsPrint(rune(c)) {
				ascii.WriteByte(c)
			} else {
				ascii.WriteByte('.')
			}
		}
		lines = append(lines, fmt.Sprintf("%08x  %-47s  %s", off, hexCol, ascii.String()))
	}
	if total > len(data) {
		lines = append(lines, fmt.Sprintf("... (%d more bytes)", total-len(data)))
	}
	return lines
}

// IsBinary reports whether data looks like binary content: a NUL byte in the
// first 8000 bytes, same heuristic Git uses.
func IsBinary(data []byte) bool {
	probe := data
	if len(probe) > 8000 {
		probe = probe[:8000]
	}
	for _, c := range probe {
		if c == 0 {
			return true
		}
	}
	return false
}
