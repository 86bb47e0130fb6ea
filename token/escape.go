package token

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// The fixed bidirectional escape table. Control characters outside the
// table escape as \0x plus two lowercase hex digits; NUL is never
// permitted in content, raw or escaped.
var escTable = map[rune]byte{
	'\t': 't',
	'\n': 'n',
	'\v': 'v',
	'\f': 'f',
	'\r': 'r',
	0x1b: 'e',
	'"':  '"',
	'\\': '\\',
}

var unescTable = map[rune]rune{
	't':  '\t',
	'n':  '\n',
	'v':  '\v',
	'f':  '\f',
	'r':  '\r',
	'e':  0x1b,
	'"':  '"',
	'\\': '\\',
}

// AppendEscaped appends the escaped form of r to dst.
func AppendEscaped(dst []byte, r rune) []byte {
	if c, ok := escTable[r]; ok {
		return append(dst, '\\', c)
	}
	if r < 0x20 {
		return append(dst, fmt.Sprintf("\\0x%02x", r)...)
	}
	return utf8.AppendRune(dst, r)
}

// EscapedRuneLen returns the length in code points of the escaped form
// of r: 1 for plain runes, 2 for table escapes, 5 for hex escapes.
func EscapedRuneLen(r rune) int {
	if _, ok := escTable[r]; ok {
		return 2
	}
	if r < 0x20 {
		return 5
	}
	return 1
}

// Escape applies the escape table to s.
func Escape(s string) string {
	d := make([]byte, 0, len(s)+2)
	for _, r := range s {
		d = AppendEscaped(d, r)
	}
	return string(d)
}

// EscapedLen returns the length of Escape(s) in code points.
func EscapedLen(s string) int {
	n := 0
	for _, r := range s {
		n += EscapedRuneLen(r)
	}
	return n
}

// Unescape reverses Escape. Escape sequences not produced by the table
// decode as a literal backslash plus the following code point, which
// keeps unknown future escapes readable. The only error is NUL, which
// is never permitted.
func Unescape(s string) (string, error) {
	b := &strings.Builder{}
	b.Grow(len(s))
	rs := []rune(s)
	n := len(rs)
	for i := 0; i < n; i++ {
		r := rs[i]
		if r == 0 {
			return "", ErrNUL
		}
		if r != '\\' || i == n-1 {
			b.WriteRune(r)
			continue
		}
		next := rs[i+1]
		if u, ok := unescTable[next]; ok {
			b.WriteRune(u)
			i++
			continue
		}
		if next == '0' && i+4 < n && rs[i+2] == 'x' && isHex(rs[i+3]) && isHex(rs[i+4]) {
			u := hexVal(rs[i+3])<<4 | hexVal(rs[i+4])
			if u == 0 {
				return "", ErrNUL
			}
			b.WriteRune(u)
			i += 4
			continue
		}
		// unknown escape passes through literally
		b.WriteRune('\\')
	}
	return b.String(), nil
}

func isHex(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

func hexVal(r rune) rune {
	switch {
	case r >= '0' && r <= '9':
		return r - '0'
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	default:
		return r - 'A' + 10
	}
}
