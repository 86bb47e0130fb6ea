package encode

import (
	"strings"

	"github.com/JohnAD/slone/token"
)

// MaxSegment is the longest a quoted segment may run, measured in code
// points of the escaped text.
const MaxSegment = 128

type strForm int

const (
	straightForm strForm = iota
	passageForm
	packedForm
)

// chooseForm picks the canonical rendering for s. Passage wins when the
// text is genuinely line-structured: at least one newline, no other
// control characters, and no single line too long to quote. Otherwise
// short strings stay straight and everything else is packed.
func chooseForm(s string) strForm {
	if passageOK(s) {
		return passageForm
	}
	if token.EscapedLen(s) <= MaxSegment {
		return straightForm
	}
	return packedForm
}

func passageOK(s string) bool {
	if !strings.ContainsRune(s, '\n') {
		return false
	}
	for _, ln := range strings.Split(s, "\n") {
		if token.EscapedLen(ln) > MaxSegment {
			return false
		}
		for _, r := range ln {
			if r < 0x20 {
				return false
			}
		}
	}
	return true
}

// passageSegments is the line split of a passage body. The separators
// are reconstituted on parse, so the segments carry no newlines.
func passageSegments(s string) []string {
	return strings.Split(s, "\n")
}

// packedSegments chops the escaped text of s into runs of at most
// MaxSegment code points. Splits land on rune boundaries of the source
// text, so an escape sequence is never cut in half.
func packedSegments(s string) []string {
	var segs []string
	var seg []byte
	n := 0
	for _, r := range s {
		el := token.EscapedRuneLen(r)
		if n+el > MaxSegment {
			segs = append(segs, string(seg))
			seg = seg[:0]
			n = 0
		}
		seg = token.AppendEscaped(seg, r)
		n += el
	}
	segs = append(segs, string(seg))
	return segs
}

func quote(s string) string {
	return `"` + token.Escape(s) + `"`
}

// quoteSeg quotes an already-escaped segment.
func quoteSeg(s string) string {
	return `"` + s + `"`
}
