package token

import "errors"

var (
	ErrNUL          = errors.New("NUL not permitted")
	ErrControl      = errors.New("raw control character in string")
	ErrNewline      = errors.New("raw newline in string")
	ErrUnterminated = errors.New("unterminated string")
	ErrNoNewline    = errors.New("missing terminal newline")
	ErrBlankLine    = errors.New("blank line")
	ErrStraySpace   = errors.New("stray separating space")
	ErrBadUTF8      = errors.New("bad utf8")
)
