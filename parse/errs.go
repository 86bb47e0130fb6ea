package parse

import (
	"errors"
	"fmt"

	"github.com/JohnAD/slone/token"
)

var (
	// ErrGrammar is the root of the decode-time error taxonomy. Every
	// error returned by Parse satisfies errors.Is(err, ErrGrammar).
	ErrGrammar = errors.New("grammar error")

	// ErrHeader marks a missing or malformed header or schema line.
	ErrHeader = errors.New("bad header")

	// ErrDepth marks container nesting beyond the configured maximum.
	ErrDepth = errors.New("depth exceeded")
)

// GrammarError carries the position and, when available, the offending
// token of the first point at which the input is malformed. Decoding
// never recovers or guesses: the document is rejected here.
type GrammarError struct {
	Err error
	Pos token.Pos
	Tok string
}

func (e *GrammarError) Unwrap() error {
	return e.Err
}

func (e *GrammarError) Error() string {
	if e.Tok != "" {
		return fmt.Sprintf("%v: %q at %s", e.Err, e.Tok, e.Pos)
	}
	return fmt.Sprintf("%v at %s", e.Err, e.Pos)
}

func gerrf(pos token.Pos, tok string, format string, args ...any) *GrammarError {
	args = append([]any{ErrGrammar}, args...)
	return &GrammarError{
		Err: fmt.Errorf("%w: "+format, args...),
		Pos: pos,
		Tok: tok,
	}
}
