package token

import (
	"fmt"
)

type TokenType int

const (
	TIndent TokenType = iota
	TString
	TPunct
	TSpace
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TIndent: "TIndent",
		TString: "TString",
		TPunct:  "TPunct",
		TSpace:  "TSpace",
	}[t]
}

// Token is one lexical unit of a SLONE document. Bytes holds the raw
// source text of the token; for TString that includes the surrounding
// quotes, for TIndent it is the run of leading spaces.
type Token struct {
	Type  TokenType
	Pos   Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded value of the token: for TString the
// unescaped string content, otherwise the raw bytes.
func (t *Token) String() string {
	if t.Type != TString {
		return string(t.Bytes)
	}
	v, err := Unescape(string(t.Bytes[1 : len(t.Bytes)-1]))
	if err != nil {
		// the tokenizer rejects NUL, raw or escaped, before a
		// TString is ever built
		panic(fmt.Sprintf("internal string %q: %v", string(t.Bytes), err))
	}
	return v
}

// Indent returns the nesting level for a TIndent token.
func (t *Token) Indent() int {
	return len(t.Bytes) / 2
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (e *TokenizeErr) Unwrap() error {
	return e.Err
}

func NewTokenizeErr(err error, p Pos) *TokenizeErr {
	return &TokenizeErr{Err: err, Pos: p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnexpectedErr(what string, p Pos) error {
	return NewTokenizeErr(fmt.Errorf("unexpected %s", what), p)
}
