package token

import (
	"fmt"
	"unicode/utf8"
)

type tkState int

const (
	sDocStart tkState = iota
	sIndent
	sString
	sSpace
	sPunct
)

func (s tkState) String() string {
	return map[tkState]string{
		sDocStart: "DocStart",
		sIndent:   "Indent",
		sString:   "String",
		sSpace:    "Space",
		sPunct:    "Punct",
	}[s]
}

// Tokenizer converts a SLONE document body into tokens one code point
// at a time. It keeps no lookahead beyond the current code point plus
// the pending-escape flag, per the format's lexical rules: a token is
// emitted only when the state machine transitions to a new token kind.
type Tokenizer struct {
	st    tkState
	buf   []byte // raw bytes of the token under construction
	start Pos    // position of the token under construction
	pos   Pos    // position of the next code point

	esc   bool // inside a string, a backslash is pending
	atEnd bool // inside a string, the closing quote has been seen

	hexScan int  // progress through a possible \0xNN escape
	hexHi   rune // first hex digit of that escape

	done bool
}

// NewTokenizer returns a Tokenizer positioned at the given start line
// (the document body usually begins after the header line).
func NewTokenizer(startLine int) *Tokenizer {
	return &Tokenizer{
		st:  sDocStart,
		pos: Pos{Line: startLine},
	}
}

// take finishes the token under construction and begins a new one of
// the given state at the current position.
func (t *Tokenizer) take(next tkState) *Token {
	var tok *Token
	switch t.st {
	case sDocStart:
		// initial placeholder, never emitted
	case sIndent:
		tok = &Token{Type: TIndent, Pos: t.start, Bytes: t.buf}
	case sString:
		tok = &Token{Type: TString, Pos: t.start, Bytes: t.buf}
	case sSpace:
		tok = &Token{Type: TSpace, Pos: t.start, Bytes: t.buf}
	case sPunct:
		tok = &Token{Type: TPunct, Pos: t.start, Bytes: t.buf}
	}
	t.st = next
	t.buf = nil
	t.start = t.pos
	t.esc = false
	t.atEnd = false
	t.hexScan = 0
	return tok
}

// Pos reports the position of the next code point.
func (t *Tokenizer) Pos() Pos {
	return t.pos
}

// Feed advances the state machine by one code point and returns the
// token completed by the transition, if any.
func (t *Tokenizer) Feed(r rune) (*Token, error) {
	if t.done {
		return nil, NewTokenizeErr(fmt.Errorf("input after end"), t.pos)
	}
	if r == 0 {
		return nil, NewTokenizeErr(ErrNUL, t.pos)
	}

	tok, err := t.feed(r)
	if err != nil {
		return nil, err
	}
	if r == '\n' {
		t.pos.Line++
		t.pos.Col = 0
	} else {
		t.pos.Col++
	}
	return tok, nil
}

func (t *Tokenizer) feed(r rune) (*Token, error) {
	if t.st == sString && !t.atEnd {
		return nil, t.feedString(r)
	}

	switch r {
	case '\n':
		switch t.st {
		case sDocStart:
			return nil, UnexpectedErr("empty line", t.pos)
		case sIndent:
			return nil, NewTokenizeErr(ErrBlankLine, t.start)
		case sSpace:
			return nil, NewTokenizeErr(ErrStraySpace, t.start)
		}
		tok := t.take(sIndent)
		t.start = Pos{Line: t.pos.Line + 1}
		return tok, nil

	case ' ':
		switch t.st {
		case sDocStart:
			t.st = sIndent
			t.buf = append(t.buf, ' ')
			return nil, nil
		case sIndent:
			t.buf = append(t.buf, ' ')
			return nil, nil
		case sSpace:
			// the format allows exactly one separating space
			return nil, NewTokenizeErr(ErrStraySpace, t.start)
		}
		return t.take(sSpace), nil

	case '"':
		tok := t.take(sString)
		t.buf = append(t.buf, '"')
		return tok, nil
	}

	if IsPunct(r) {
		if t.st == sPunct {
			t.buf = utf8.AppendRune(t.buf, r)
			return nil, nil
		}
		tok := t.take(sPunct)
		t.buf = utf8.AppendRune(t.buf, r)
		return tok, nil
	}

	return nil, UnexpectedErr(fmt.Sprintf("%q", r), t.pos)
}

func (t *Tokenizer) feedString(r rune) error {
	switch {
	case r == '\n':
		return NewTokenizeErr(ErrNewline, t.pos)
	case r < 0x20:
		return NewTokenizeErr(ErrControl, t.pos)
	}
	if t.esc {
		t.esc = false
		if r == '0' {
			t.hexScan = 1
		}
		t.buf = utf8.AppendRune(t.buf, r)
		return nil
	}
	// Escaped code points are rejected here rather than at unescape
	// time, so the error carries a position. Only the exact spelling
	// \0x00 encodes NUL; any deviation abandons the scan.
	switch t.hexScan {
	case 1:
		t.hexScan = 0
		if r == 'x' {
			t.hexScan = 2
		}
	case 2:
		t.hexScan = 0
		if isHex(r) {
			t.hexHi, t.hexScan = r, 3
		}
	case 3:
		t.hexScan = 0
		if isHex(r) && hexVal(t.hexHi)<<4|hexVal(r) == 0 {
			return NewTokenizeErr(ErrNUL, t.pos)
		}
	}
	switch r {
	case '\\':
		t.esc = true
		t.buf = append(t.buf, '\\')
	case '"':
		t.atEnd = true
		t.buf = append(t.buf, '"')
	default:
		t.buf = utf8.AppendRune(t.buf, r)
	}
	return nil
}

// Finish flushes the state machine at end of input. A well-formed
// document ends with a newline, so the only legal end states are the
// initial one and an empty indent following the terminal newline.
func (t *Tokenizer) Finish() (*Token, error) {
	if t.done {
		return nil, nil
	}
	t.done = true
	switch t.st {
	case sDocStart:
		return nil, nil
	case sIndent:
		if len(t.buf) == 0 {
			return nil, nil
		}
		return nil, NewTokenizeErr(fmt.Errorf("%w: trailing spaces", ErrNoNewline), t.start)
	case sString:
		if !t.atEnd {
			return nil, NewTokenizeErr(ErrUnterminated, t.start)
		}
		return nil, NewTokenizeErr(ErrNoNewline, t.pos)
	default:
		return nil, NewTokenizeErr(ErrNoNewline, t.pos)
	}
}
