// Package parse provides SLONE document parsing support.
//
// Parse is fail-fast and non-partial: either the whole document decodes
// to a tree or a GrammarError pointing at the first offending token is
// returned.
package parse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/JohnAD/slone/debug"
	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/token"
)

func Parse(d []byte, opts ...ParseOption) (*ir.Tree, error) {
	pOpts := &parseOpts{maxDepth: DefaultMaxDepth}
	for _, f := range opts {
		f(pOpts)
	}
	root := ir.NewTree()
	body, startLine, err := readHeader(d, root)
	if err != nil {
		return nil, err
	}
	toks, err := token.Tokenize(body, token.StartLine(startLine))
	if err != nil {
		var te *token.TokenizeErr
		if errors.As(err, &te) {
			return nil, &GrammarError{
				Err: fmt.Errorf("%w: %w", ErrGrammar, te.Err),
				Pos: te.Pos,
			}
		}
		return nil, err
	}
	if debug.Tokens() {
		for i := range toks {
			debug.Logf("tok %v %s %q\n", toks[i].Type, toks[i].Pos, toks[i].Bytes)
		}
	}
	b := &builder{
		opts:        pOpts,
		stack:       []*frame{{mode: modeObject, tree: root}},
		atLineStart: true,
	}
	if err := b.run(toks); err != nil {
		return nil, err
	}
	return root, nil
}

// readHeader strips and validates the fixed header line and the
// optional schema-reference line, returning the document body and the
// zero-based line number at which it begins.
func readHeader(d []byte, root *ir.Tree) ([]byte, int, error) {
	i := bytes.IndexByte(d, '\n')
	if i < 0 || string(d[:i]) != token.Header {
		return nil, 0, gerrf(token.Pos{}, "", "%w: first line must be %q", ErrHeader, token.Header)
	}
	body := d[i+1:]
	line := 1
	if bytes.HasPrefix(body, []byte(token.SchemaMarker)) {
		j := bytes.IndexByte(body, '\n')
		if j < 0 {
			return nil, 0, gerrf(token.Pos{Line: line}, "", "%w: unterminated schema line", ErrHeader)
		}
		ln := body[:j]
		if len(ln) < 3 || ln[2] != ' ' {
			return nil, 0, gerrf(token.Pos{Line: line}, string(ln), "%w: schema marker must be followed by a space", ErrHeader)
		}
		ref := string(ln[3:])
		if strings.ContainsRune(ref, 0) {
			return nil, 0, gerrf(token.Pos{Line: line}, "", "%w: %w in schema line", ErrHeader, token.ErrNUL)
		}
		root.SetSchemaRef(ref)
		body = body[j+1:]
		line = 2
	}
	return body, line, nil
}

type mode int

const (
	modeObject mode = iota
	modeList
	modePassage
	modePacked
)

func (m mode) String() string {
	return map[mode]string{
		modeObject:  "object",
		modeList:    "list",
		modePassage: "passage",
		modePacked:  "packed",
	}[m]
}

type entryState int

const (
	awaitName entryState = iota
	awaitAssign
	awaitValue
	awaitLineEnd
)

// frame is one open container on the builder stack: the document root,
// a nested object or list, or a passage/packed string being collected.
type frame struct {
	mode mode
	tree *ir.Tree // object/list only

	es         entryState
	cur        *ir.Entry
	started    bool
	pending    *string // straight string awaiting type-vs-value resolution
	pendingPos token.Pos

	frags      []string // passage/packed fragments
	fragOnLine bool
	nameTarget bool // the collected string is an entry name, not a value
}

type builder struct {
	opts  *parseOpts
	stack []*frame

	curIndent   int
	atLineStart bool
	needNL      bool
	lastPos     token.Pos
}

func (b *builder) top() *frame {
	return b.stack[len(b.stack)-1]
}

func (b *builder) run(toks []token.Token) error {
	for i := range toks {
		tok := &toks[i]
		b.lastPos = tok.Pos
		if tok.Type == token.TIndent {
			if err := b.endLine(tok.Pos); err != nil {
				return err
			}
			if len(tok.Bytes)%2 != 0 {
				return gerrf(tok.Pos, "", "odd indent of %d spaces", len(tok.Bytes))
			}
			b.curIndent = len(tok.Bytes) / 2
			b.atLineStart = true
			b.needNL = false
			continue
		}
		if b.needNL {
			return gerrf(tok.Pos, string(tok.Bytes), "expected end of line")
		}
		lineStart := b.atLineStart
		if lineStart {
			if err := b.checkIndent(tok); err != nil {
				return err
			}
			b.atLineStart = false
		}
		if err := b.feed(tok, lineStart); err != nil {
			return err
		}
	}
	if err := b.endLine(b.lastPos); err != nil {
		return err
	}
	if len(b.stack) > 1 {
		return gerrf(b.lastPos, "", "unterminated %s container", b.top().mode)
	}
	return nil
}

// endLine resolves the entry in progress when a line ends: a pending
// straight string becomes the entry value; an entry cut off before its
// value is a grammar error.
func (b *builder) endLine(pos token.Pos) error {
	f := b.top()
	switch f.mode {
	case modePassage, modePacked:
		f.fragOnLine = false
		return nil
	}
	switch f.es {
	case awaitName:
	case awaitAssign:
		return gerrf(pos, "", "incomplete entry: expected %q", token.PunctAssign)
	case awaitValue:
		if f.pending != nil {
			if err := f.cur.SetString(*f.pending); err != nil {
				return b.contractErr(err, f.pendingPos)
			}
			f.pending = nil
			if err := b.appendCur(f, pos); err != nil {
				return err
			}
		} else if f.started {
			return gerrf(pos, "", "missing value")
		}
	case awaitLineEnd:
	}
	f.es = awaitName
	if f.mode == modeList {
		f.es = awaitValue
	}
	f.cur = nil
	f.pending = nil
	f.started = false
	return nil
}

func (b *builder) checkIndent(tok *token.Token) error {
	want := len(b.stack) - 1
	if b.isCloser(tok) {
		want--
	}
	if b.curIndent != want {
		return gerrf(tok.Pos, string(tok.Bytes), "indent %d, want %d", b.curIndent, want)
	}
	return nil
}

func (b *builder) isCloser(tok *token.Token) bool {
	if tok.Type != token.TPunct || len(b.stack) == 1 {
		return false
	}
	s := string(tok.Bytes)
	switch b.top().mode {
	case modeObject:
		return s == token.PunctObjectClose
	case modeList:
		return s == token.PunctListClose
	case modePassage:
		return s == token.PunctPassageClose
	case modePacked:
		return s == token.PunctPackedClose
	}
	return false
}

func (b *builder) feed(tok *token.Token, lineStart bool) error {
	f := b.top()
	if lineStart && b.isCloser(tok) {
		return b.closeFrame(tok.Pos)
	}
	switch f.mode {
	case modePassage, modePacked:
		if tok.Type == token.TString {
			if f.fragOnLine {
				return gerrf(tok.Pos, string(tok.Bytes), "one fragment per line")
			}
			f.frags = append(f.frags, tok.String())
			f.fragOnLine = true
			return nil
		}
		return gerrf(tok.Pos, string(tok.Bytes), "unexpected token in %s string", f.mode)
	}
	switch f.es {
	case awaitName:
		return b.feedName(f, tok)
	case awaitAssign:
		if tok.Type == token.TPunct && string(tok.Bytes) == token.PunctAssign {
			f.es = awaitValue
			return nil
		}
		return gerrf(tok.Pos, string(tok.Bytes), "expected %q", token.PunctAssign)
	case awaitValue:
		return b.feedValue(f, tok)
	default:
		return gerrf(tok.Pos, string(tok.Bytes), "expected end of line")
	}
}

func (b *builder) feedName(f *frame, tok *token.Token) error {
	f.started = true
	switch tok.Type {
	case token.TString:
		f.cur = ir.NewEntry()
		if err := f.cur.SetName(tok.String()); err != nil {
			return b.contractErr(err, tok.Pos)
		}
		f.es = awaitAssign
		return nil
	case token.TPunct:
		switch string(tok.Bytes) {
		case token.PunctNothing:
			f.cur = ir.NewEntry()
			f.es = awaitAssign
			return nil
		case token.PunctNull:
			return gerrf(tok.Pos, string(tok.Bytes), "name may not be null")
		case token.PunctPassageOpen:
			f.cur = ir.NewEntry()
			return b.push(modePassage, nil, true, tok.Pos)
		case token.PunctPackedOpen:
			f.cur = ir.NewEntry()
			return b.push(modePacked, nil, true, tok.Pos)
		}
	}
	return gerrf(tok.Pos, string(tok.Bytes), "expected entry name")
}

func (b *builder) feedValue(f *frame, tok *token.Token) error {
	f.started = true
	if f.cur == nil {
		f.cur = ir.NewEntry()
	}
	switch tok.Type {
	case token.TString:
		if f.pending == nil {
			s := tok.String()
			f.pending = &s
			f.pendingPos = tok.Pos
			return nil
		}
		if err := b.resolveType(f); err != nil {
			return err
		}
		if err := f.cur.SetString(tok.String()); err != nil {
			return b.contractErr(err, tok.Pos)
		}
		return b.appendCur(f, tok.Pos)
	case token.TPunct:
		switch string(tok.Bytes) {
		case token.PunctNull:
			if err := b.resolveType(f); err != nil {
				return err
			}
			f.cur.SetNull()
			return b.appendCur(f, tok.Pos)
		case token.PunctNothing:
			return gerrf(tok.Pos, string(tok.Bytes), "nothing is not a legal value")
		case token.PunctObjectOpen, token.PunctListOpen:
			if err := b.resolveType(f); err != nil {
				return err
			}
			child := ir.NewTree()
			m := modeObject
			if string(tok.Bytes) == token.PunctListOpen {
				child = ir.NewList()
				m = modeList
			}
			if err := f.cur.SetTree(child); err != nil {
				return b.contractErr(err, tok.Pos)
			}
			if err := b.appendCur(f, tok.Pos); err != nil {
				return err
			}
			return b.push(m, child, false, tok.Pos)
		case token.PunctPassageOpen:
			if err := b.resolveType(f); err != nil {
				return err
			}
			return b.push(modePassage, nil, false, tok.Pos)
		case token.PunctPackedOpen:
			if err := b.resolveType(f); err != nil {
				return err
			}
			return b.push(modePacked, nil, false, tok.Pos)
		}
	}
	return gerrf(tok.Pos, string(tok.Bytes), "expected value")
}

// resolveType turns the pending straight string into the entry's type
// tag; it was held back because only a following value token tells a
// type apart from a plain string value.
func (b *builder) resolveType(f *frame) error {
	if f.pending == nil {
		return nil
	}
	if err := f.cur.SetType(*f.pending); err != nil {
		return b.contractErr(err, f.pendingPos)
	}
	f.pending = nil
	return nil
}

func (b *builder) appendCur(f *frame, pos token.Pos) error {
	if err := f.tree.Append(f.cur); err != nil {
		return b.contractErr(err, pos)
	}
	f.es = awaitLineEnd
	return nil
}

func (b *builder) push(m mode, tree *ir.Tree, nameTarget bool, pos token.Pos) error {
	if len(b.stack) >= b.opts.maxDepth {
		return &GrammarError{
			Err: fmt.Errorf("%w: %w: more than %d levels", ErrGrammar, ErrDepth, b.opts.maxDepth),
			Pos: pos,
		}
	}
	es := awaitName
	if m == modeList {
		es = awaitValue
	}
	b.stack = append(b.stack, &frame{mode: m, tree: tree, es: es, nameTarget: nameTarget})
	b.needNL = true
	return nil
}

func (b *builder) closeFrame(pos token.Pos) error {
	f := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	p := b.top()
	switch f.mode {
	case modeObject, modeList:
		// the owning entry was appended when the container opened
		return nil
	default:
		sep := ""
		if f.mode == modePassage {
			sep = "\n"
		}
		v := strings.Join(f.frags, sep)
		if f.nameTarget {
			if err := p.cur.SetName(v); err != nil {
				return b.contractErr(err, pos)
			}
			p.es = awaitAssign
			return nil
		}
		if err := p.cur.SetString(v); err != nil {
			return b.contractErr(err, pos)
		}
		return b.appendCur(p, pos)
	}
}

func (b *builder) contractErr(err error, pos token.Pos) error {
	return &GrammarError{
		Err: fmt.Errorf("%w: %w", ErrGrammar, err),
		Pos: pos,
	}
}
