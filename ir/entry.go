package ir

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/JohnAD/slone/token"
)

// MaxTypeTagLen is the maximum length of a type tag in code points.
const MaxTypeTagLen = 32

// ValueKind discriminates the three legal value shapes of an entry.
// There is no nothing kind for values: the strict grammar forbids it,
// and the API enforces that at the type level.
type ValueKind int

const (
	StringValue ValueKind = iota
	NullValue
	TreeValue
)

func (k ValueKind) String() string {
	return map[ValueKind]string{
		StringValue: "string",
		NullValue:   "null",
		TreeValue:   "tree",
	}[k]
}

type optString struct {
	s  string
	ok bool
}

// Entry is one (name, type, value) triple of a Tree. Name and type tag
// are each present or nothing; the value is a string, the null marker,
// or a nested Tree.
type Entry struct {
	name optString
	typ  optString

	vkind ValueKind
	str   string
	tree  *Tree

	owner *Tree
}

// NewEntry returns an unnamed, untyped entry holding the empty string.
func NewEntry() *Entry {
	return &Entry{}
}

// StringEntry builds a named string entry.
func StringEntry(name, v string) (*Entry, error) {
	e := NewEntry()
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	if err := e.SetString(v); err != nil {
		return nil, err
	}
	return e, nil
}

func checkContent(v string) (string, error) {
	if strings.ContainsRune(v, 0) {
		return "", fmt.Errorf("%w: NUL in string", ErrContract)
	}
	return norm.NFC.String(v), nil
}

// SetName sets the entry name. The empty string is a valid name,
// distinct from nothing.
func (e *Entry) SetName(v string) error {
	v, err := checkContent(v)
	if err != nil {
		return err
	}
	e.name = optString{s: v, ok: true}
	return nil
}

// ClearName marks the entry as unnamed (nothing).
func (e *Entry) ClearName() {
	e.name = optString{}
}

func (e *Entry) Name() (string, bool) {
	return e.name.s, e.name.ok
}

// ValidTypeTag checks the type tag constraints of the frozen grammar:
// 1..32 code points, no whitespace, no SLONE punctuation, no control
// characters.
func ValidTypeTag(v string) error {
	n := 0
	for _, r := range v {
		n++
		switch {
		case unicode.IsSpace(r):
			return fmt.Errorf("%w: whitespace in type tag %q", ErrContract, v)
		case token.IsPunct(r) || r == '"':
			return fmt.Errorf("%w: punctuation in type tag %q", ErrContract, v)
		case r < 0x20:
			return fmt.Errorf("%w: control character in type tag", ErrContract)
		}
	}
	if n == 0 {
		return fmt.Errorf("%w: empty type tag", ErrContract)
	}
	if n > MaxTypeTagLen {
		return fmt.Errorf("%w: type tag longer than %d code points", ErrContract, MaxTypeTagLen)
	}
	return nil
}

// SetType sets the type tag. Tags are opaque metadata to the codec.
func (e *Entry) SetType(v string) error {
	v, err := checkContent(v)
	if err != nil {
		return err
	}
	if err := ValidTypeTag(v); err != nil {
		return err
	}
	e.typ = optString{s: v, ok: true}
	return nil
}

// ClearType marks the entry as untyped (nothing).
func (e *Entry) ClearType() {
	e.typ = optString{}
}

func (e *Entry) Type() (string, bool) {
	return e.typ.s, e.typ.ok
}

// SetString sets a string value, releasing any nested tree.
func (e *Entry) SetString(v string) error {
	v, err := checkContent(v)
	if err != nil {
		return err
	}
	e.releaseTree()
	e.vkind = StringValue
	e.str = v
	return nil
}

// SetNull marks the value as unknown, distinct from the empty string.
func (e *Entry) SetNull() {
	e.releaseTree()
	e.vkind = NullValue
	e.str = ""
}

// SetTree nests t as this entry's value. Every tree except the document
// root is owned by exactly one entry: sharing and cycles are contract
// violations.
func (e *Entry) SetTree(t *Tree) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrContract)
	}
	if t.owner != nil && t.owner != e {
		return fmt.Errorf("%w: tree already owned", ErrContract)
	}
	for anc := e.owner; anc != nil; {
		if anc == t {
			return fmt.Errorf("%w: tree cycle", ErrContract)
		}
		if anc.owner == nil {
			break
		}
		anc = anc.owner.owner
	}
	e.releaseTree()
	e.vkind = TreeValue
	e.tree = t
	e.str = ""
	t.owner = e
	return nil
}

func (e *Entry) releaseTree() {
	if e.tree != nil {
		e.tree.owner = nil
		e.tree = nil
	}
}

func (e *Entry) ValueKind() ValueKind {
	return e.vkind
}

func (e *Entry) IsNull() bool {
	return e.vkind == NullValue
}

// StringValue returns the string value, or "" when the value is not a
// string.
func (e *Entry) StringValue() string {
	if e.vkind != StringValue {
		return ""
	}
	return e.str
}

// Tree returns the nested tree, or nil when the value is not nested.
func (e *Entry) Tree() *Tree {
	if e.vkind != TreeValue {
		return nil
	}
	return e.tree
}

// Clone returns a deep copy of the entry, unowned.
func (e *Entry) Clone() *Entry {
	res := &Entry{
		name:  e.name,
		typ:   e.typ,
		vkind: e.vkind,
		str:   e.str,
	}
	if e.tree != nil {
		res.tree = e.tree.Clone()
		res.tree.owner = res
	}
	return res
}
