package ir

import (
	"fmt"
)

// Kind distinguishes object trees (named entries) from list trees
// (positional entries). The kind is part of the tree, not inferred
// from its entries, so that empty containers round-trip exactly.
type Kind int

const (
	ObjectKind Kind = iota
	ListKind
)

func (k Kind) String() string {
	if k == ListKind {
		return "list"
	}
	return "object"
}

// Tree is an ordered sequence of entries. Order is semantically
// significant and is never normalized; duplicate names are permitted.
type Tree struct {
	kind    Kind
	entries []*Entry

	owner *Entry // entry whose value this tree is; nil at the root

	schemaRef string // root only: content of the #% line
	hasSchema bool
}

// NewTree returns an empty object tree.
func NewTree() *Tree {
	return &Tree{kind: ObjectKind}
}

// NewList returns an empty list tree. List entries carry no names.
func NewList() *Tree {
	return &Tree{kind: ListKind}
}

func (t *Tree) Kind() Kind {
	return t.kind
}

func (t *Tree) Len() int {
	return len(t.entries)
}

// At returns the entry at position i, or nil when out of range.
func (t *Tree) At(i int) *Entry {
	if i < 0 || i >= len(t.entries) {
		return nil
	}
	return t.entries[i]
}

// Entries returns the backing entry slice. Callers must not reorder or
// mutate it; use Append/ReplaceAt/RemoveAt.
func (t *Tree) Entries() []*Entry {
	return t.entries
}

// Get returns the first entry with the given name, or nil.
func (t *Tree) Get(name string) *Entry {
	return t.GetN(name, 0)
}

// GetN returns the occurrence-th entry with the given name (zero
// based), or nil.
func (t *Tree) GetN(name string, occurrence int) *Entry {
	for _, e := range t.entries {
		n, ok := e.Name()
		if !ok || n != name {
			continue
		}
		if occurrence == 0 {
			return e
		}
		occurrence--
	}
	return nil
}

// Count returns the number of entries with the given name.
func (t *Tree) Count(name string) int {
	c := 0
	for _, e := range t.entries {
		if n, ok := e.Name(); ok && n == name {
			c++
		}
	}
	return c
}

func (t *Tree) checkEntry(e *Entry) error {
	if e == nil {
		return fmt.Errorf("%w: nil entry", ErrContract)
	}
	if e.owner != nil {
		return fmt.Errorf("%w: entry already owned", ErrContract)
	}
	if t.kind == ListKind {
		if _, ok := e.Name(); ok {
			return fmt.Errorf("%w: named entry in list", ErrContract)
		}
	}
	return nil
}

// Append adds e at the end of the tree. Insertion always appends;
// replacing is explicit via ReplaceAt or Replace.
func (t *Tree) Append(e *Entry) error {
	if err := t.checkEntry(e); err != nil {
		return err
	}
	e.owner = t
	t.entries = append(t.entries, e)
	return nil
}

// ReplaceAt substitutes the entry at position i.
func (t *Tree) ReplaceAt(i int, e *Entry) error {
	if i < 0 || i >= len(t.entries) {
		return fmt.Errorf("%w: position %d out of range", ErrContract, i)
	}
	if err := t.checkEntry(e); err != nil {
		return err
	}
	t.entries[i].owner = nil
	e.owner = t
	t.entries[i] = e
	return nil
}

// Replace substitutes the occurrence-th entry with the given name.
func (t *Tree) Replace(name string, occurrence int, e *Entry) error {
	for i, cur := range t.entries {
		n, ok := cur.Name()
		if !ok || n != name {
			continue
		}
		if occurrence == 0 {
			return t.ReplaceAt(i, e)
		}
		occurrence--
	}
	return fmt.Errorf("%w: no entry %q occurrence %d", ErrContract, name, occurrence)
}

// RemoveAt deletes the entry at position i.
func (t *Tree) RemoveAt(i int) error {
	if i < 0 || i >= len(t.entries) {
		return fmt.Errorf("%w: position %d out of range", ErrContract, i)
	}
	t.entries[i].owner = nil
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return nil
}

// SetSchemaRef records the opaque schema-reference line content.
// Only meaningful on the document root; nested trees never emit it.
func (t *Tree) SetSchemaRef(v string) {
	t.schemaRef = v
	t.hasSchema = true
}

func (t *Tree) ClearSchemaRef() {
	t.schemaRef = ""
	t.hasSchema = false
}

func (t *Tree) SchemaRef() (string, bool) {
	return t.schemaRef, t.hasSchema
}

// Owner returns the entry whose value this tree is, or nil at the root.
func (t *Tree) Owner() *Entry {
	return t.owner
}

// Clone returns a deep copy of the tree, unowned.
func (t *Tree) Clone() *Tree {
	res := &Tree{
		kind:      t.kind,
		schemaRef: t.schemaRef,
		hasSchema: t.hasSchema,
	}
	res.entries = make([]*Entry, len(t.entries))
	for i, e := range t.entries {
		c := e.Clone()
		c.owner = res
		res.entries[i] = c
	}
	return res
}
