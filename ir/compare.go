package ir

import (
	"cmp"
	"strings"
)

// Equal reports semantic equality of two trees: same kind, same schema
// reference, and the same entry sequence.
func Equal(a, b *Tree) bool {
	return Compare(a, b) == 0
}

// Compare returns an integer comparing two trees. The result will be 0
// if a==b, -1 if a < b, and +1 if a > b. Entry order matters; it is
// never normalized.
func Compare(a, b *Tree) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := cmp.Compare(a.kind, b.kind); c != 0 {
		return c
	}
	if c := compareOpt(a.schemaRef, a.hasSchema, b.schemaRef, b.hasSchema); c != 0 {
		return c
	}
	n := min(len(a.entries), len(b.entries))
	for i := 0; i < n; i++ {
		if c := CompareEntries(a.entries[i], b.entries[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.entries), len(b.entries))
}

// CompareEntries orders entries by name, then type tag, then value.
func CompareEntries(a, b *Entry) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if c := compareOpt(a.name.s, a.name.ok, b.name.s, b.name.ok); c != 0 {
		return c
	}
	if c := compareOpt(a.typ.s, a.typ.ok, b.typ.s, b.typ.ok); c != 0 {
		return c
	}
	if c := cmp.Compare(a.vkind, b.vkind); c != 0 {
		return c
	}
	switch a.vkind {
	case StringValue:
		return strings.Compare(a.str, b.str)
	case TreeValue:
		return Compare(a.tree, b.tree)
	default:
		return 0
	}
}

// nothing sorts before any present value
func compareOpt(as string, aok bool, bs string, bok bool) int {
	if aok != bok {
		if !aok {
			return -1
		}
		return 1
	}
	if !aok {
		return 0
	}
	return strings.Compare(as, bs)
}
