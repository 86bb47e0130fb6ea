package libdiff

import (
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
)

type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Modified
)

func (k ChangeKind) String() string {
	return map[ChangeKind]string{
		Added:    "added",
		Removed:  "removed",
		Modified: "modified",
	}[k]
}

// Change is one reported difference. From and To hold canonical
// renderings of the affected entry; From is empty for Added and To for
// Removed.
type Change struct {
	Kind ChangeKind
	Path string
	From string
	To   string
}

// Diff reports the differences between two trees. Matching between the
// two entry sequences is a longest-common-subsequence match: entries
// of an object pair up by name, entries of a list by rendered value.
func Diff(from, to *ir.Tree) []Change {
	var out []Change
	diffTrees("$", from, to, &out)
	return out
}

func diffTrees(path string, from, to *ir.Tree, out *[]Change) {
	if from.Kind() != to.Kind() {
		*out = append(*out, Change{
			Kind: Modified,
			Path: path,
			From: encode.String(from, encode.Fragment(true)),
			To:   encode.String(to, encode.Fragment(true)),
		})
		return
	}
	keyMap := map[string]rune{}
	fromRunes := mapEntriesTo(keyMap, from)
	toRunes := mapEntriesTo(keyMap, to)
	dmp := diffpatch.New()
	diffs := dmp.DiffMainRunes(fromRunes, toRunes, false)
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				e := from.At(fi)
				*out = append(*out, Change{
					Kind: Removed,
					Path: childPath(path, from, fi),
					From: renderEntry(from.Kind(), e),
				})
				fi++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				e := to.At(ti)
				*out = append(*out, Change{
					Kind: Added,
					Path: childPath(path, to, ti),
					To:   renderEntry(to.Kind(), e),
				})
				ti++
			}
		case diffpatch.DiffEqual:
			for range diff.Text {
				diffEntries(childPath(path, from, fi), from.Kind(), from.At(fi), to.At(ti), out)
				fi++
				ti++
			}
		}
	}
}

func diffEntries(path string, kind ir.Kind, from, to *ir.Entry, out *[]Change) {
	if from.ValueKind() == ir.TreeValue && to.ValueKind() == ir.TreeValue {
		ft, tt := from.Type()
		tf, tb := to.Type()
		if ft != tf || tt != tb {
			*out = append(*out, Change{
				Kind: Modified,
				Path: path,
				From: renderEntry(kind, from),
				To:   renderEntry(kind, to),
			})
			return
		}
		diffTrees(path, from.Tree(), to.Tree(), out)
		return
	}
	if ir.CompareEntries(from, to) != 0 {
		*out = append(*out, Change{
			Kind: Modified,
			Path: path,
			From: renderEntry(kind, from),
			To:   renderEntry(kind, to),
		})
	}
}

// mapEntriesTo assigns each distinct match key a rune so sequence
// matching can run over the entry order.
func mapEntriesTo(m map[string]rune, t *ir.Tree) []rune {
	rs := make([]rune, t.Len())
	for i, e := range t.Entries() {
		k := matchKey(t.Kind(), e)
		r, ok := m[k]
		if !ok {
			r = rune(len(m))
			m[k] = r
		}
		rs[i] = r
	}
	return rs
}

func matchKey(kind ir.Kind, e *ir.Entry) string {
	if kind == ir.ObjectKind {
		if name, ok := e.Name(); ok {
			return "n\x00" + name
		}
		return "_"
	}
	return "v\x00" + renderEntry(kind, e)
}

func renderEntry(kind ir.Kind, e *ir.Entry) string {
	t := ir.NewList()
	if kind == ir.ObjectKind {
		t = ir.NewTree()
	}
	// cloned entries are unowned, so Append cannot fail here
	_ = t.Append(e.Clone())
	return encode.String(t, encode.Fragment(true))
}

func childPath(path string, t *ir.Tree, i int) string {
	if t.Kind() == ir.ListKind {
		return path + "[" + strconv.Itoa(i) + "]"
	}
	e := t.At(i)
	name, ok := e.Name()
	if !ok {
		occ := 0
		for j := 0; j < i; j++ {
			if _, named := t.At(j).Name(); !named {
				occ++
			}
		}
		if occ > 0 {
			return path + "._#" + strconv.Itoa(occ)
		}
		return path + "._"
	}
	el := name
	if !plainName(name) {
		el = strconv.Quote(name)
	}
	occ := 0
	for j := 0; j < i; j++ {
		if n, ok := t.At(j).Name(); ok && n == name {
			occ++
		}
	}
	if occ > 0 {
		el += "#" + strconv.Itoa(occ)
	}
	return path + "." + el
}

func plainName(s string) bool {
	// bare "_" is the no-name marker, not a name
	if s == "" || s == "_" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return !strings.HasPrefix(s, "-")
}
