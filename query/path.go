package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JohnAD/slone/ir"
)

// Paths address one entry: "$" is the root, ".name" (or a quoted
// ."na me") steps into an object, "#n" picks the n-th occurrence of a
// duplicated name, and "[i]" indexes a list. A bare "._" steps into a
// nothing-named entry; an entry literally named "_" is always quoted.

func entryPath(path string, t *ir.Tree, i int) string {
	if t.Kind() == ir.ListKind {
		return path + "[" + strconv.Itoa(i) + "]"
	}
	name, ok := t.At(i).Name()
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
	if s == "" || s == "_" || strings.HasPrefix(s, "-") {
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
	return true
}

type segKind int

const (
	segName segKind = iota
	segIndex
)

type seg struct {
	kind    segKind
	name    string
	unnamed bool
	occ     int
	idx     int
}

// Lookup resolves a path to an entry of t.
func Lookup(t *ir.Tree, path string) (*ir.Entry, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: path %q names no entry", ErrQuery, path)
	}
	cur := t
	var e *ir.Entry
	for _, sg := range segs {
		if cur == nil {
			return nil, fmt.Errorf("%w: %q descends into a scalar", ErrQuery, path)
		}
		switch sg.kind {
		case segIndex:
			if cur.Kind() != ir.ListKind {
				return nil, fmt.Errorf("%w: %q indexes a non-list", ErrQuery, path)
			}
			if sg.idx < 0 || sg.idx >= cur.Len() {
				return nil, fmt.Errorf("%w: index %d out of range in %q", ErrQuery, sg.idx, path)
			}
			e = cur.At(sg.idx)
		case segName:
			if cur.Kind() == ir.ListKind {
				return nil, fmt.Errorf("%w: no entry %q (occurrence %d) in %q", ErrQuery, sg.name, sg.occ, path)
			}
			if sg.unnamed {
				e = getUnnamed(cur, sg.occ)
				if e == nil {
					return nil, fmt.Errorf("%w: no nothing-named entry (occurrence %d) in %q", ErrQuery, sg.occ, path)
				}
				break
			}
			e = cur.GetN(sg.name, sg.occ)
			if e == nil {
				return nil, fmt.Errorf("%w: no entry %q (occurrence %d) in %q", ErrQuery, sg.name, sg.occ, path)
			}
		}
		cur = e.Tree()
	}
	return e, nil
}

func getUnnamed(t *ir.Tree, occ int) *ir.Entry {
	for i := 0; i < t.Len(); i++ {
		e := t.At(i)
		if _, named := e.Name(); named {
			continue
		}
		if occ == 0 {
			return e
		}
		occ--
	}
	return nil
}

func splitPath(path string) ([]seg, error) {
	s := path
	if !strings.HasPrefix(s, "$") {
		return nil, fmt.Errorf("%w: path must start with $", ErrQuery)
	}
	s = s[1:]
	var segs []seg
	for s != "" {
		switch s[0] {
		case '.':
			s = s[1:]
			name, quoted, rest, err := readName(s, path)
			if err != nil {
				return nil, err
			}
			s = rest
			sg := seg{kind: segName, name: name}
			if !quoted && name == "_" {
				sg.unnamed = true
				sg.name = ""
			}
			if strings.HasPrefix(s, "#") {
				n, rest, err := readInt(s[1:], path)
				if err != nil {
					return nil, err
				}
				sg.occ, s = n, rest
			}
			segs = append(segs, sg)
		case '[':
			n, rest, err := readInt(s[1:], path)
			if err != nil {
				return nil, err
			}
			if !strings.HasPrefix(rest, "]") {
				return nil, fmt.Errorf("%w: missing ] in %q", ErrQuery, path)
			}
			segs = append(segs, seg{kind: segIndex, idx: n})
			s = rest[1:]
		default:
			return nil, fmt.Errorf("%w: unexpected %q in %q", ErrQuery, s[0], path)
		}
	}
	return segs, nil
}

func readName(s, path string) (name string, quoted bool, rest string, err error) {
	if strings.HasPrefix(s, `"`) {
		// quoted name with Go string syntax
		end := -1
		for i := 1; i < len(s); i++ {
			if s[i] == '\\' {
				i++
				continue
			}
			if s[i] == '"' {
				end = i
				break
			}
		}
		if end < 0 {
			return "", false, "", fmt.Errorf("%w: unterminated quoted name in %q", ErrQuery, path)
		}
		name, err = strconv.Unquote(s[:end+1])
		if err != nil {
			return "", false, "", fmt.Errorf("%w: bad quoted name in %q: %v", ErrQuery, path, err)
		}
		return name, true, s[end+1:], nil
	}
	i := strings.IndexAny(s, ".#[")
	if i < 0 {
		i = len(s)
	}
	if i == 0 {
		return "", false, "", fmt.Errorf("%w: empty name in %q", ErrQuery, path)
	}
	return s[:i], false, s[i:], nil
}

func readInt(s, path string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, "", fmt.Errorf("%w: expected a number in %q", ErrQuery, path)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v in %q", ErrQuery, err, path)
	}
	return n, s[i:], nil
}
