// Package query selects entries out of SLONE trees.
//
// Two selection styles are offered: Lookup addresses a single entry by
// path, and Compile/Select runs a predicate expression over every
// entry in the tree. Predicates use the expr language; each entry is
// presented to the expression as the fields of Env.
package query

import (
	"errors"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/JohnAD/slone/ir"
)

var ErrQuery = errors.New("query error")

// Env is the variable set a predicate sees for one entry.
type Env struct {
	Name    string `expr:"name"`
	HasName bool   `expr:"has_name"`
	Type    string `expr:"type"`
	Value   string `expr:"value"`
	Null    bool   `expr:"null"`
	Nested  bool   `expr:"nested"`
	Kind    string `expr:"kind"`
	Path    string `expr:"path"`
	Depth   int    `expr:"depth"`
	Index   int    `expr:"index"`
}

type Query struct {
	prog *vm.Program
}

// Compile type-checks a predicate against Env. The expression must
// yield a bool.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	return &Query{prog: prog}, nil
}

// Match is one selected entry and its address.
type Match struct {
	Path  string
	Entry *ir.Entry
}

// Select runs the predicate over every entry of t, depth first, and
// returns the matches in document order.
func (q *Query) Select(t *ir.Tree) ([]Match, error) {
	var out []Match
	err := walk(t, "$", 0, func(env Env, e *ir.Entry) error {
		res, err := expr.Run(q.prog, env)
		if err != nil {
			return err
		}
		if res.(bool) {
			out = append(out, Match{Path: env.Path, Entry: e})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func walk(t *ir.Tree, path string, depth int, f func(Env, *ir.Entry) error) error {
	for i, e := range t.Entries() {
		p := entryPath(path, t, i)
		env := Env{Index: i, Depth: depth, Path: p, Kind: kindOf(e)}
		if n, ok := e.Name(); ok {
			env.Name, env.HasName = n, true
		}
		if tg, ok := e.Type(); ok {
			env.Type = tg
		}
		switch e.ValueKind() {
		case ir.NullValue:
			env.Null = true
		case ir.TreeValue:
			env.Nested = true
		default:
			env.Value = e.StringValue()
		}
		if err := f(env, e); err != nil {
			return err
		}
		if e.ValueKind() == ir.TreeValue {
			if err := walk(e.Tree(), p, depth+1, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func kindOf(e *ir.Entry) string {
	switch e.ValueKind() {
	case ir.NullValue:
		return "null"
	case ir.TreeValue:
		return e.Tree().Kind().String()
	default:
		return "string"
	}
}
