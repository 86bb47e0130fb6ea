package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/query"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an entry path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path %q", cli.ErrUsage, path)
	}
	if path[0] != '$' {
		path = "$" + path
	}
	args = args[1:]
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		t, err := readDoc(arg)
		if err != nil {
			return err
		}
		e, err := query.Lookup(t, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
		if err := printEntry(cfg.MainConfig, cc.Out, e); err != nil {
			return err
		}
	}
	return nil
}

// printEntry renders a single entry as a document fragment, wrapped in
// a container matching its namedness.
func printEntry(cfg *MainConfig, w io.Writer, e *ir.Entry) error {
	t := ir.NewList()
	if _, ok := e.Name(); ok {
		t = ir.NewTree()
	}
	// cloned entries are unowned, so Append cannot fail
	_ = t.Append(e.Clone())
	opts := append(cfg.encOpts(w), encode.Fragment(true))
	return encode.Encode(t, w, opts...)
}
