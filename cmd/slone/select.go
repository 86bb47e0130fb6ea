package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/debug"
	"github.com/JohnAD/slone/query"
)

func selectRun(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: select requires one argument, an expr predicate", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
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
		matches, err := q.Select(t)
		if err != nil {
			return fmt.Errorf("error selecting in %s: %w", arg, err)
		}
		if debug.Query() {
			debug.Logf("select: %d matches in %s\n", len(matches), arg)
		}
		for _, m := range matches {
			if cfg.Paths {
				fmt.Fprintln(cc.Out, m.Path)
				continue
			}
			fmt.Fprintf(cc.Out, "%s:\n", m.Path)
			if err := printEntry(cfg.MainConfig, cc.Out, m.Entry); err != nil {
				return err
			}
		}
	}
	return nil
}
