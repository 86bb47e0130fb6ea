package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/debug"
	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/patch"
)

func patchRun(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires one argument, a patch file", cli.ErrUsage)
	}
	pd, err := readArg(args[0])
	if err != nil {
		return err
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
		var res *ir.Tree
		if cfg.Merge {
			res, err = patch.Merge(t, pd)
		} else {
			res, err = patch.Apply(t, pd)
		}
		if err != nil {
			return fmt.Errorf("error patching %s: %w", arg, err)
		}
		if debug.Patch() {
			debug.Logf("patch: %s:\n%v", arg, res)
		}
		if err := encode.Encode(res, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
