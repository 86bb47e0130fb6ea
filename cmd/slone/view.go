package main

import (
	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		t, err := readDoc(arg)
		if err != nil {
			return err
		}
		if err := encode.Encode(t, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
