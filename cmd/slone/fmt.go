package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/encode"
)

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
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
		if cfg.Write && arg != "-" {
			if err := os.WriteFile(arg, []byte(encode.String(t)), 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", arg, err)
			}
			continue
		}
		if err := encode.Encode(t, cc.Out); err != nil {
			return err
		}
	}
	return nil
}
