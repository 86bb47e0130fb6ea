package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/bridge"
	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/parse"
)

func (cfg *ConvertConfig) fmtOpt(fp *string) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		switch v {
		case "slone", "s", "json", "j", "yaml", "y":
		default:
			return nil, fmt.Errorf("%w: unknown format %q", cli.ErrUsage, v)
		}
		switch v[0] {
		case 's':
			*fp = "slone"
		case 'j':
			*fp = "json"
		case 'y':
			*fp = "yaml"
		}
		return v, nil
	})
}

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		d, err := readArg(arg)
		if err != nil {
			return err
		}
		var t *ir.Tree
		switch cfg.From {
		case "json":
			t, err = bridge.FromJSON(d)
		case "yaml":
			t, err = bridge.FromYAML(d)
		default:
			t, err = parse.Parse(d)
		}
		if err != nil {
			return fmt.Errorf("error reading %s as %s: %w", arg, cfg.From, err)
		}
		if err := writeAs(cfg, cc, t); err != nil {
			return err
		}
	}
	return nil
}

func writeAs(cfg *ConvertConfig, cc *cli.Context, t *ir.Tree) error {
	switch cfg.To {
	case "json":
		b, err := bridge.ToJSON(t)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(append(b, '\n'))
		return err
	case "yaml":
		b, err := bridge.ToYAML(t)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(b)
		return err
	default:
		return encode.Encode(t, cc.Out)
	}
}
