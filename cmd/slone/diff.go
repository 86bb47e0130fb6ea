package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/JohnAD/slone/debug"
	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/libdiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two arguments", cli.ErrUsage)
	}
	from, err := readDoc(args[0])
	if err != nil {
		return err
	}
	to, err := readDoc(args[1])
	if err != nil {
		return err
	}
	if cfg.Text {
		a, b := encode.String(from), encode.String(to)
		if _, err := io.WriteString(cc.Out, libdiff.Text(a, b)); err != nil {
			return err
		}
		if a != b {
			return cli.ExitCodeErr(1)
		}
		return nil
	}
	changes := libdiff.Diff(from, to)
	if debug.Diff() {
		debug.Logf("diff: %d changes between %s and %s\n", len(changes), args[0], args[1])
	}
	for _, ch := range changes {
		fmt.Fprintf(cc.Out, "%s %s\n", ch.Kind, ch.Path)
		writePrefixed(cc.Out, "- ", ch.From)
		writePrefixed(cc.Out, "+ ", ch.To)
	}
	if len(changes) > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func writePrefixed(w io.Writer, prefix, body string) {
	if body == "" {
		return
	}
	for _, ln := range strings.Split(strings.TrimSuffix(body, "\n"), "\n") {
		fmt.Fprintf(w, "%s%s\n", prefix, ln)
	}
}
