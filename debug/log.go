package debug

import (
	"fmt"
	"os"

	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
)

func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *ir.Tree:
			args[i] = encode.String(x, encode.Fragment(true))
		case *ir.Entry:
			args[i] = entryString(x)
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func entryString(e *ir.Entry) string {
	t := ir.NewTree()
	if err := t.Append(e.Clone()); err != nil {
		return fmt.Sprintf("[raw entry] %v", e)
	}
	return encode.String(t, encode.Fragment(true))
}
