package parse

// DefaultMaxDepth bounds container nesting. Input is untrusted; the
// builder fails with ErrDepth instead of growing without limit.
const DefaultMaxDepth = 128

type parseOpts struct {
	maxDepth int
}

type ParseOption func(*parseOpts)

// MaxDepth overrides the default container nesting limit.
func MaxDepth(n int) ParseOption {
	return func(o *parseOpts) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}
