// Package slone reads and writes SLONE documents.
//
// SLONE is a strict, line-oriented text serialization: every document
// is a sequence of entries, every value is a string, a null, or a
// nested object or list, and for any tree there is exactly one legal
// rendering. Decode followed by Encode reproduces the input bytes.
//
// This package is a thin front over the working packages: token for
// the lexical layer, parse for building trees, encode for rendering,
// and ir for the tree itself.
package slone

import (
	"github.com/JohnAD/slone/encode"
	"github.com/JohnAD/slone/ir"
	"github.com/JohnAD/slone/parse"
)

// Decode parses a complete document. On failure the error is a
// *parse.GrammarError carrying the position of the first offense.
func Decode(d string, opts ...parse.ParseOption) (*ir.Tree, error) {
	return parse.Parse([]byte(d), opts...)
}

// Encode renders t canonically. Trees built by Decode always encode;
// hand-built trees do too, because the ir setters reject content a
// document cannot carry.
func Encode(t *ir.Tree, opts ...encode.EncodeOption) string {
	return encode.String(t, opts...)
}
