// Package encode renders trees back to SLONE text.
//
// The output is canonical: for any tree there is exactly one rendering,
// so encoding a freshly parsed document reproduces the input bytes.
// String form selection (straight, passage, packed) is part of that
// canon and is deterministic.
package encode
