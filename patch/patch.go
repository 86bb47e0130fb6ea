// Package patch applies JSON patch documents to SLONE trees.
//
// Both RFC 6902 operation patches and RFC 7386 merge patches are
// supported. Application goes through the JSON bridge, so the caveats
// of package bridge apply: type tags other than "num" and "bool" are
// not preserved.
package patch

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/JohnAD/slone/bridge"
	"github.com/JohnAD/slone/ir"
)

// Apply applies an RFC 6902 patch and returns the patched tree; t is
// left untouched.
func Apply(t *ir.Tree, patchJSON []byte) (*ir.Tree, error) {
	p, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return nil, err
	}
	doc, err := bridge.ToJSON(t)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(doc)
	if err != nil {
		return nil, err
	}
	return bridge.FromJSON(out)
}

// Merge applies an RFC 7386 merge patch and returns the merged tree.
func Merge(t *ir.Tree, mergeJSON []byte) (*ir.Tree, error) {
	doc, err := bridge.ToJSON(t)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(doc, mergeJSON)
	if err != nil {
		return nil, err
	}
	return bridge.FromJSON(out)
}
