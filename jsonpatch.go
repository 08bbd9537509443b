package structml

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/structml/go-structml/ir"
)

// ApplyPatch applies an RFC 6902 JSON patch to a tree by way of its
// JSON form and returns the patched tree. Field order in the result
// follows the patch library's JSON handling, not the input tree.
func ApplyPatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	d, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(d)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(out)
}

// MergePatch applies an RFC 7386 merge patch to a tree by way of its
// JSON form. Unlike Merge it has JSON semantics: nulls delete fields
// and sequences replace wholesale.
func MergePatch(doc *ir.Node, patch []byte) (*ir.Node, error) {
	d, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(out)
}
