package eval

import (
	"encoding/json"

	"github.com/structml/go-structml/ir"
)

// ToAny converts a tree to plain Go values so expressions can index
// into it. Field order is lost in the map form.
func ToAny(node *ir.Node) any {
	switch node.Type {
	case ir.ObjectType:
		n := len(node.Fields)
		res := make(map[string]any, n)
		for i := range n {
			res[node.Fields[i].String] = ToAny(node.Values[i])
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case ir.StringType:
		return node.String
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return node.Number
	case ir.BoolType:
		return node.Bool
	case ir.NullType:
		return nil
	default:
		panic("impossible production")
	}
}

// FromAny converts an evaluation result back to a tree. Node values
// pass through detached, everything else goes by way of JSON.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case *ir.Node:
		res := x.Clone()
		res.Parent = nil
		res.ParentIndex = 0
		res.ParentField = ""
		return res, nil
	case []*ir.Node:
		vals := make([]*ir.Node, len(x))
		for i, elt := range x {
			vals[i] = elt.Clone()
		}
		return ir.FromSlice(vals), nil
	case map[string]*ir.Node:
		cloned := make(map[string]*ir.Node, len(x))
		for k, elt := range x {
			cloned[k] = elt.Clone()
		}
		return ir.FromMap(cloned), nil
	case nil:
		return ir.Null(), nil
	}
	d, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(d)
}
