package convert

import (
	"github.com/structml/go-structml/ir"
)

// reconcile applies the shape heuristics to a freshly built map, in
// order: parallel-array transposition, item tag unwrapping, content
// sequence trimming, uniform sequence filling.
func reconcile(obj *ir.Node, counts map[string]int, s *Settings) *ir.Node {
	if n := transposeLength(obj, counts); n > 0 {
		return transpose(obj, n)
	}
	v := unwrapItems(obj, s)
	if v.Type == ir.ObjectType {
		v = trimContent(v)
	}
	if s.UniformArrays {
		fillSequences(v)
	}
	return v
}

// transposeLength reports the record count when obj reads as a struct
// of parallel arrays, and 0 otherwise. The trigger is at least two
// fields whose occurrence counts all agree and exceed one, with every
// value an equally long sequence.
func transposeLength(obj *ir.Node, counts map[string]int) int {
	if len(obj.Fields) < 2 {
		return 0
	}
	n := 0
	for i, f := range obj.Fields {
		c := counts[f.String]
		if c < 2 {
			return 0
		}
		if i == 0 {
			n = c
		} else if c != n {
			return 0
		}
		v := obj.Values[i]
		if v.Type != ir.ArrayType || len(v.Values) != n {
			return 0
		}
	}
	return n
}

// transpose turns a struct of parallel arrays into an array of records,
// aligning position i of every field into record i.
func transpose(obj *ir.Node, n int) *ir.Node {
	records := make([]*ir.Node, n)
	for i := 0; i < n; i++ {
		kvs := make([]ir.KeyVal, len(obj.Fields))
		for j, f := range obj.Fields {
			kvs[j] = ir.KeyVal{Key: f.String, Val: obj.Values[j].Values[i]}
		}
		records[i] = ir.FromKeyVals(kvs)
	}
	return ir.FromSlice(records)
}

// unwrapItems handles the anonymous item wrapper: a map whose only
// field is the item tag collapses to that field's value, and items
// alongside other fields move under the content key.
func unwrapItems(obj *ir.Node, s *Settings) *ir.Node {
	key := s.itemKey()
	items := ir.Get(obj, key)
	if items == nil {
		return obj
	}
	if len(obj.Fields) == 1 {
		return detach(items)
	}
	obj.Delete(key)
	obj.Set(ir.ContentKey, items)
	return obj
}

// trimContent cleans the content field: trailing empty elements of a
// content sequence are artifacts of whitespace between child elements.
// A sequence left with one element collapses to it, and a map left with
// content alone collapses to the bare value.
func trimContent(obj *ir.Node) *ir.Node {
	seq := ir.Get(obj, ir.ContentKey)
	if seq == nil || seq.Type != ir.ArrayType {
		return obj
	}
	vals := seq.Values
	for len(vals) > 0 && emptyValue(vals[len(vals)-1]) {
		vals = vals[:len(vals)-1]
	}
	switch len(vals) {
	case 0:
		obj.Delete(ir.ContentKey)
		if len(obj.Fields) == 0 {
			return ir.Null()
		}
	case 1:
		obj.Set(ir.ContentKey, detach(vals[0]))
	default:
		seq.Values = vals
	}
	if len(obj.Fields) == 1 && obj.Fields[0].String == ir.ContentKey {
		return detach(obj.Values[0])
	}
	return obj
}

// fillSequences fills heterogeneous object sequences to a shared field
// set, at v itself and one level below when v is a map.
func fillSequences(v *ir.Node) {
	switch v.Type {
	case ir.ArrayType:
		ir.FillUniform(v)
	case ir.ObjectType:
		for _, fv := range v.Values {
			if fv.Type == ir.ArrayType {
				ir.FillUniform(fv)
			}
		}
	}
}

func emptyValue(v *ir.Node) bool {
	return v.Type == ir.NullType || (v.Type == ir.StringType && v.String == "")
}

func detach(v *ir.Node) *ir.Node {
	v.Parent = nil
	v.ParentIndex = 0
	v.ParentField = ""
	return v
}
