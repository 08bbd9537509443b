package ir

// IsUniform reports whether arr is an array whose elements are all
// objects sharing one field list, same names in the same order. Empty
// arrays are uniform.
func IsUniform(arr *Node) bool {
	if arr.Type != ArrayType {
		return false
	}
	var first *Node
	for _, el := range arr.Values {
		if el.Type != ObjectType {
			return false
		}
		if first == nil {
			first = el
			continue
		}
		if len(el.Fields) != len(first.Fields) {
			return false
		}
		for i := range el.Fields {
			if el.Fields[i].String != first.Fields[i].String {
				return false
			}
		}
	}
	return true
}

// FillUniform rewrites the elements of arr so all share the union of the
// element fields, in first-seen order, with nulls where an element had no
// value. It applies only when every element is an object; otherwise arr
// is left unchanged.
func FillUniform(arr *Node) {
	if arr.Type != ArrayType || len(arr.Values) == 0 {
		return
	}
	var union []string
	seen := map[string]bool{}
	for _, el := range arr.Values {
		if el.Type != ObjectType {
			return
		}
		for _, f := range el.Fields {
			if seen[f.String] {
				continue
			}
			seen[f.String] = true
			union = append(union, f.String)
		}
	}
	for _, el := range arr.Values {
		vals := ToMap(el)
		kvs := make([]KeyVal, len(union))
		for i, name := range union {
			v := vals[name]
			if v == nil {
				v = Null()
			}
			kvs[i] = KeyVal{Key: name, Val: v}
		}
		FromKeyValsAt(el, kvs)
	}
}
