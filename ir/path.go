package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed node path. A path selects nodes starting from the
// node it is applied to: fields with ".name", array elements with
// "[i]", every element with "[*]", identity-keyed elements with
// "[field=value]", and any descendant with "..".
type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Key      *PathKey
	Subtree  bool
	Next     *Path
}

// PathKey selects the array element whose Field equals Value.
type PathKey struct {
	Field string
	Value string
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	x := p
	dot := "."
	for x != nil {
		switch {
		case x.Subtree:
			buf.WriteString("..")
			x = x.Next
			dot = ""
			continue
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Key != nil:
			fmt.Fprintf(buf, "[%s=%s]", x.Key.Field, x.Key.Value)
		case x.Field != nil:
			buf.WriteString(dot + pathString(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
		dot = "."
		x = x.Next
	}
	return buf.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("path %q should start with '$'", p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	if err := parseFrag(p[1:], root); err != nil {
		return nil, err
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			rest := frag[2:]
			if len(rest) == 0 {
				return nil
			}
			// "..name" carries the field dot already
			if rest[0] != '.' && rest[0] != '[' {
				rest = "." + rest
			}
			next := &Path{}
			if err := parseFrag(rest, next); err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(rest, next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("expected '[' <index> ']'")
		}
		if err := parseIndex(frag[1:i+1], parent); err != nil {
			return err
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		if err := parseFrag(frag[i+2:], next); err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("expected '.' or '['")
	}
}

func parseIndex(is string, dst *Path) error {
	if len(is) == 1 && is[0] == '*' {
		dst.IndexAll = true
		return nil
	}
	if j := strings.IndexByte(is, '='); j != -1 {
		if j == 0 {
			return fmt.Errorf("empty key field in [%s]", is)
		}
		dst.Key = &PathKey{Field: is[:j], Value: is[j+1:]}
		return nil
	}
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return err
	}
	index := int(u64)
	dst.Index = &index
	return nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("expected field at end of string")
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("end of string scanning for \"'\"")
}

// GetPath returns a clone of the node selected by yPath, nil if the
// path walks through a field or key with no match, or an error if the
// path cannot be resolved deterministically.
func (y *Node) GetPath(yPath string) (*Node, error) {
	yp, err := ParsePath(yPath)
	if err != nil {
		return nil, err
	}
	res := y
	for yp != nil {
		if yp.IndexAll {
			return nil, fmt.Errorf("any index in get")
		}
		if yp.Subtree {
			return nil, fmt.Errorf("recurse .. in get")
		}
		if yp.Index != nil {
			if res.Type != ArrayType {
				return nil, fmt.Errorf("expected array, got %s", res.Type)
			}
			index := *yp.Index
			if index < 0 || index >= len(res.Values) {
				return nil, fmt.Errorf("index out of bounds %d (len %d)", index, len(res.Values))
			}
			res = res.Values[index]
			yp = yp.Next
			continue
		}
		if yp.Key != nil {
			if res.Type != ArrayType {
				return nil, fmt.Errorf("expected array, got %s", res.Type)
			}
			elt := keyedElement(res, yp.Key)
			if elt == nil {
				return nil, nil
			}
			res = elt
			yp = yp.Next
			continue
		}
		if yp.Field != nil {
			if res.Type != ObjectType {
				return nil, fmt.Errorf("expected object got %s", res.Type)
			}
			field := *yp.Field
			found := false
			for i, yf := range res.Fields {
				if yf.String != field {
					continue
				}
				res = res.Values[i]
				yp = yp.Next
				found = true
				break
			}
			if found {
				continue
			}
			return nil, nil
		}
		if yp.Next != nil {
			return nil, fmt.Errorf("unexpected next w/out index or field")
		}
		break
	}
	return res.Clone(), nil
}

func keyedElement(arr *Node, key *PathKey) *Node {
	for _, elt := range arr.Values {
		if elt.Type != ObjectType {
			continue
		}
		id := Get(elt, key.Field)
		if id == nil {
			continue
		}
		if scalarString(id) == key.Value {
			return elt
		}
	}
	return nil
}

func scalarString(v *Node) string {
	switch v.Type {
	case StringType:
		return v.String
	case NumberType:
		return jsonNumber(v)
	case BoolType:
		return strconv.FormatBool(v.Bool)
	case NullType:
		return "null"
	default:
		return ""
	}
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return f
	}
	return "'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

// ListPath appends to dst clones of every node selected by yPath,
// which may use "[*]" and "..". Results are in document order.
func (y *Node) ListPath(dst []*Node, yPath string) ([]*Node, error) {
	yp, err := ParsePath(yPath)
	if err != nil {
		return nil, err
	}
	return y.listPath(dst, yp)
}

func (y *Node) listPath(dst []*Node, yp *Path) ([]*Node, error) {
	if yp == nil {
		return append(dst, y.Clone()), nil
	}
	var err error
	if yp.Subtree {
		if err := y.Visit(func(node *Node, isPost bool) (bool, error) {
			if isPost {
				return false, nil
			}
			dst, err = node.listPath(dst, yp.Next)
			if err != nil {
				return false, err
			}
			return !node.Type.IsLeaf(), nil
		}); err != nil {
			return nil, err
		}
		return dst, nil
	}
	switch y.Type {
	case ObjectType:
		if yp.IndexAll || yp.Index != nil || yp.Key != nil {
			return dst, nil
		}
		if yp.Field == nil && yp.Next == nil {
			return append(dst, y.Clone()), nil
		}
		field := *yp.Field
		for i := range y.Fields {
			if y.Fields[i].String != field {
				continue
			}
			dst, err = y.Values[i].listPath(dst, yp.Next)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	case ArrayType:
		if yp.Field != nil {
			return dst, nil
		}
		if yp.Index == nil && yp.Key == nil && !yp.IndexAll && yp.Next == nil {
			return append(dst, y.Clone()), nil
		}
		if yp.Index != nil {
			idx := *yp.Index
			if 0 <= idx && idx < len(y.Values) {
				dst, err = y.Values[idx].listPath(dst, yp.Next)
				if err != nil {
					return nil, err
				}
			}
			return dst, nil
		}
		if yp.Key != nil {
			if elt := keyedElement(y, yp.Key); elt != nil {
				dst, err = elt.listPath(dst, yp.Next)
				if err != nil {
					return nil, err
				}
			}
			return dst, nil
		}
		if !yp.IndexAll {
			return dst, nil
		}
		for _, yv := range y.Values {
			dst, err = yv.listPath(dst, yp.Next)
			if err != nil {
				return nil, err
			}
		}
		return dst, nil
	case StringType, NumberType, NullType, BoolType:
		if yp.Field != nil || yp.Index != nil || yp.IndexAll || yp.Key != nil {
			return dst, nil
		}
		if yp.Next == nil {
			return append(dst, y.Clone()), nil
		}
		return dst, nil
	default:
		panic("type")
	}
}
