package encode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/structml/go-structml/format"
	"github.com/structml/go-structml/ir"
)

var ErrEncoding = errors.New("encoding error")

// Encode renders node to w in the configured format. The default is
// indented JSON.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		return encodeJSON(node, w, es)
	case format.YAMLFormat:
		return encodeYAML(node, w)
	case format.TreeFormat:
		return encodeTree(node, w, es)
	default:
		return fmt.Errorf("%w: unknown format %d", ErrEncoding, int(es.format))
	}
}

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	d, err := json.Marshal(node)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if !es.wire {
		buf := bytes.NewBuffer(nil)
		if err := json.Indent(buf, d, "", strings.Repeat(" ", es.indent)); err != nil {
			return fmt.Errorf("%w: %v", ErrEncoding, err)
		}
		d = buf.Bytes()
	}
	_, err = w.Write(append(d, '\n'))
	return err
}

func encodeYAML(node *ir.Node, w io.Writer) error {
	d, err := yaml.Marshal(yamlValue(node))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// yamlValue rebuilds node as the ordered forms the YAML marshaler
// understands.
func yamlValue(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.NullType:
		return nil
	case ir.BoolType:
		return node.Bool
	case ir.StringType:
		return node.String
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return *node.Int64
		case node.Float64 != nil:
			return *node.Float64
		default:
			return node.Number
		}
	case ir.ArrayType:
		vals := make([]any, len(node.Values))
		for i, v := range node.Values {
			vals[i] = yamlValue(v)
		}
		return vals
	case ir.ObjectType:
		ms := make(yaml.MapSlice, len(node.Fields))
		for i := range node.Fields {
			ms[i] = yaml.MapItem{
				Key:   node.Fields[i].String,
				Value: yamlValue(node.Values[i]),
			}
		}
		return ms
	default:
		return nil
	}
}

func encodeTree(node *ir.Node, w io.Writer, es *EncState) error {
	t := &treeEncoder{w: w, color: es.Color}
	if t.color == nil {
		t.color = func(_ Colorable, s string) string { return s }
	}
	switch {
	case node == nil:
		t.writef("null\n")
	case node.Type == ir.ObjectType || node.Type == ir.ArrayType:
		if len(node.Values) == 0 {
			t.writef("%s\n", emptyContainer(node))
			break
		}
		t.writef("%s\n", t.color(Colorable{Type: node.Type, Attr: ValueColor}, "."))
		t.subtree("", node)
	default:
		t.writef("%s\n", t.scalar(node))
	}
	return t.err
}

type treeEncoder struct {
	w     io.Writer
	color func(Colorable, string) string
	err   error
}

func (t *treeEncoder) writef(f string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, f, args...)
}

func (t *treeEncoder) subtree(prefix string, v *ir.Node) {
	n := len(v.Values)
	for i, cv := range v.Values {
		branch, cont := "├─ ", "│  "
		if i == n-1 {
			branch, cont = "└─ ", "   "
		}
		label := t.label(v, i)
		switch {
		case cv.Type == ir.ObjectType || cv.Type == ir.ArrayType:
			if len(cv.Values) == 0 {
				t.writef("%s%s%s %s\n", prefix, branch, label, emptyContainer(cv))
				continue
			}
			t.writef("%s%s%s\n", prefix, branch, label)
			t.subtree(prefix+cont, cv)
		default:
			t.writef("%s%s%s %s\n", prefix, branch, label, t.scalar(cv))
		}
	}
}

func (t *treeEncoder) label(parent *ir.Node, i int) string {
	if parent.Type == ir.ObjectType {
		name := t.color(Colorable{Type: ir.ObjectType, Attr: FieldColor}, parent.Fields[i].String)
		return name + t.color(Colorable{Type: ir.ObjectType, Attr: SepColor}, ":")
	}
	return t.color(Colorable{Type: ir.ArrayType, Attr: SepColor}, "["+strconv.Itoa(i)+"]")
}

func (t *treeEncoder) scalar(v *ir.Node) string {
	able := Colorable{Type: v.Type, Attr: ValueColor}
	switch v.Type {
	case ir.NullType:
		return t.color(able, "null")
	case ir.BoolType:
		return t.color(able, strconv.FormatBool(v.Bool))
	case ir.NumberType:
		return t.color(able, numberString(v))
	case ir.StringType:
		s := v.String
		if s == "" || strings.ContainsAny(s, "\n\t") || strings.TrimSpace(s) != s {
			s = strconv.Quote(s)
		}
		return t.color(able, s)
	default:
		return ""
	}
}

func numberString(v *ir.Node) string {
	switch {
	case v.Int64 != nil:
		return strconv.FormatInt(*v.Int64, 10)
	case v.Float64 != nil:
		return strconv.FormatFloat(*v.Float64, 'g', -1, 64)
	default:
		return v.Number
	}
}

func emptyContainer(v *ir.Node) string {
	if v.Type == ir.ArrayType {
		return "[]"
	}
	return "{}"
}
