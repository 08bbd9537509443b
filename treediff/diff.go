package treediff

import (
	"encoding/json"
	"strconv"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/structml/go-structml/ir"
)

type diffConfig struct {
	identity string
}

// DiffOption configures a diff.
type DiffOption func(*diffConfig)

// DiffIdentity sets the field that aligns sequence elements when both
// sides hold identified records. Default "name".
func DiffIdentity(field string) DiffOption {
	return func(c *diffConfig) { c.identity = field }
}

// Diff reports the changes that turn from into to, in tree order. Maps
// align by field name, sequences of identified records align by
// identity, and other sequences align positionally by shape similarity;
// positional indices refer to the aligned view of both sequences.
func Diff(from, to *ir.Node, opts ...DiffOption) []Change {
	c := &diffConfig{identity: "name"}
	for _, opt := range opts {
		opt(c)
	}
	d := &differ{c: c, dmp: diffpatch.New()}
	d.diff("$", from, to)
	return d.changes
}

type differ struct {
	c       *diffConfig
	dmp     *diffpatch.DiffMatchPatch
	changes []Change
}

func (d *differ) add(ch Change) {
	d.changes = append(d.changes, ch)
}

func (d *differ) diff(path string, from, to *ir.Node) {
	switch {
	case from == nil && to == nil:
	case from == nil:
		d.add(Change{Path: path, Kind: Add, To: to})
	case to == nil:
		d.add(Change{Path: path, Kind: Delete, From: from})
	case from.Type == ir.ObjectType && to.Type == ir.ObjectType:
		d.diffObjects(path, from, to)
	case from.Type == ir.ArrayType && to.Type == ir.ArrayType:
		d.diffArrays(path, from, to)
	default:
		if ir.Compare(from, to) != 0 {
			d.add(Change{Path: path, Kind: Modify, From: from, To: to})
		}
	}
}

// diffObjects aligns by field name, so a moved field compares in place
// instead of surfacing as a delete and an add.
func (d *differ) diffObjects(path string, from, to *ir.Node) {
	toMap := ir.ToMap(to)
	fromNames := make(map[string]bool, len(from.Fields))
	for i := range from.Fields {
		name := from.Fields[i].String
		fromNames[name] = true
		d.diff(fieldPath(path, name), from.Values[i], toMap[name])
	}
	for i := range to.Fields {
		name := to.Fields[i].String
		if fromNames[name] {
			continue
		}
		d.diff(fieldPath(path, name), nil, to.Values[i])
	}
}

func (d *differ) diffArrays(path string, from, to *ir.Node) {
	if d.keyed(from) && d.keyed(to) {
		d.diffKeyed(path, from, to)
		return
	}
	m := map[string]rune{}
	fr := mapSummaries(m, from)
	tr := mapSummaries(m, to)
	diffs := d.dmp.DiffMainRunes(fr, tr, false)

	fi, ti, ri := 0, 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				d.add(Change{Path: indexPath(path, ri), Kind: Delete, From: from.Values[fi]})
				fi++
				ri++
			}
		case diffpatch.DiffEqual:
			for range diff.Text {
				d.diff(indexPath(path, ri), from.Values[fi], to.Values[ti])
				fi++
				ti++
				ri++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				d.add(Change{Path: indexPath(path, ri), Kind: Add, To: to.Values[ti]})
				ti++
				ri++
			}
		}
	}
}

func (d *differ) diffKeyed(path string, from, to *ir.Node) {
	toKeys := make(map[string]*ir.Node, len(to.Values))
	order := make([]string, 0, len(to.Values))
	for _, tv := range to.Values {
		k, _ := elemKey(tv, d.c.identity)
		if _, dup := toKeys[k]; !dup {
			order = append(order, k)
		}
		toKeys[k] = tv
	}
	for _, fv := range from.Values {
		k, _ := elemKey(fv, d.c.identity)
		p := keyedPath(path, d.c.identity, k)
		tv, ok := toKeys[k]
		if !ok {
			d.add(Change{Path: p, Kind: Delete, From: fv})
			continue
		}
		d.diff(p, fv, tv)
		delete(toKeys, k)
	}
	for _, k := range order {
		tv, ok := toKeys[k]
		if !ok {
			continue
		}
		d.add(Change{Path: keyedPath(path, d.c.identity, k), Kind: Add, To: tv})
	}
}

// keyed reports whether every element of arr is a map carrying the
// identity field. Anything less falls back to positional alignment;
// unlike merging, a diff never fails.
func (d *differ) keyed(arr *ir.Node) bool {
	if len(arr.Values) == 0 {
		return false
	}
	for _, v := range arr.Values {
		if _, ok := elemKey(v, d.c.identity); !ok {
			return false
		}
	}
	return true
}

func elemKey(v *ir.Node, identity string) (string, bool) {
	if v.Type != ir.ObjectType {
		return "", false
	}
	id := ir.Get(v, identity)
	if id == nil {
		return "", false
	}
	return idKey(id), true
}

// idKey renders an identity value canonically. A map identity, such as
// a named element with attributes, keys by its content field.
func idKey(id *ir.Node) string {
	switch id.Type {
	case ir.StringType:
		return id.String
	case ir.NumberType:
		switch {
		case id.Int64 != nil:
			return strconv.FormatInt(*id.Int64, 10)
		case id.Float64 != nil:
			return strconv.FormatFloat(*id.Float64, 'g', -1, 64)
		}
		return id.Number
	case ir.BoolType:
		return strconv.FormatBool(id.Bool)
	case ir.NullType:
		return "null"
	case ir.ObjectType:
		if content := ir.Get(id, ir.ContentKey); content != nil {
			return idKey(content)
		}
	}
	d, _ := json.Marshal(id)
	return string(d)
}

func mapSummaries(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		sum := summary(v)
		r, ok := m[sum]
		if !ok {
			r = rune(len(m))
			m[sum] = r
		}
		rs[i] = r
	}
	return rs
}

// summary renders a value compactly for positional alignment: scalars
// by value, containers by type so that equal summaries recurse.
func summary(node *ir.Node) string {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType, ir.NullType:
		return node.Type.String()
	case ir.BoolType:
		return node.Type.String() + "-" + strconv.FormatBool(node.Bool)
	case ir.StringType:
		if strings.Contains(node.String, "\n") {
			return node.Type.String() + "/m"
		}
		return node.Type.String() + "-" + node.String
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return node.Type.String() + "-i-" + strconv.FormatInt(*node.Int64, 10)
		case node.Float64 != nil:
			return node.Type.String() + "-f-" + strconv.FormatFloat(*node.Float64, 'f', -1, 64)
		}
		return node.Type.String() + "-n-" + node.Number
	default:
		return node.Type.String()
	}
}

func fieldPath(prefix, f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
		return prefix + "." + f
	}
	return prefix + ".'" + strings.ReplaceAll(f, "'", "\\'") + "'"
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

func keyedPath(prefix, field, key string) string {
	return prefix + "[" + field + "=" + key + "]"
}
