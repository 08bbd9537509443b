package structml

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/structml/go-structml/debug"
	"github.com/structml/go-structml/ir"
)

var (
	// ErrMergeFieldMissing reports a sequence element that cannot join a
	// keyed merge because it lacks the identity field.
	ErrMergeFieldMissing = errors.New("identity field missing")
)

type mergeConfig struct {
	identity string
}

// MergeOption configures a merge.
type MergeOption func(*mergeConfig)

// MergeIdentity sets the field that pairs sequence elements during
// keyed merging. Default "name".
func MergeIdentity(field string) MergeOption {
	return func(c *mergeConfig) { c.identity = field }
}

// Merge combines override into base, returning a new tree and leaving
// both inputs intact. Maps merge field-wise, keeping base field order
// and appending override-only fields in override order. Sequences of
// records merge by identity, which every record must carry. Anything
// else takes the override value, explicit nulls included.
func Merge(base, override *ir.Node, opts ...MergeOption) (*ir.Node, error) {
	c := &mergeConfig{identity: "name"}
	for _, opt := range opts {
		opt(c)
	}
	if debug.Merge() {
		debug.Logf("merge base\n%s\nover\n%s\n", debug.Tree{Node: base}, debug.Tree{Node: override})
	}
	return merge(base, override, c)
}

func merge(base, override *ir.Node, c *mergeConfig) (*ir.Node, error) {
	switch {
	case override == nil:
		return detached(base.Clone()), nil
	case base == nil:
		return detached(override.Clone()), nil
	case base.Type == ir.ObjectType && override.Type == ir.ObjectType:
		return mergeObjects(base, override, c)
	case base.Type == ir.ArrayType && override.Type == ir.ArrayType:
		return mergeArrays(base, override, c)
	default:
		return detached(override.Clone()), nil
	}
}

func mergeObjects(base, override *ir.Node, c *mergeConfig) (*ir.Node, error) {
	overMap := ir.ToMap(override)
	kvs := make([]ir.KeyVal, 0, len(base.Fields)+len(override.Fields))
	seen := make(map[string]bool, len(base.Fields))
	for i := range base.Fields {
		name := base.Fields[i].String
		seen[name] = true
		ov, ok := overMap[name]
		if !ok {
			kvs = append(kvs, ir.KeyVal{Key: name, Val: detached(base.Values[i].Clone())})
			continue
		}
		mv, err := merge(base.Values[i], ov, c)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, ir.KeyVal{Key: name, Val: mv})
	}
	for i := range override.Fields {
		name := override.Fields[i].String
		if seen[name] {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: name, Val: detached(override.Values[i].Clone())})
	}
	return ir.FromKeyVals(kvs), nil
}

func mergeArrays(base, override *ir.Node, c *mergeConfig) (*ir.Node, error) {
	if !recordsOnly(base) || !recordsOnly(override) {
		return detached(override.Clone()), nil
	}
	return mergeKeyed(base, override, c)
}

// recordsOnly reports whether every element of arr is a map. Only
// record sequences merge; a sequence holding anything else takes the
// override value wholesale.
func recordsOnly(arr *ir.Node) bool {
	for _, v := range arr.Values {
		if v.Type != ir.ObjectType {
			return false
		}
	}
	return true
}

func mergeKeyed(base, override *ir.Node, c *mergeConfig) (*ir.Node, error) {
	overKeys := make(map[string]*ir.Node, len(override.Values))
	order := make([]string, 0, len(override.Values))
	for _, v := range override.Values {
		k, err := identityOf(v, c.identity)
		if err != nil {
			return nil, err
		}
		if _, dup := overKeys[k]; !dup {
			order = append(order, k)
		}
		overKeys[k] = v
	}
	vals := make([]*ir.Node, 0, len(base.Values)+len(override.Values))
	for _, bv := range base.Values {
		k, err := identityOf(bv, c.identity)
		if err != nil {
			return nil, err
		}
		ov, ok := overKeys[k]
		if !ok {
			vals = append(vals, detached(bv.Clone()))
			continue
		}
		mv, err := merge(bv, ov, c)
		if err != nil {
			return nil, err
		}
		vals = append(vals, mv)
		delete(overKeys, k)
	}
	for _, k := range order {
		ov, ok := overKeys[k]
		if !ok {
			continue
		}
		vals = append(vals, detached(ov.Clone()))
	}
	res := ir.FromSlice(vals)
	ir.FillUniform(res)
	return res, nil
}

func identityOf(v *ir.Node, identity string) (string, error) {
	if v.Type == ir.ObjectType {
		if id := ir.Get(v, identity); id != nil {
			return identityKey(id), nil
		}
	}
	return "", fmt.Errorf("%w: %q at %s", ErrMergeFieldMissing, identity, v.Path())
}

// identityKey renders an identity value canonically, so that a record
// named 7 pairs with one named "7" regardless of how each document's
// coercion went. An identity holding a map, such as a named element
// with attributes, pairs by its content field.
func identityKey(v *ir.Node) string {
	switch v.Type {
	case ir.StringType:
		return v.String
	case ir.NumberType:
		switch {
		case v.Int64 != nil:
			return strconv.FormatInt(*v.Int64, 10)
		case v.Float64 != nil:
			return strconv.FormatFloat(*v.Float64, 'g', -1, 64)
		default:
			return v.Number
		}
	case ir.BoolType:
		return strconv.FormatBool(v.Bool)
	case ir.NullType:
		return "null"
	case ir.ObjectType:
		if content := ir.Get(v, ir.ContentKey); content != nil {
			return identityKey(content)
		}
	}
	d, _ := json.Marshal(v)
	return string(d)
}

func detached(v *ir.Node) *ir.Node {
	v.Parent = nil
	v.ParentIndex = 0
	v.ParentField = ""
	return v
}
