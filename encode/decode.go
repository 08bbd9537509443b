package encode

import (
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/structml/go-structml/ir"
)

// DecodeJSON parses JSON into a value tree, preserving field order.
func DecodeJSON(d []byte) (*ir.Node, error) {
	return ir.FromJSON(d)
}

// DecodeYAML parses YAML into a value tree, preserving field order.
func DecodeYAML(d []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %v", ir.ErrDecode, err)
	}
	return FromAny(v)
}

// FromAny converts plain decoded values (including goccy's ordered
// yaml.MapSlice) into a value tree.
func FromAny(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		if x <= 1<<63-1 {
			return ir.FromInt(int64(x)), nil
		}
		return &ir.Node{Type: ir.NumberType, Number: strconv.FormatUint(x, 10)}, nil
	case float64:
		return ir.FromFloat(x), nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			n, err := FromAny(item.Value)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KeyVal{Key: fmt.Sprint(item.Key), Val: n}
		}
		return ir.FromKeyVals(kvs), nil
	case map[string]any:
		m := make(map[string]*ir.Node, len(x))
		for k, e := range x {
			n, err := FromAny(e)
			if err != nil {
				return nil, err
			}
			m[k] = n
		}
		return ir.FromMap(m), nil
	case time.Time:
		return ir.FromString(x.Format(time.RFC3339)), nil
	default:
		return nil, fmt.Errorf("%w: unsupported value %T", ir.ErrDecode, v)
	}
}
