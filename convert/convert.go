package convert

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/structml/go-structml/dom"
	"github.com/structml/go-structml/ir"
)

// Element converts el and its subtree into a value tree. The returned
// node is the element's value; naming it is the caller's concern.
//
// Children group by normalized name: a name seen once maps to its value
// directly, a repeated name maps to a sequence in document order. An
// element whose only child is textual or special collapses to that
// payload with no map around it, and an element with nothing readable
// below it becomes null. The shape heuristics of reconcile run on every
// built map, and attributes attach last.
func Element(el *etree.Element, opts ...ConvertOption) (*ir.Node, error) {
	s := GetSettings(opts...)
	v, err := build(el, s, 0)
	if err != nil {
		return nil, failure(el.FullTag(), err, s)
	}
	if v == nil {
		v = ir.Null()
	}
	return v, nil
}

// failure applies the error policy: debug mode keeps the cause, the
// default collapses everything into one message naming the source.
func failure(src string, err error, s *Settings) error {
	if s.DebugMode {
		return fmt.Errorf("%w: converting %q: %w", ErrConversionFailed, src, err)
	}
	return fmt.Errorf("%w: converting %q", ErrConversionFailed, src)
}

// build produces the value of one element, or nil when the element sits
// beyond the configured depth bound.
func build(el *etree.Element, s *Settings, depth int) (*ir.Node, error) {
	if s.MaxDepth > 0 && depth > s.MaxDepth {
		return nil, nil
	}

	counts := countChildren(el, s)

	type group struct {
		name string
		cat  dom.Category
		vals []*ir.Node
	}
	var (
		order  []*group
		groups = map[string]*group{}
		total  int
	)
	for _, tok := range el.Child {
		name, cat := dom.Classify(tok)
		if cat == dom.Unsupported || !readable(cat, s) {
			continue
		}
		var val *ir.Node
		if cat == dom.Element {
			v, err := build(tok.(*etree.Element), s, depth+1)
			if err != nil {
				return nil, err
			}
			if v == nil {
				continue
			}
			val = v
		} else {
			val = leafValue(dom.Payload(tok), s)
		}
		g := groups[name]
		if g == nil {
			g = &group{name: name, cat: cat}
			groups[name] = g
			order = append(order, g)
		}
		g.vals = append(g.vals, val)
		total++
	}

	var v *ir.Node
	switch {
	case total == 0:
		v = ir.Null()
	case total == 1 && order[0].cat != dom.Element:
		v = order[0].vals[0]
	default:
		kvs := make([]ir.KeyVal, 0, len(order))
		for _, g := range order {
			if counts[g.name] > 1 {
				kvs = append(kvs, ir.KeyVal{Key: g.name, Val: ir.FromSlice(g.vals)})
			} else {
				kvs = append(kvs, ir.KeyVal{Key: g.name, Val: g.vals[0]})
			}
		}
		v = reconcile(ir.FromKeyVals(kvs), counts, s)
	}

	if s.Attributes && len(el.Attr) > 0 {
		v = attachAttributes(v, el.Attr, s)
	}
	return v, nil
}

// countChildren tallies readable children per normalized name. Textual
// content counts at most twice: whitespace runs between child elements
// arrive as text nodes and must not inflate its weight.
func countChildren(el *etree.Element, s *Settings) map[string]int {
	counts := map[string]int{}
	for _, tok := range el.Child {
		name, cat := dom.Classify(tok)
		switch {
		case cat == dom.Unsupported:
			s.Logger.Warn("Unsupported node type, ignoring",
				zap.String("parent", el.FullTag()),
				zap.String("node", fmt.Sprintf("%T", tok)))
		case !readable(cat, s):
		case cat == dom.Text && counts[name] >= 2:
		default:
			counts[name]++
		}
	}
	return counts
}

func readable(cat dom.Category, s *Settings) bool {
	switch cat {
	case dom.Element, dom.Text:
		return true
	default:
		return s.SpecialNodes
	}
}

func leafValue(payload string, s *Settings) *ir.Node {
	payload = strings.TrimSpace(payload)
	if s.CoerceScalars {
		return Coerce(payload)
	}
	return ir.FromString(payload)
}

// attachAttributes hangs the attribute map off v, promoting a bare
// value into a map with a content field first.
func attachAttributes(v *ir.Node, attrs []etree.Attr, s *Settings) *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(attrs))
	for _, a := range attrs {
		kvs = append(kvs, ir.KeyVal{Key: dom.AttrName(a), Val: leafValue(a.Value, s)})
	}
	am := ir.FromKeyVals(kvs)
	switch {
	case v == nil || v.Type == ir.NullType:
		return ir.FromKeyVals([]ir.KeyVal{{Key: ir.AttributeKey, Val: am}})
	case v.Type == ir.ObjectType:
		v.Set(ir.AttributeKey, am)
		return v
	default:
		return ir.FromKeyVals([]ir.KeyVal{
			{Key: ir.ContentKey, Val: v},
			{Key: ir.AttributeKey, Val: am},
		})
	}
}
