package eval

import (
	"reflect"
	"testing"

	"github.com/structml/go-structml/ir"
)

func TestToAny(t *testing.T) {
	node := fromJSON(t, `{"a":[1,2.5,"x",true,null],"b":{"c":"d"}}`)
	want := map[string]any{
		"a": []any{int64(1), 2.5, "x", true, nil},
		"b": map[string]any{"c": "d"},
	}
	got := ToAny(node)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToAny = %#v, want %#v", got, want)
	}
}

func TestFromAny(t *testing.T) {
	node, err := FromAny(map[string]any{"k": []any{1, "s"}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := toJSON(t, node), `{"k":[1,"s"]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFromAnyDetachesNodes(t *testing.T) {
	doc := fromJSON(t, `{"a":{"b":1}}`)
	inner := ir.Get(doc, "a")
	res, err := FromAny(inner)
	if err != nil {
		t.Fatal(err)
	}
	if res.Parent != nil {
		t.Error("result should be detached")
	}
	if got, want := toJSON(t, res), `{"b":1}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
