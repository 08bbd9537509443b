package structml

import (
	"testing"
)

func TestApplyPatch(t *testing.T) {
	doc := fromJSON(t, `{"a":1,"b":[1,2]}`)
	out, err := ApplyPatch(doc, []byte(`[
		{"op":"replace","path":"/a","value":5},
		{"op":"add","path":"/b/-","value":3}
	]`))
	if err != nil {
		t.Fatalf("ApplyPatch: %v", err)
	}
	if got, want := toJSON(t, out), `{"a":5,"b":[1,2,3]}`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestApplyPatchBadOp(t *testing.T) {
	doc := fromJSON(t, `{"a":1}`)
	if _, err := ApplyPatch(doc, []byte(`[{"op":"replace","path":"/missing","value":1}]`)); err == nil {
		t.Fatal("want error for replace on missing path")
	}
}

func TestMergePatch(t *testing.T) {
	doc := fromJSON(t, `{"a":1,"b":2}`)
	out, err := MergePatch(doc, []byte(`{"b":null,"c":3}`))
	if err != nil {
		t.Fatalf("MergePatch: %v", err)
	}
	if got, want := toJSON(t, out), `{"a":1,"c":3}`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}
