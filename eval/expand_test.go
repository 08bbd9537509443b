package eval

import (
	"encoding/json"
	"testing"

	"github.com/structml/go-structml/ir"
)

func fromJSON(t *testing.T, s string) *ir.Node {
	t.Helper()
	v, err := ir.FromJSON([]byte(s))
	if err != nil {
		t.Fatalf("FromJSON(%s): %v", s, err)
	}
	return v
}

func toJSON(t *testing.T, v *ir.Node) string {
	t.Helper()
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestExpandString(t *testing.T) {
	env := Env{"a": "x", "n": 21, "obj": map[string]any{"k": 1}}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "no expression", in: "hello", want: "hello"},
		{name: "too short", in: "ab", want: "ab"},
		{name: "dollar form", in: "port $[n]", want: "port 21"},
		{name: "dot form", in: "pre.[a]post", want: "prexpost"},
		{name: "whole string", in: "$[a]", want: "x"},
		{name: "two expressions", in: "$[a]-$[n]", want: "x-21"},
		{name: "arithmetic", in: "n=$[ n + 1 ]", want: "n=22"},
		{name: "comparison", in: "$[n > 1]", want: "true"},
		{name: "escaped bracket", in: `v=$["a\]b"]`, want: "v=a]b"},
		{name: "unclosed stays literal", in: "oops $[n", want: "oops $[n"},
		{name: "object renders as wire", in: "o=$[obj]", want: `o={"k":1}`},
		{name: "plain dot passes", in: "1.5 files", want: "1.5 files"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExpandString(tc.in, env)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("ExpandString(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestExpandStringError(t *testing.T) {
	if _, err := ExpandString("$[1 +]", Env{}); err == nil {
		t.Error("expected compile error")
	}
}

func TestExpandTree(t *testing.T) {
	env := Env{"n": 21, "obj": map[string]any{"k": 1}}
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "interpolation and raw replacement",
			in:   `{"a":".[n * 2]","b":"port $[n]"}`,
			want: `{"a":42,"b":"port 21"}`,
		},
		{
			name: "raw object result",
			in:   `{"x":".[obj]"}`,
			want: `{"x":{"k":1}}`,
		},
		{
			name: "array elements",
			in:   `["$[n]s",".[n]"]`,
			want: `["21s",21]`,
		},
		{
			name: "getpath into the document",
			in:   `{"name":"svc","ref":".[getpath('$.name')]"}`,
			want: `{"name":"svc","ref":"svc"}`,
		},
		{
			name: "listpath collects values",
			in:   `{"ports":[{"p":1},{"p":2}],"all":".[listpath('$.ports[*].p')]"}`,
			want: `{"ports":[{"p":1},{"p":2}],"all":[1,2]}`,
		},
		{
			name: "whereami names the node",
			in:   `{"a":{"b":".[whereami()]"}}`,
			want: `{"a":{"b":"$.a.b"}}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := fromJSON(t, tc.in)
			if err := ExpandTree(doc, env); err != nil {
				t.Fatal(err)
			}
			if got := toJSON(t, doc); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestCondition(t *testing.T) {
	env := Env{"n": 3, "name": "web"}
	cases := []struct {
		name    string
		src     string
		want    bool
		wantErr bool
	}{
		{name: "true", src: "n > 2", want: true},
		{name: "false", src: "n > 5", want: false},
		{name: "combined", src: `name == "web" && n < 10`, want: true},
		{name: "not a bool", src: "n + 1", wantErr: true},
		{name: "bad syntax", src: "n >", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Condition(tc.src, env)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Condition(%q) = %t, want %t", tc.src, got, tc.want)
			}
		})
	}
}

func TestConditionGetenv(t *testing.T) {
	t.Setenv("STRUCTML_COND_TEST", "yes")
	got, err := Condition(`getenv("STRUCTML_COND_TEST") == "yes"`, Env{})
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("expected true")
	}
}
