package treediff

import (
	"testing"

	"github.com/google/go-cmp/cmp"

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

func changeStrings(chs []Change) []string {
	if len(chs) == 0 {
		return nil
	}
	out := make([]string, len(chs))
	for i, ch := range chs {
		out[i] = ch.String()
	}
	return out
}

func TestDiff(t *testing.T) {
	tcs := []struct {
		name string
		from string
		to   string
		opts []DiffOption
		want []string
	}{
		{
			name: "identical",
			from: `{"a":1,"b":[1,2]}`,
			to:   `{"a":1,"b":[1,2]}`,
			want: nil,
		},
		{
			name: "scalar modify",
			from: `{"a":1}`,
			to:   `{"a":2}`,
			want: []string{"modify $.a"},
		},
		{
			name: "field add and delete",
			from: `{"a":1}`,
			to:   `{"b":1}`,
			want: []string{"delete $.a", "add $.b"},
		},
		{
			name: "moved field is no change",
			from: `{"a":1,"b":2}`,
			to:   `{"b":2,"a":1}`,
			want: nil,
		},
		{
			name: "moved and modified",
			from: `{"a":1,"b":2}`,
			to:   `{"b":2,"a":9}`,
			want: []string{"modify $.a"},
		},
		{
			name: "nested path",
			from: `{"s":{"x":1}}`,
			to:   `{"s":{"x":2}}`,
			want: []string{"modify $.s.x"},
		},
		{
			name: "container type change",
			from: `{"a":[1]}`,
			to:   `{"a":1}`,
			want: []string{"modify $.a"},
		},
		{
			name: "array element removed",
			from: `[1,2,3]`,
			to:   `[1,3]`,
			want: []string{"delete $[1]"},
		},
		{
			name: "array element inserted",
			from: `[1,3]`,
			to:   `[1,2,3]`,
			want: []string{"add $[1]"},
		},
		{
			name: "array element changed in place",
			from: `[{"x":1}]`,
			to:   `[{"x":2}]`,
			want: []string{"modify $[0].x"},
		},
		{
			name: "keyed records",
			from: `[{"name":"a","v":1},{"name":"b","v":2}]`,
			to:   `[{"name":"b","v":2},{"name":"c","v":3}]`,
			want: []string{"delete $[name=a]", "add $[name=c]"},
		},
		{
			name: "keyed record modified",
			from: `[{"name":"a","v":1}]`,
			to:   `[{"name":"a","v":2}]`,
			want: []string{"modify $[name=a].v"},
		},
		{
			name: "custom identity",
			from: `[{"id":1,"v":"x"}]`,
			to:   `[{"id":1,"v":"y"}]`,
			opts: []DiffOption{DiffIdentity("id")},
			want: []string{"modify $[id=1].v"},
		},
		{
			name: "partially keyed falls back to positional",
			from: `[{"name":"a"},{"v":1}]`,
			to:   `[{"name":"a"},{"v":2}]`,
			want: []string{"modify $[1].v"},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := changeStrings(Diff(fromJSON(t, tc.from), fromJSON(t, tc.to), tc.opts...))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("changes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffValues(t *testing.T) {
	chs := Diff(fromJSON(t, `{"a":1}`), fromJSON(t, `{"a":"x"}`))
	if len(chs) != 1 {
		t.Fatalf("want one change, got %v", chs)
	}
	ch := chs[0]
	if ch.From == nil || ch.From.Int64 == nil || *ch.From.Int64 != 1 {
		t.Errorf("from: %+v", ch.From)
	}
	if ch.To == nil || ch.To.String != "x" {
		t.Errorf("to: %+v", ch.To)
	}
}
