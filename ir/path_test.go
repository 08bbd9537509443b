package ir

import (
	"encoding/json"
	"testing"
)

func testDoc(t *testing.T, src string) *Node {
	t.Helper()
	v, err := FromJSON([]byte(src))
	if err != nil {
		t.Fatalf("FromJSON(%s): %v", src, err)
	}
	return v
}

func TestParsePathString(t *testing.T) {
	for _, path := range []string{
		"$",
		"$.a",
		"$.a[0].b",
		"$[*].port",
		"$[name=web].port",
		"$..name",
		"$.'a.b'",
	} {
		p, err := ParsePath(path)
		if err != nil {
			t.Errorf("ParsePath(%q): %v", path, err)
			continue
		}
		if got := p.String(); got != path {
			t.Errorf("ParsePath(%q).String() = %q", path, got)
		}
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, path := range []string{"", "a.b", "$.a[", "$.a[x]", "$.a[=v]", "$!"} {
		if _, err := ParsePath(path); err == nil {
			t.Errorf("ParsePath(%q): expected error", path)
		}
	}
}

func TestGetPath(t *testing.T) {
	doc := testDoc(t, `{"servers":[{"name":"a","port":1},{"name":"b","port":2}],"on":true}`)
	cases := []struct {
		name string
		path string
		want string
	}{
		{name: "root", path: "$", want: `{"servers":[{"name":"a","port":1},{"name":"b","port":2}],"on":true}`},
		{name: "field", path: "$.on", want: "true"},
		{name: "index", path: "$.servers[1].port", want: "2"},
		{name: "keyed", path: "$.servers[name=b].port", want: "2"},
		{name: "missing field", path: "$.off", want: ""},
		{name: "missing key", path: "$.servers[name=c]", want: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := doc.GetPath(tc.path)
			if err != nil {
				t.Fatal(err)
			}
			if res == nil {
				if tc.want != "" {
					t.Fatalf("GetPath(%q) = nil, want %s", tc.path, tc.want)
				}
				return
			}
			d, err := json.Marshal(res)
			if err != nil {
				t.Fatal(err)
			}
			if string(d) != tc.want {
				t.Errorf("GetPath(%q) = %s, want %s", tc.path, d, tc.want)
			}
		})
	}
}

func TestGetPathErrors(t *testing.T) {
	doc := testDoc(t, `{"a":[1,2]}`)
	for _, path := range []string{"$.a[*]", "$..a", "$.a[5]", "$.a.b", "$[0]"} {
		if _, err := doc.GetPath(path); err == nil {
			t.Errorf("GetPath(%q): expected error", path)
		}
	}
}

func TestListPath(t *testing.T) {
	doc := testDoc(t, `{"a":{"name":"x"},"b":[{"name":"y"},{"name":"z"}],"name":"w"}`)
	cases := []struct {
		name string
		path string
		want []string
	}{
		{name: "all elements", path: "$.b[*].name", want: []string{`"y"`, `"z"`}},
		{name: "subtree", path: "$..name", want: []string{`"w"`, `"x"`, `"y"`, `"z"`}},
		{name: "keyed", path: "$.b[name=z]", want: []string{`{"name":"z"}`}},
		{name: "no match", path: "$.b[*].port", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := doc.ListPath(nil, tc.path)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, v := range res {
				d, err := json.Marshal(v)
				if err != nil {
					t.Fatal(err)
				}
				got = append(got, string(d))
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ListPath(%q) = %v, want %v", tc.path, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("ListPath(%q)[%d] = %s, want %s", tc.path, i, got[i], tc.want[i])
				}
			}
		})
	}
}
