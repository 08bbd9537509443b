package format

import "testing"

func TestParseFormat(t *testing.T) {
	tcs := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: JSONFormat},
		{in: "j", want: JSONFormat},
		{in: "yaml", want: YAMLFormat},
		{in: "y", want: YAMLFormat},
		{in: "tree", want: TreeFormat},
		{in: "t", want: TreeFormat},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tcs {
		f, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
			continue
		}
		if f != tc.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tc.in, f, tc.want)
		}
	}
}

func TestFromPath(t *testing.T) {
	tcs := []struct {
		path string
		want Format
	}{
		{"out.json", JSONFormat},
		{"out.yaml", YAMLFormat},
		{"out.YML", YAMLFormat},
		{"out.tree", TreeFormat},
		{"out", JSONFormat},
	}
	for _, tc := range tcs {
		if got := FromPath(tc.path); got != tc.want {
			t.Errorf("FromPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestFormatTextRoundTrip(t *testing.T) {
	for _, f := range AllFormats() {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatalf("%v: %v", f, err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		if g != f {
			t.Errorf("round trip %v != %v", g, f)
		}
	}
}
