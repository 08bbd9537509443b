package structml

import (
	"testing"
)

type matchTest struct {
	in      string
	pattern string
	res     bool
}

var matchTests = []matchTest{
	{
		in:      `1`,
		pattern: `1`,
		res:     true,
	},
	{
		in:      `0`,
		pattern: `1`,
		res:     false,
	},
	{
		in:      `1.5`,
		pattern: `1.5`,
		res:     true,
	},
	{
		in:      `1`,
		pattern: `1.0`,
		res:     false,
	},
	{
		in:      `[1]`,
		pattern: `[1]`,
		res:     true,
	},
	{
		in:      `[]`,
		pattern: `[]`,
		res:     true,
	},
	{
		in:      `[1]`,
		pattern: `[2]`,
		res:     false,
	},
	{
		in:      `[1,2]`,
		pattern: `[1]`,
		res:     false,
	},
	{
		in:      `[1]`,
		pattern: `"hello"`,
		res:     false,
	},
	{
		in:      `{"a":"b","c":"d"}`,
		pattern: `{"a":"b"}`,
		res:     true,
	},
	{
		in:      `{"a":"b"}`,
		pattern: `{"a":"b","c":"d"}`,
		res:     false,
	},
	{
		in:      `{"a":"b"}`,
		pattern: `null`,
		res:     true,
	},
	{
		in:      `{"a":{"b":[1,2]}}`,
		pattern: `{"a":{"b":[1,2]}}`,
		res:     true,
	},
	{
		in:      `{"name":"web","port":80}`,
		pattern: `{"name":"web","port":null}`,
		res:     true,
	},
	{
		in:      `{"name":"web"}`,
		pattern: `{"name":"web","port":null}`,
		res:     false,
	},
	{
		in:      `true`,
		pattern: `false`,
		res:     false,
	},
}

func TestMatches(t *testing.T) {
	for i, mt := range matchTests {
		doc := fromJSON(t, mt.in)
		pattern := fromJSON(t, mt.pattern)
		if got := Matches(doc, pattern); got != mt.res {
			t.Errorf("test %d: Matches(%s, %s) = %t, want %t",
				i, mt.in, mt.pattern, got, mt.res)
		}
	}
}
