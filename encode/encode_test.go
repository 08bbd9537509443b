package encode

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/structml/go-structml/format"
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

func TestEncodeJSON(t *testing.T) {
	node := fromJSON(t, `{"a":1,"b":[true,null]}`)
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": 1,
  "b": [
    true,
    null
  ]
}
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEncodeJSONWire(t *testing.T) {
	node := fromJSON(t, `{"a":1,"b":[true,null]}`)
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeWire(true)); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), `{"a":1,"b":[true,null]}`+"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	const src = `{"z":1,"a":{"m":"x","b":[1,2.5,"s"]},"list":[{"name":"n"},null,true]}`
	node := fromJSON(t, src)
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeYAML(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	d, err := json.Marshal(back)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != src {
		t.Errorf("round trip changed tree:\ngot  %s\nwant %s", d, src)
	}
}

func TestDecodeYAMLKeepsOrder(t *testing.T) {
	v, err := DecodeYAML([]byte("z: 1\na: 2\nm: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(d), `{"z":1,"a":2,"m":3}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestEncodeTree(t *testing.T) {
	node := fromJSON(t, `{"servers":[{"name":"a"}],"on":true,"empty":{}}`)
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, EncodeFormat(format.TreeFormat)); err != nil {
		t.Fatal(err)
	}
	want := ".\n" +
		"├─ servers:\n" +
		"│  └─ [0]\n" +
		"│     └─ name: a\n" +
		"├─ on: true\n" +
		"└─ empty: {}\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEncodeTreeScalarRoot(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(ir.FromString("hi there"), buf, EncodeFormat(format.TreeFormat)); err != nil {
		t.Fatal(err)
	}
	if got, want := buf.String(), "hi there\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMustString(t *testing.T) {
	got := MustString(fromJSON(t, `{"a":1}`), EncodeWire(true))
	if want := `{"a":1}`; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
