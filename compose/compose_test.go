package compose

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/structml/go-structml/convert"
	"github.com/structml/go-structml/ir"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func treeJSON(t *testing.T, v *ir.Node) string {
	t.Helper()
	d, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(d)
}

func TestFileResolvesInclude(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"base.xml": `<config>
			<servers>
				<item><name>a</name><port>1</port></item>
				<item><name>b</name><port>2</port></item>
			</servers>
			<region>us</region>
		</config>`,
		"main.xml": `<config>
			<INCLUDE>base.xml</INCLUDE>
			<OVERRIDE>
				<servers>
					<item><name>b</name><port>20</port></item>
					<item><name>c</name><port>30</port></item>
				</servers>
			</OVERRIDE>
		</config>`,
	})
	res, err := File(filepath.Join(dir, "main.xml"))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := `{"servers":[{"name":"a","port":1},{"name":"b","port":20},{"name":"c","port":30}],"region":"us"}`
	if got := treeJSON(t, res.Tree); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	if res.RootName != "config" {
		t.Errorf("root name %q", res.RootName)
	}
}

func TestIncludeChain(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"l0.xml": `<c><a>1</a><b>1</b><z>1</z></c>`,
		"l1.xml": `<c><INCLUDE>l0.xml</INCLUDE><OVERRIDE><b>2</b></OVERRIDE></c>`,
		"l2.xml": `<c><INCLUDE>l1.xml</INCLUDE><OVERRIDE><z>3</z></OVERRIDE></c>`,
	})
	res, err := File(filepath.Join(dir, "l2.xml"))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := `{"a":1,"b":2,"z":3}`
	if got := treeJSON(t, res.Tree); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestIncludeSiblingsMergeLast(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"base.xml": `<c><a>1</a><b>1</b></c>`,
		"main.xml": `<c><INCLUDE>base.xml</INCLUDE><b>5</b></c>`,
	})
	res, err := File(filepath.Join(dir, "main.xml"))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := `{"a":1,"b":5}`
	if got := treeJSON(t, res.Tree); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestIncludeCycle(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.xml": `<c><INCLUDE>b.xml</INCLUDE></c>`,
		"b.xml": `<c><INCLUDE>a.xml</INCLUDE></c>`,
	})
	_, err := File(filepath.Join(dir, "a.xml"))
	if !errors.Is(err, ErrIncludeCycle) {
		t.Fatalf("want ErrIncludeCycle, got %v", err)
	}
}

func TestIncludeMissing(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.xml": `<c><INCLUDE>gone.xml</INCLUDE></c>`,
	})
	_, err := File(filepath.Join(dir, "a.xml"))
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("want ErrSourceUnreadable, got %v", err)
	}
}

func TestResolveDisabled(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.xml": `<c><INCLUDE>gone.xml</INCLUDE></c>`,
	})
	res, err := File(filepath.Join(dir, "a.xml"), ResolveIncludes(false))
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	want := `{"INCLUDE":"gone.xml"}`
	if got := treeJSON(t, res.Tree); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestReaderCapturesDocumentParts(t *testing.T) {
	src := `<?xml version="1.0"?>
<?xml-stylesheet href="s.css"?>
<!DOCTYPE note>
<!--top note-->
<note><to>you</to></note>`
	res, err := Reader(strings.NewReader(src), ConvertWith(convert.RootOnly(false)))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if res.RootName != "note" || res.Comment != "top note" ||
		res.ProcInst != `xml-stylesheet href="s.css"` || res.DocType != "DOCTYPE note" {
		t.Fatalf("parts: %+v", res)
	}
	want := `{"COMMENT":"top note","PROCESSING_INSTRUCTION":"xml-stylesheet href=\"s.css\"","DOCUMENT_TYPE":"DOCTYPE note","note":{"to":"you"}}`
	if got := treeJSON(t, res.Tree); got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestReaderRootOnly(t *testing.T) {
	res, err := Reader(strings.NewReader(`<!--c--><note><to>you</to></note>`))
	if err != nil {
		t.Fatalf("Reader: %v", err)
	}
	if got, want := treeJSON(t, res.Tree), `{"to":"you"}`; got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
	// captured even though not in the tree
	if res.Comment != "c" {
		t.Errorf("comment %q", res.Comment)
	}
}

func TestReaderUnreadable(t *testing.T) {
	_, err := Reader(strings.NewReader(`<a><b></a>`))
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("want ErrSourceUnreadable, got %v", err)
	}
}
