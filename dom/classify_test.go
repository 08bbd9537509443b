package dom

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/structml/go-structml/ir"
)

func TestClassify(t *testing.T) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	src := `<?xml version="1.0"?>
<!DOCTYPE root>
<!-- top comment -->
<ns:root attr="v">
  text
  <![CDATA[raw]]>
  <?pi do it?>
</ns:root>`
	if err := doc.ReadFromString(src); err != nil {
		t.Fatalf("read: %v", err)
	}
	root := doc.Root()
	if root == nil {
		t.Fatalf("no root")
	}

	name, cat := Classify(root)
	if cat != Element || name != "ns_COLON_root" {
		t.Errorf("root classified as (%q, %s)", name, cat)
	}

	var sawText, sawCData, sawPI bool
	for _, tok := range root.Child {
		name, cat := Classify(tok)
		switch cat {
		case Text:
			if name != ir.ContentKey {
				t.Errorf("text name = %q", name)
			}
			sawText = true
		case CDATASection:
			if name != ir.CDataKey {
				t.Errorf("cdata name = %q", name)
			}
			if Payload(tok) != "raw" {
				t.Errorf("cdata payload = %q", Payload(tok))
			}
			sawCData = true
		case ProcessingInstruction:
			if name != ir.ProcInstKey {
				t.Errorf("pi name = %q", name)
			}
			if Payload(tok) != "pi do it" {
				t.Errorf("pi payload = %q", Payload(tok))
			}
			sawPI = true
		}
	}
	if !sawText || !sawCData || !sawPI {
		t.Errorf("missing categories: text=%v cdata=%v pi=%v", sawText, sawCData, sawPI)
	}

	var sawComment, sawDoctype bool
	for _, tok := range doc.Child {
		switch _, cat := Classify(tok); cat {
		case Comment:
			sawComment = true
		case DocumentType:
			sawDoctype = true
		}
	}
	if !sawComment || !sawDoctype {
		t.Errorf("document tokens: comment=%v doctype=%v", sawComment, sawDoctype)
	}
}

func TestCategoryLeaf(t *testing.T) {
	for _, c := range []Category{Text, Comment, CDATASection, ProcessingInstruction, DocumentType} {
		if !c.IsLeaf() {
			t.Errorf("%s.IsLeaf() = false", c)
		}
	}
	if Element.IsLeaf() {
		t.Errorf("Element.IsLeaf() = true")
	}
	if Unsupported.IsLeaf() {
		t.Errorf("Unsupported.IsLeaf() = true")
	}
}
