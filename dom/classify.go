package dom

import (
	"github.com/beevik/etree"

	"github.com/structml/go-structml/ir"
)

// Classify returns the normalized name and category of one DOM token.
// Elements take their (namespace-qualified) tag name through
// NormalizeName; leaf categories take the reserved key they are stored
// under. Token kinds outside the known set classify as Unsupported with
// an empty name.
func Classify(tok etree.Token) (string, Category) {
	switch t := tok.(type) {
	case *etree.Element:
		return NormalizeName(t.FullTag()), Element
	case *etree.CharData:
		if t.IsCData() {
			return ir.CDataKey, CDATASection
		}
		return ir.ContentKey, Text
	case *etree.Comment:
		return ir.CommentKey, Comment
	case *etree.ProcInst:
		return ir.ProcInstKey, ProcessingInstruction
	case *etree.Directive:
		return ir.DocTypeKey, DocumentType
	}
	return "", Unsupported
}

// Payload returns the textual payload of a leaf token. Processing
// instructions prefix their target name to the instruction body.
func Payload(tok etree.Token) string {
	switch t := tok.(type) {
	case *etree.CharData:
		return t.Data
	case *etree.Comment:
		return t.Data
	case *etree.ProcInst:
		if t.Inst == "" {
			return t.Target
		}
		return t.Target + " " + t.Inst
	case *etree.Directive:
		return t.Data
	case *etree.Element:
		return t.Text()
	}
	return ""
}

// AttrName returns the normalized key for an attribute, qualified with
// its namespace prefix when present.
func AttrName(a etree.Attr) string {
	return NormalizeName(a.FullKey())
}
