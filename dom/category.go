package dom

import "fmt"

// Category is the normalized kind of one DOM token.
type Category int

const (
	Unsupported Category = iota
	Element
	Text
	Comment
	CDATASection
	ProcessingInstruction
	DocumentType
)

func (c Category) String() string {
	s, ok := map[Category]string{
		Unsupported:           "Unsupported",
		Element:               "Element",
		Text:                  "Text",
		Comment:               "Comment",
		CDATASection:          "CDATASection",
		ProcessingInstruction: "ProcessingInstruction",
		DocumentType:          "DocumentType",
	}[c]
	if ok {
		return s
	}
	return "<unknown category>"
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(d []byte) error {
	cc, ok := map[string]Category{
		"Unsupported":           Unsupported,
		"Element":               Element,
		"Text":                  Text,
		"Comment":               Comment,
		"CDATASection":          CDATASection,
		"ProcessingInstruction": ProcessingInstruction,
		"DocumentType":          DocumentType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized category %q", d)
	}
	*c = cc
	return nil
}

// IsLeaf reports whether the category carries only textual payload.
func (c Category) IsLeaf() bool {
	return c != Element && c != Unsupported
}
