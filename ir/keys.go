package ir

// Reserved field names produced by conversion and recognized during
// composition. They hold payloads that have no element name of their own.
const (
	// ContentKey holds the textual payload of an element that also has
	// attributes or multiple non-uniform children.
	ContentKey = "CONTENT"
	// AttributeKey holds a nested object with one entry per attribute.
	AttributeKey = "ATTRIBUTE"

	CommentKey  = "COMMENT"
	CDataKey    = "CDATA_SECTION"
	ProcInstKey = "PROCESSING_INSTRUCTION"
	DocTypeKey  = "DOCUMENT_TYPE"

	// IncludeKey names a base document to pull in; OverrideKey holds the
	// local fragment merged on top of it.
	IncludeKey  = "INCLUDE"
	OverrideKey = "OVERRIDE"
)
