// Package convert turns parsed XML elements into value trees.
//
// The conversion is recursive and name driven. Child nodes group under
// their normalized names, repeated names become sequences in document
// order, and an element with a single textual child collapses to that
// payload. Textual payloads pass through a numeric coercion heuristic
// (see Coerce), and freshly built maps pass through shape
// reconciliation: structs of parallel arrays transpose into arrays of
// records, anonymous item wrappers unwrap, stray whitespace content is
// trimmed, and heterogeneous object sequences fill to a shared field
// set.
//
// # Usage
//
//	doc := etree.NewDocument()
//	if err := doc.ReadFromFile("conf.xml"); err != nil {
//		...
//	}
//	v, err := convert.Element(doc.Root(), convert.ItemTag("li"))
//
// Element converts one element; document level concerns such as the
// root wrapper, top level special nodes and include resolution live in
// package compose.
//
// # Related Packages
//
// Package dom classifies raw XML tokens and normalizes names. Package
// ir defines the value tree. Package compose drives whole documents
// through this package.
package convert
