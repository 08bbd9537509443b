// Package ir defines the value tree produced by converting XML documents.
//
// # Overview
//
// A converted document is a tree of ir.Node values. Nodes represent the
// normalized, schema-less shape of the source document: scalars for
// textual payloads, objects for elements with named children, arrays for
// repeated children. The tree carries no position information from the
// source document, making it purely semantic and readily representable in
// JSON and YAML.
//
// # Node Structure
//
// A Node is a recursive tagged union. The Type field selects which of the
// remaining fields carry the value:
//
//   - NullType: null value (absent or empty element)
//   - BoolType: boolean (true/false)
//   - NumberType: numeric value (int64 or float64)
//   - StringType: string value
//   - ArrayType: ordered list of nodes
//   - ObjectType: key-value pairs (fields and values)
//
// For ObjectType nodes, Fields[i] is the key node for the value at
// Values[i], so there are always as many fields as values. Field nodes
// are string typed. Insertion order is preserved for emission; lookup is
// by key.
//
// Number values are placed under:
//
//   - Int64: if the value is an integer (64-bit signed)
//   - Float64: if the value is a floating point number
//   - Number: as a string fallback when neither representation fits
//
// Each node maintains parent linkage (Parent, ParentIndex, ParentField),
// allowing navigation and path rendering with Path().
//
// # Reserved Keys
//
// Conversion produces a small set of reserved field names, all uppercase:
// ContentKey holds the textual payload of an element that also carries
// attributes or non-uniform children; AttributeKey holds the attribute
// map; CommentKey, CDataKey, ProcInstKey and DocTypeKey hold the payloads
// of special node types. IncludeKey and OverrideKey drive document
// composition.
//
// # Creating Nodes
//
// Use constructor functions to create nodes:
//
//	node := ir.FromString("hello")
//	num := ir.FromInt(42)
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: "key", Val: ir.FromString("value")},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// FromKeyVals preserves the given order; FromMap sorts keys and exists
// for constructing fixtures from Go maps.
//
// # Comparison
//
// Nodes compare with a total order:
//
//	equal := ir.Compare(a, b) == 0
//
// # JSON Interoperability
//
// Nodes marshal to their natural JSON form with field order preserved,
// and FromJSON decodes JSON bytes back into a tree without reordering
// object fields. NaN and infinities have no JSON representation and
// encode as null.
//
// # Thread Safety
//
// Node structures are not thread-safe. A tree is private to its
// conversion until returned; clone nodes when sharing across goroutines.
//
// # Related Packages
//
//   - github.com/structml/go-structml/convert - Converts XML DOM into trees
//   - github.com/structml/go-structml/compose - Include/override composition
//   - github.com/structml/go-structml/encode - Encodes trees to JSON/YAML
package ir
