// Package encode renders value trees as text.
//
// # Usage
//
//	// Indented JSON, the default
//	err := encode.Encode(node, os.Stdout)
//
//	// YAML, field order preserved
//	err := encode.Encode(node, os.Stdout, encode.EncodeFormat(format.YAMLFormat))
//
//	// Colored tree view for terminals
//	err := encode.Encode(node, os.Stdout,
//		encode.EncodeFormat(format.TreeFormat),
//		encode.EncodeColors(encode.NewColors()),
//	)
//
// DecodeJSON and DecodeYAML read trees back, preserving field order.
//
// # Related Packages
//
//   - github.com/structml/go-structml/ir - the tree representation
//   - github.com/structml/go-structml/format - format names
package encode
