// Package format names the output forms a value tree renders to.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//
//	// or from a file name
//	f = format.FromPath("out.yaml")
//
// # Related Packages
//
//   - github.com/structml/go-structml/encode - render trees in a Format
package format
