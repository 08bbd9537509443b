// Package dom classifies parsed XML tokens and normalizes their names
// into safe value-tree keys.
//
// # Usage
//
//	name, cat := dom.Classify(tok)
//	switch cat {
//	case dom.Element:
//	    // recurse
//	case dom.Text:
//	    payload := dom.Payload(tok)
//	}
//
// # Related Packages
//
//   - github.com/structml/go-structml/convert - Builds value trees from classified tokens
package dom
