// Package compose turns whole XML documents into value trees and
// resolves include declarations between them.
//
// A document's root element converts through package convert. The
// composer captures top level comments, processing instructions and
// document type declarations, and either returns the root value alone
// or, with RootOnly disabled, nests it under the root tag beside the
// captured text.
//
// A converted root carrying an INCLUDE field names a base document.
// The base composes first (recursively, with cycle detection along the
// chain), the OVERRIDE fragment merges onto it by identity, and any
// remaining sibling fields merge last.
//
// # Usage
//
//	res, err := compose.File("deploy.xml",
//		compose.ConvertWith(convert.IdentityField("id")),
//	)
//	if err != nil {
//		...
//	}
//	_ = res.Tree
package compose
