// Package eval evaluates expressions embedded in trees and build
// manifests.
//
// Strings may interpolate expressions with "$[...]" or replace
// themselves wholesale with ".[...]". Build overlays gate themselves
// with boolean conditions via Condition.
//
// # Related Packages
//
//   - github.com/structml/go-structml/composedir - build directories
//   - github.com/structml/go-structml/ir - the tree representation
package eval
