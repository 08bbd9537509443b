// Package structml converts XML configuration documents into ordered
// value trees and operates on them.
//
// The root package carries the tree level operations: Merge combines
// trees with identity keyed sequence pairing, Diff reports changes
// between trees, Matches tests trees against structural patterns, and
// ApplyPatch and MergePatch bridge to JSON patch semantics. Conversion
// itself lives in package convert, whole document
// handling and include resolution in package compose, rendering in
// package encode, and the tree type in package ir.
package structml
