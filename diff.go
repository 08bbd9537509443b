package structml

import (
	"github.com/structml/go-structml/ir"
	"github.com/structml/go-structml/treediff"
)

// Change is a single edit reported by Diff.
type Change = treediff.Change

// Diff reports the changes that turn from into to. Sequence elements
// pair by the same identity field Merge uses.
func Diff(from, to *ir.Node, opts ...treediff.DiffOption) []Change {
	return treediff.Diff(from, to, opts...)
}
