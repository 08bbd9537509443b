package eval

import (
	"os"

	"github.com/expr-lang/expr"

	"github.com/structml/go-structml/ir"
)

func baseFuncs() []expr.Option {
	return []expr.Option{
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

// docFuncs adds the document functions available when an expression
// runs against a node in a tree.
func docFuncs(doc *ir.Node) []expr.Option {
	return append(baseFuncs(),
		expr.Function("whereami", func(params ...any) (any, error) {
			return doc.Path(), nil
		},
			new(func() string)),
		expr.Function("getpath", func(params ...any) (any, error) {
			path := params[0].(string)
			res, err := doc.Root().GetPath(path)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
			new(func(string) *ir.Node)),
		expr.Function("listpath", func(params ...any) (any, error) {
			path := params[0].(string)
			res, err := doc.Root().ListPath(nil, path)
			if err != nil {
				return nil, err
			}
			return res, nil
		},
			new(func(string) []*ir.Node)),
	)
}
