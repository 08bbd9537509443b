package eval

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/structml/go-structml/debug"
	"github.com/structml/go-structml/ir"
)

// Env holds the variables visible to expressions.
type Env map[string]any

// Condition evaluates src as a boolean expression against env. It is
// the form build overlays use for their "when" clauses.
func Condition(src string, env Env) (bool, error) {
	res, err := run(src, env, nil)
	if err != nil {
		return false, err
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q returned %T, want bool", src, res)
	}
	if debug.Eval() {
		debug.Logf("condition %q gave %t\n", src, b)
	}
	return b, nil
}

// run compiles and evaluates src. getenv is always in scope; the
// document functions (whereami, getpath, listpath) need a node.
func run(src string, env Env, doc *ir.Node) (any, error) {
	opts := baseFuncs()
	if doc != nil {
		opts = docFuncs(doc)
	}
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, err
	}
	return vm.Run(prg, map[string]any(env))
}
