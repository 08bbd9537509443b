package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"

	structml "github.com/structml/go-structml"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/ir"
	"github.com/structml/go-structml/treediff"
)

func diffRun(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %d", cli.ErrUsage, len(args))
	}
	from, err := composeArg(cfg.MainConfig, cc, args[0], true)
	if err != nil {
		return err
	}
	to, err := composeArg(cfg.MainConfig, cc, args[1], true)
	if err != nil {
		return err
	}
	changes := structml.Diff(from.Tree, to.Tree, treediff.DiffIdentity(cfg.Identity))
	if len(changes) == 0 {
		return nil
	}
	if !cfg.Quiet {
		tree, err := changeTree(changes)
		if err != nil {
			return err
		}
		if err := encode.Encode(tree, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return cli.ExitCodeErr(1)
}

// changeTree rebuilds a change list as a value tree so it renders in
// any output format.
func changeTree(changes []structml.Change) (*ir.Node, error) {
	d, err := json.Marshal(changes)
	if err != nil {
		return nil, err
	}
	return ir.FromJSON(d)
}
