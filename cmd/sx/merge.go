package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	structml "github.com/structml/go-structml"
	"github.com/structml/go-structml/encode"
)

func mergeRun(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: merge requires a base and at least one override", cli.ErrUsage)
	}
	base, err := composeArg(cfg.MainConfig, cc, args[0], true)
	if err != nil {
		return err
	}
	out := base.Tree
	for _, arg := range args[1:] {
		over, err := composeArg(cfg.MainConfig, cc, arg, true)
		if err != nil {
			return err
		}
		out, err = structml.Merge(out, over.Tree, structml.MergeIdentity(cfg.Identity))
		if err != nil {
			return fmt.Errorf("error merging %s: %w", arg, err)
		}
	}
	return encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...)
}
