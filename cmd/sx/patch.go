package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	structml "github.com/structml/go-structml"
	"github.com/structml/go-structml/encode"
)

func patchRun(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: patch requires a document and a patch", cli.ErrUsage)
	}
	doc, err := composeArg(cfg.MainConfig, cc, args[0], true)
	if err != nil {
		return err
	}
	p, err := patchBytes(cfg, cc, args[1])
	if err != nil {
		return err
	}
	out := doc.Tree
	if cfg.MergePatch {
		out, err = structml.MergePatch(out, p)
	} else {
		out, err = structml.ApplyPatch(out, p)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", args[0], err)
	}
	return encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...)
}

func patchBytes(cfg *PatchConfig, cc *cli.Context, arg string) ([]byte, error) {
	if cfg.String {
		return []byte(arg), nil
	}
	if arg == "-" {
		return io.ReadAll(cc.In)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading patch %s: %w", arg, err)
	}
	return d, nil
}
