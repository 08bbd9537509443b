package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	structml "github.com/structml/go-structml"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/ir"
)

func matchRun(cfg *MatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Match.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: match requires a pattern argument", cli.ErrUsage)
	}
	pattern, err := patternTree(cfg, cc, args[0])
	if err != nil {
		return err
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	matched := 0
	for _, arg := range files {
		res, err := composeArg(cfg.MainConfig, cc, arg, true)
		if err != nil {
			return err
		}
		if !structml.Matches(res.Tree, pattern) {
			continue
		}
		if matched > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		matched++
		if err := encode.Encode(res.Tree, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	if matched == 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// patternTree decodes the pattern argument, by default literal JSON or
// YAML text, with -f the name of a file holding it.
func patternTree(cfg *MatchConfig, cc *cli.Context, arg string) (*ir.Node, error) {
	d := []byte(arg)
	if cfg.File {
		var err error
		if arg == "-" {
			d, err = io.ReadAll(cc.In)
		} else {
			d, err = os.ReadFile(arg)
		}
		if err != nil {
			return nil, fmt.Errorf("error reading pattern: %w", err)
		}
	}
	p, err := encode.DecodeYAML(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding pattern: %w", err)
	}
	return p, nil
}
