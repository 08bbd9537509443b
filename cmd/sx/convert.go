package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/structml/go-structml/compose"
	"github.com/structml/go-structml/encode"
)

func convertRun(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	return emitDocs(cfg.MainConfig, cc, args, false)
}

func composeRun(cfg *ComposeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Compose.Parse(cc, args)
	if err != nil {
		return err
	}
	return emitDocs(cfg.MainConfig, cc, args, true)
}

// emitDocs converts each argument, stdin when there are none, and
// writes the results separated by "---".
func emitDocs(cfg *MainConfig, cc *cli.Context, args []string, resolve bool) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		res, err := composeArg(cfg, cc, arg, resolve)
		if err != nil {
			return err
		}
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := encode.Encode(res.Tree, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}

// composeArg converts the XML document named by arg, "-" meaning
// stdin.
func composeArg(cfg *MainConfig, cc *cli.Context, arg string, resolve bool) (*compose.Result, error) {
	if arg == "-" {
		res, err := compose.Reader(cc.In, cfg.composeOpts(resolve)...)
		if err != nil {
			return nil, fmt.Errorf("error composing stdin: %w", err)
		}
		return res, nil
	}
	res, err := compose.File(arg, cfg.composeOpts(resolve)...)
	if err != nil {
		return nil, fmt.Errorf("error composing %s: %w", arg, err)
	}
	return res, nil
}
