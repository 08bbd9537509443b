package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/format"
	"github.com/structml/go-structml/ir"
)

func viewRun(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, arg := range args {
		if i > 0 {
			if _, err := cc.Out.Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := viewArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func viewArg(cfg *ViewConfig, cc *cli.Context, arg string) error {
	doc, err := readStructured(cfg, cc, arg)
	if err != nil {
		return err
	}
	if cfg.Path != "" {
		doc, err = atPath(cfg, doc)
		if err != nil {
			return fmt.Errorf("error resolving %s in %s: %w", cfg.Path, arg, err)
		}
		if doc == nil {
			// nothing at the path, nothing to render
			return nil
		}
	}
	opts := cfg.encOpts(cc.Out)
	if cfg.OutFormat == nil && !cfg.J && !cfg.Y && !cfg.T {
		opts = append(opts, encode.EncodeFormat(format.TreeFormat))
	}
	return encode.Encode(doc, cc.Out, opts...)
}

func atPath(cfg *ViewConfig, doc *ir.Node) (*ir.Node, error) {
	path := cfg.Path
	if path[0] != '$' {
		path = "$" + path
	}
	if cfg.All {
		res, err := doc.ListPath(nil, path)
		if err != nil {
			return nil, err
		}
		return ir.FromSlice(res), nil
	}
	return doc.GetPath(path)
}

// readStructured decodes a JSON or YAML document, picking the decoder
// from the file suffix. Stdin defaults to JSON.
func readStructured(cfg *ViewConfig, cc *cli.Context, arg string) (*ir.Node, error) {
	var (
		r io.Reader
		f format.Format
	)
	if arg == "-" {
		r = cc.In
		f = format.JSONFormat
	} else {
		file, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer file.Close()
		r = file
		f = format.FromPath(arg)
	}
	if cfg.In != "" {
		pf, err := format.ParseFormat(cfg.In)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		f = pf
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	if f.IsYAML() {
		return encode.DecodeYAML(d)
	}
	return encode.DecodeJSON(d)
}
