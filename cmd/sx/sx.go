package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
)

func sxMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	rest, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if flags := cfg.formatFlags(); len(flags) > 1 {
		return fmt.Errorf("%w: %s conflict, set one output format",
			cli.ErrUsage, strings.Join(flags, " "))
	}
	if len(rest) == 0 {
		return cli.ErrNoCommandProvided
	}
	return dispatch(cfg.Main, cc, rest)
}

// dispatch runs the named subcommand. On a usage error it prints that
// subcommand's usage, so "sx merge" alone explains merge rather than
// sx.
func dispatch(main *cli.Command, cc *cli.Context, args []string) error {
	sub := main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q", cli.ErrNoSuchCommand, args[0])
	}
	err := sub.Run(cc, args[1:])
	if !errors.Is(err, cli.ErrUsage) {
		return err
	}
	sub.Usage(cc, err)
	os.Exit(sub.Exit(cc, err))
	return nil
}

// formatFlags lists the output format selectors that were set, so the
// at-most-one check can name the offenders.
func (cfg *MainConfig) formatFlags() []string {
	var set []string
	if cfg.J {
		set = append(set, "-j")
	}
	if cfg.Y {
		set = append(set, "-y")
	}
	if cfg.T {
		set = append(set, "-t")
	}
	return set
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.Create(a)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}
