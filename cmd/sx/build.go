package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/structml/go-structml/composedir"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/eval"
)

func buildRun(cfg *BuildConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Build.Parse(cc, args)
	if err != nil {
		return err
	}
	args, err = parseEnvExtras(cfg, cc, args)
	if err != nil {
		return err
	}
	dirPath := "."
	if len(args) != 0 {
		dirPath = args[0]
	}
	dir, err := composedir.OpenDir(dirPath)
	if err != nil {
		return err
	}
	foldEnv(dir.Env, cfg.Env)
	if cfg.ShowEnv {
		env, err := encode.FromAny(dir.Env)
		if err != nil {
			return err
		}
		return encode.Encode(env, cc.Out, cfg.encOpts(cc.Out)...)
	}
	if cfg.Out != "" {
		// an explicit output file overrides the manifest destination
		dir.DestDir = ""
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return dir.Build(ctx, cc.Out, cfg.encOpts(cc.Out)...)
}

// parseEnvExtras consumes trailing "-- key=val..." arguments as
// environment settings.
func parseEnvExtras(cfg *BuildConfig, cc *cli.Context, args []string) ([]string, error) {
	delim := -1
	for i, arg := range args {
		if arg == "--" {
			delim = i
			break
		}
	}
	if delim == -1 {
		return args, nil
	}
	f := envOptTypeFunc(cfg.Env)
	ret := args[:delim]
	delim++
	for delim < len(args) {
		arg := args[delim]
		delim++
		if _, err := f(cc, arg); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func envOptTypeFunc(env map[string]any) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		if err := envFunc(env, a); err != nil {
			return nil, err
		}
		return 0, nil
	}
}

// envFunc sets one dotted path in env from a key=val argument. Values
// decode as YAML, so quoting distinguishes the string "3" from the
// number 3.
func envFunc(env map[string]any, a string) error {
	key, val, ok := strings.Cut(a, "=")
	if !ok {
		return fmt.Errorf("%w: argument %q expected key=val", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return err
	}
	node, err := encode.FromAny(v)
	if err != nil {
		return err
	}
	parts := strings.Split(key, ".")
	n := len(parts)
	tmpEnv := env
	for i, part := range parts {
		if i == n-1 {
			tmpEnv[part] = eval.ToAny(node)
			break
		}
		next := tmpEnv[part]
		if next == nil {
			next = map[string]any{}
			tmpEnv[part] = next
		}
		nextEnv, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot access %s, list or scalar", strings.Join(parts[:i+1], "."))
		}
		tmpEnv = nextEnv
	}
	return nil
}

// foldEnv lays src over dst, descending into objects present on both
// sides so a nested override keeps its siblings.
func foldEnv(dst, src map[string]any) {
	for k, v := range src {
		sm, sok := v.(map[string]any)
		dm, dok := dst[k].(map[string]any)
		if sok && dok {
			foldEnv(dm, sm)
			continue
		}
		dst[k] = v
	}
}
