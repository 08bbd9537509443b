package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: 2, ItemTag: "item", Identity: "name"}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y, tree/t",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "sx").
		WithSynopsis("sx [opts] command [opts]").
		WithDescription("sx is a tool for working with XML configuration as value trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sxMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			ComposeCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg),
			MatchCommand(cfg),
			ViewCommand(cfg),
			BuildCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "co").
		WithSynopsis("convert [files]").
		WithDescription("convert XML documents into value trees, includes untouched").
		WithRun(func(cc *cli.Context, args []string) error {
			return convertRun(cfg, cc, args)
		})
}

func ComposeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ComposeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Compose, "compose").
		WithAliases("cm", "comp").
		WithSynopsis("compose [files]").
		WithDescription("convert XML documents and resolve their includes and overrides").
		WithRun(func(cc *cli.Context, args []string) error {
			return composeRun(cfg, cc, args)
		})
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Merge, "merge").
		WithAliases("m", "me").
		WithSynopsis("merge base.xml override.xml [more.xml...]").
		WithDescription("merge composed documents, later arguments override earlier ones").
		WithRun(func(cc *cli.Context, args []string) error {
			return mergeRun(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff a.xml b.xml").
		WithDescription("diff two composed documents, exit 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diffRun(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p", "pa").
		WithSynopsis("patch [opts] doc.xml patch.json").
		WithDescription("apply an RFC 6902 patch to a composed document").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patchRun(cfg, cc, args)
		})
}

func MatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Match, "match").
		WithAliases("ma").
		WithSynopsis("match [opts] <pattern> [files]").
		WithDescription("print composed documents matching a pattern, exit 1 when none do").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return matchRun(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [opts] [files]").
		WithDescription("render structured JSON or YAML files, as a tree by default").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return viewRun(cfg, cc, args)
		})
}

func BuildCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BuildConfig{MainConfig: mainCfg, Env: map[string]any{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "e",
		Description: "set a build environment value",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(envOptTypeFunc(cfg.Env)), "(path=val)"),
	})
	return cli.NewCommandAt(&cfg.Build, "build").
		WithAliases("b").
		WithSynopsis("build [dir] [-e path=val]... [-- key=val...]").
		WithDescription(buildDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return buildRun(cfg, cc, args)
		})
}

const buildDescription = `build composes a directory of document sources.

Build operates on a build directory, which defaults to the current
directory. It looks for a manifest called 'build.yaml' or 'build.json'
in the following form:

  build:
    # destDir is an optional output directory. Without it results
    # stream to the command output, separated by '---'.
    destDir: out

    # format of the written results: json, yaml or tree.
    format: yaml

    # env declares the variables the manifest's expressions can use.
    env:
      region: us
      replicas: 3

    # sources say what to compose: files, directories searched for
    # XML documents, URLs, or the output of commands.
    sources:
    - file: base.xml
    - dir: services
    - url: https://example.com/shared.xml
    - exec: generate-config --region $[region]

    # overlays conditionally merge fragments into matching documents.
    overlays:
    - when: region == "us"
      match: {name: gateway}
      merge: {port: 8080}

Build then
1. initialises its environment
2. fetches and composes every source document
3. applies each overlay to the documents it matches
4. writes the results to destDir or the command output

Environment

The environment can be set in three ways
1. in the manifest 'env:' field
2. using '-e path=val' or trailing '-- key1=val1 key2=val2 ...'
3. in the process variable STRUCTML_BUILD_ENV as 'K=V,K2=V2'

Later settings take precedence over earlier ones. Run with -s to show
the resolved environment.`
