package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/structml/go-structml/compose"
	"github.com/structml/go-structml/convert"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/format"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='output in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output in yaml'"`
	T bool `cli:"name=t aliases=tree desc='output as a tree'"`

	Wire   bool `cli:"name=wire desc='compact single-line json'"`
	Color  bool `cli:"name=color desc='color tree output'"`
	Indent int  `cli:"name=indent desc='json indent width'"`
	Debug  bool `cli:"name=debug desc='attach causes to conversion errors and log warnings'"`

	ItemTag  string `cli:"name=item desc='element name unwrapped as a list item'"`
	Identity string `cli:"name=id aliases=identity desc='identity field of keyed sequences'"`
	MaxDepth int    `cli:"name=depth desc='conversion depth bound, 0 means unbounded'"`

	NoAttrs   bool `cli:"name=noAttrs desc='drop element attributes'"`
	NoSpecial bool `cli:"name=noSpecial desc='drop comments, CDATA and declarations'"`
	NoCoerce  bool `cli:"name=noCoerce desc='keep scalar payloads as strings'"`
	NoFill    bool `cli:"name=noFill desc='keep object sequences as parsed, without shape filling'"`
	WithRoot  bool `cli:"name=withRoot desc='key the result by the root tag'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	var f format.Format
	switch {
	case cfg.J:
		f = format.JSONFormat
	case cfg.Y:
		f = format.YAMLFormat
	case cfg.T:
		f = format.TreeFormat
	}
	if cfg.OutFormat != nil {
		f = *cfg.OutFormat
	}
	return f
}

func (cfg *MainConfig) convertOpts() []convert.ConvertOption {
	return []convert.ConvertOption{
		convert.ItemTag(cfg.ItemTag),
		convert.IdentityField(cfg.Identity),
		convert.MaxDepth(cfg.MaxDepth),
		convert.Attributes(!cfg.NoAttrs),
		convert.SpecialNodes(!cfg.NoSpecial),
		convert.CoerceScalars(!cfg.NoCoerce),
		convert.UniformArrays(!cfg.NoFill),
		convert.RootOnly(!cfg.WithRoot),
		convert.DebugMode(cfg.Debug),
		convert.Logger(cfg.logger()),
	}
}

func (cfg *MainConfig) composeOpts(resolve bool) []compose.ComposeOption {
	return []compose.ComposeOption{
		compose.ConvertWith(cfg.convertOpts()...),
		compose.ResolveIncludes(resolve),
	}
}

func (cfg *MainConfig) logger() *zap.Logger {
	if !cfg.Debug {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.EncodeWire(cfg.Wire),
		encode.Indent(cfg.Indent),
	}
	if cfg.Color {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return res
	}
	f, ok := w.(*os.File)
	if !ok {
		return res
	}
	if isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
		return res
	}
	return res
}

type ConvertConfig struct {
	*MainConfig

	Convert *cli.Command
}

type ComposeConfig struct {
	*MainConfig

	Compose *cli.Command
}

type MergeConfig struct {
	*MainConfig

	Merge *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='suppress output, report by exit status only'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	String     bool `cli:"name=s desc='patch argument is the patch text'"`
	MergePatch bool `cli:"name=m aliases=merge desc='apply as an RFC 7386 merge patch'"`

	Patch *cli.Command
}

type MatchConfig struct {
	*MainConfig
	File bool `cli:"name=f desc='pattern argument is a file path'"`

	Match *cli.Command
}

type ViewConfig struct {
	*MainConfig
	In   string `cli:"name=I aliases=ifmt desc='input format for stdin: json/j, yaml/y'"`
	Path string `cli:"name=path desc='render only the value at this path'"`
	All  bool   `cli:"name=all desc='with -path, collect every match as an array'"`

	View *cli.Command
}

type BuildConfig struct {
	*MainConfig
	Env map[string]any

	ShowEnv bool `cli:"name=s aliases=show desc='show the build environment'"`

	Build *cli.Command
}
