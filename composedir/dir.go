// Package composedir interprets a build directory: a manifest listing
// document sources to compose, an expression environment, conditional
// overlays, and output settings.
package composedir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/structml/go-structml/convert"
	"github.com/structml/go-structml/debug"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/eval"
	"github.com/structml/go-structml/format"
)

const (
	DefaultSuffix = "-sx"

	// EnvEnv names the process variable holding comma-separated
	// KEY=VAL pairs that override the manifest env.
	EnvEnv = "STRUCTML_BUILD_ENV"
)

// Dir is a loaded build directory.
type Dir struct {
	Root     string         `yaml:"-" json:"-"`
	Suffix   string         `yaml:"suffix,omitempty" json:"suffix,omitempty"`
	DestDir  string         `yaml:"destDir,omitempty" json:"destDir,omitempty"`
	Format   *format.Format `yaml:"format,omitempty" json:"format,omitempty"`
	Convert  *ConvertConfig `yaml:"convert,omitempty" json:"convert,omitempty"`
	Env      map[string]any `yaml:"env,omitempty" json:"env,omitempty"`
	Sources  []Source       `yaml:"sources" json:"sources"`
	Overlays []Overlay      `yaml:"overlays,omitempty" json:"overlays,omitempty"`

	nameCache map[string]int
}

// ConvertConfig carries the conversion settings a manifest may set.
// Pointer fields distinguish "unset" from an explicit false.
type ConvertConfig struct {
	ItemTag         string `yaml:"itemTag,omitempty" json:"itemTag,omitempty"`
	IdentityField   string `yaml:"identityField,omitempty" json:"identityField,omitempty"`
	MaxDepth        int    `yaml:"maxDepth,omitempty" json:"maxDepth,omitempty"`
	Attributes      *bool  `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	SpecialNodes    *bool  `yaml:"specialNodes,omitempty" json:"specialNodes,omitempty"`
	CoerceScalars   *bool  `yaml:"coerceScalars,omitempty" json:"coerceScalars,omitempty"`
	UniformArrays   *bool  `yaml:"uniformArrays,omitempty" json:"uniformArrays,omitempty"`
	RootOnly        *bool  `yaml:"rootOnly,omitempty" json:"rootOnly,omitempty"`
	ResolveIncludes *bool  `yaml:"resolveIncludes,omitempty" json:"resolveIncludes,omitempty"`
}

func (c *ConvertConfig) options() []convert.ConvertOption {
	if c == nil {
		return nil
	}
	var opts []convert.ConvertOption
	if c.ItemTag != "" {
		opts = append(opts, convert.ItemTag(c.ItemTag))
	}
	if c.IdentityField != "" {
		opts = append(opts, convert.IdentityField(c.IdentityField))
	}
	if c.MaxDepth != 0 {
		opts = append(opts, convert.MaxDepth(c.MaxDepth))
	}
	if c.Attributes != nil {
		opts = append(opts, convert.Attributes(*c.Attributes))
	}
	if c.SpecialNodes != nil {
		opts = append(opts, convert.SpecialNodes(*c.SpecialNodes))
	}
	if c.CoerceScalars != nil {
		opts = append(opts, convert.CoerceScalars(*c.CoerceScalars))
	}
	if c.UniformArrays != nil {
		opts = append(opts, convert.UniformArrays(*c.UniformArrays))
	}
	if c.RootOnly != nil {
		opts = append(opts, convert.RootOnly(*c.RootOnly))
	}
	return opts
}

type manifest struct {
	Build *Dir `yaml:"build" json:"build"`
}

// OpenDir loads the build manifest of path, trying build.yaml then
// build.json, and prepares the expression environment.
func OpenDir(path string) (*Dir, error) {
	for _, base := range []string{"build.yaml", "build.json"} {
		mPath := filepath.Join(path, base)
		d, err := os.ReadFile(mPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("could not read %q: %w", mPath, err)
		}
		return newDir(d, path, strings.HasSuffix(base, ".json"))
	}
	return nil, fmt.Errorf("could not find build.{yaml,json} in %q", path)
}

func newDir(d []byte, path string, isJSON bool) (*Dir, error) {
	m := &manifest{}
	if isJSON {
		if err := json.Unmarshal(d, m); err != nil {
			return nil, fmt.Errorf("could not decode manifest: %w", err)
		}
	} else {
		if err := yaml.UnmarshalWithOptions(d, m, yaml.UseOrderedMap()); err != nil {
			return nil, fmt.Errorf("could not decode manifest: %w", err)
		}
	}
	dir := m.Build
	if dir == nil {
		return nil, fmt.Errorf("manifest has no build section")
	}
	dir.Root = path
	if dir.Suffix == "" {
		dir.Suffix = DefaultSuffix
	}
	if err := dir.initEnv(); err != nil {
		return nil, err
	}
	dir.nameCache = map[string]int{}
	return dir, nil
}

// initEnv normalizes manifest env values to plain Go values and folds
// in the STRUCTML_BUILD_ENV overrides.
func (d *Dir) initEnv() error {
	env := make(map[string]any, len(d.Env))
	for k, v := range d.Env {
		node, err := encode.FromAny(v)
		if err != nil {
			return fmt.Errorf("bad env value %q: %w", k, err)
		}
		env[k] = eval.ToAny(node)
	}
	over, err := envOverrides(os.Getenv(EnvEnv))
	if err != nil {
		return err
	}
	for k, v := range over {
		env[k] = v
	}
	d.Env = env
	if debug.Build() {
		debug.Logf("loaded env %v\n", d.Env)
	}
	return nil
}

// envOverrides parses comma-separated KEY=VAL pairs. Values go through
// scalar coercion, so K=3 is a number and K=true a bool.
func envOverrides(s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}
	res := map[string]any{}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad $%s entry %q, want KEY=VAL", EnvEnv, pair)
		}
		switch v {
		case "true", "false":
			res[k] = v == "true"
		default:
			res[k] = eval.ToAny(convert.Coerce(v))
		}
	}
	return res, nil
}

func (d *Dir) evalEnv() eval.Env {
	return eval.Env(d.Env)
}

func (d *Dir) identityField() string {
	return convert.GetSettings(d.Convert.options()...).IdentityField
}
