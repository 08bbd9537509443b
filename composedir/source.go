package composedir

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"go.uber.org/multierr"

	"github.com/structml/go-structml/compose"
	"github.com/structml/go-structml/eval"
)

const fetchTimeout = 10 * time.Second

// IgnoreFile lists glob patterns a dir source skips, one YAML list
// per directory.
const IgnoreFile = ".sxignore"

// Source names one place documents come from. Exactly one of the
// fields should be set.
type Source struct {
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	Dir  string `yaml:"dir,omitempty" json:"dir,omitempty"`
	URL  string `yaml:"url,omitempty" json:"url,omitempty"`
	Exec string `yaml:"exec,omitempty" json:"exec,omitempty"`
}

// fetch loads all sources. Failing sources contribute errors without
// blocking the rest.
func (d *Dir) fetch(ctx context.Context) ([]*compose.Result, error) {
	res := []*compose.Result{}
	env := d.evalEnv()
	opts := d.composeOptions()
	var errs error
	for i := range d.Sources {
		src := &d.Sources[i]
		docs, err := src.Fetch(ctx, d.Root, env, opts)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("source %d: %w", i, err))
			continue
		}
		res = append(res, docs...)
	}
	return res, errs
}

func (d *Dir) composeOptions() []compose.ComposeOption {
	opts := []compose.ComposeOption{
		compose.ConvertWith(d.Convert.options()...),
		compose.BaseDir(d.Root),
	}
	if d.Convert != nil && d.Convert.ResolveIncludes != nil {
		opts = append(opts, compose.ResolveIncludes(*d.Convert.ResolveIncludes))
	}
	return opts
}

// Fetch loads the source's documents. Paths, URLs, and commands may
// interpolate $[...] expressions against env.
func (s *Source) Fetch(ctx context.Context, root string, env eval.Env, opts []compose.ComposeOption) ([]*compose.Result, error) {
	switch {
	case s.File != "":
		path, err := eval.ExpandString(s.File, env)
		if err != nil {
			return nil, fmt.Errorf("error expanding path %q: %w", s.File, err)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		res, err := compose.File(path, opts...)
		if err != nil {
			return nil, err
		}
		return []*compose.Result{res}, nil
	case s.Dir != "":
		path, err := eval.ExpandString(s.Dir, env)
		if err != nil {
			return nil, fmt.Errorf("error expanding path %q: %w", s.Dir, err)
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		walker := newSourceWalker(opts)
		if err := filepath.WalkDir(path, walker.walk); err != nil {
			return nil, err
		}
		return walker.results, nil
	case s.URL != "":
		url, err := eval.ExpandString(s.URL, env)
		if err != nil {
			return nil, fmt.Errorf("error expanding url %q: %w", s.URL, err)
		}
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("url %s gave %d/%s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		res, err := compose.Reader(resp.Body, opts...)
		if err != nil {
			return nil, err
		}
		return []*compose.Result{res}, nil
	case s.Exec != "":
		cmdStr, err := eval.ExpandString(s.Exec, env)
		if err != nil {
			return nil, fmt.Errorf("error expanding command %q: %w", s.Exec, err)
		}
		cmdArgV := strings.Fields(cmdStr)
		if len(cmdArgV) == 0 {
			return nil, fmt.Errorf("invalid command %q (after env %q)", cmdStr, s.Exec)
		}
		ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
		defer cancel()
		cmd := exec.CommandContext(ctx, cmdArgV[0], cmdArgV[1:]...)
		cmd.Dir = root
		out := bytes.NewBuffer(nil)
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, err
		}
		res, err := compose.Reader(out, opts...)
		if err != nil {
			return nil, err
		}
		return []*compose.Result{res}, nil
	default:
		return nil, nil
	}
}

type sourceWalker struct {
	ignore  map[string]bool
	opts    []compose.ComposeOption
	results []*compose.Result
}

func newSourceWalker(opts []compose.ComposeOption) *sourceWalker {
	return &sourceWalker{
		opts:   opts,
		ignore: map[string]bool{},
	}
}

func (w *sourceWalker) walk(path string, info fs.DirEntry, err error) error {
	if err != nil {
		return err
	}
	if w.ignore[path] {
		if info.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	for ignore := range w.ignore {
		m, _ := filepath.Match(ignore, path)
		if !m {
			continue
		}
		if info.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	if info.IsDir() {
		ignorePath := filepath.Join(path, IgnoreFile)
		_, err := os.Stat(ignorePath)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := w.readIgnore(path, ignorePath); err != nil {
			return err
		}
		w.ignore[ignorePath] = true
		return nil
	}
	if !strings.HasSuffix(path, ".xml") {
		return nil
	}
	res, err := compose.File(path, w.opts...)
	if err != nil {
		return fmt.Errorf("error fetching from %s: %w", path, err)
	}
	w.results = append(w.results, res)
	return nil
}

func (w *sourceWalker) readIgnore(path, ignorePath string) error {
	d, err := os.ReadFile(ignorePath)
	if err != nil {
		return err
	}
	ignores := []string{}
	if err := yaml.Unmarshal(d, &ignores); err != nil {
		return fmt.Errorf("error decoding %s: %w", ignorePath, err)
	}
	for _, ignore := range ignores {
		pat := filepath.Join(path, ignore)
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("illegal ignore pattern %q in %s: %w", ignore, ignorePath, err)
		}
		w.ignore[pat] = true
	}
	return nil
}
