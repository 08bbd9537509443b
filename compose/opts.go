package compose

import (
	"github.com/structml/go-structml/convert"
)

type composeOpts struct {
	conv    []convert.ConvertOption
	baseDir string
	resolve bool
}

// ComposeOption configures composition.
type ComposeOption func(*composeOpts)

// ConvertWith appends conversion options applied to every document in
// the include chain.
func ConvertWith(opts ...convert.ConvertOption) ComposeOption {
	return func(o *composeOpts) {
		o.conv = append(o.conv, opts...)
	}
}

// BaseDir sets the directory relative include paths resolve against
// when the source has no path of its own (Document, Reader). Default
// ".". File always resolves against the file's directory.
func BaseDir(dir string) ComposeOption {
	return func(o *composeOpts) {
		o.baseDir = dir
	}
}

// ResolveIncludes controls whether include declarations are resolved.
// Default true; disabled they pass through as ordinary fields.
func ResolveIncludes(v bool) ComposeOption {
	return func(o *composeOpts) {
		o.resolve = v
	}
}
