package composedir

import (
	"bufio"
	"context"
	"io"

	"go.uber.org/multierr"

	"github.com/structml/go-structml/compose"
	"github.com/structml/go-structml/encode"
)

// Build fetches every source, applies the overlays, and writes the
// results: to per-document files under destDir when set, otherwise to
// w separated by "---" lines. Failures are collected per source and
// per document; surviving documents still come out, and the combined
// error reports everything that went wrong.
func (d *Dir) Build(ctx context.Context, w io.Writer, opts ...encode.EncodeOption) error {
	docs, errs := d.fetch(ctx)
	errs = multierr.Append(errs, d.overlay(docs))
	bw := bufio.NewWriter(w)
	errs = multierr.Append(errs, d.write(bw, docs, opts...))
	return multierr.Append(errs, bw.Flush())
}

// Results fetches and overlays without writing, for callers that want
// the composed documents themselves.
func (d *Dir) Results(ctx context.Context) ([]*compose.Result, error) {
	docs, errs := d.fetch(ctx)
	errs = multierr.Append(errs, d.overlay(docs))
	j := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		docs[j] = doc
		j++
	}
	return docs[:j], errs
}
