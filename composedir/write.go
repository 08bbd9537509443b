package composedir

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/structml/go-structml/compose"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/format"
	"github.com/structml/go-structml/ir"
)

func (d *Dir) write(w io.Writer, docs []*compose.Result, opts ...encode.EncodeOption) error {
	if d.DestDir != "" {
		dest := d.destPath()
		st, err := os.Stat(dest)
		if err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		} else if !st.IsDir() {
			return fmt.Errorf("%s exists but is not a directory", dest)
		}
	}
	j := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		docs[j] = doc
		j++
	}
	docs = docs[:j]
	var errs error
	n := len(docs)
	for i, doc := range docs {
		if err := d.writeOut(w, doc, i, n, opts...); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("doc %d: %w", i, err))
		}
	}
	return errs
}

func (d *Dir) writeOut(w io.Writer, res *compose.Result, j, n int, opts ...encode.EncodeOption) error {
	eOpts := append([]encode.EncodeOption{encode.EncodeFormat(d.format())}, opts...)
	// caller options may override the manifest format; the file suffix
	// must follow whatever actually gets encoded
	wc, err := d.writeCloser(w, res, encode.FormatFromOpts(eOpts...))
	if err != nil {
		return err
	}
	defer wc.Close()
	if err := encode.Encode(res.Tree, wc, eOpts...); err != nil {
		return err
	}
	if d.DestDir == "" && j != n-1 {
		// doc separator
		_, err = wc.Write([]byte("---\n"))
		return err
	}
	return nil
}

func (d *Dir) format() format.Format {
	if d.Format != nil {
		return *d.Format
	}
	return format.JSONFormat
}

func (d *Dir) destPath() string {
	if filepath.IsAbs(d.DestDir) {
		return d.DestDir
	}
	return filepath.Join(d.Root, d.DestDir)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func (d *Dir) writeCloser(w io.Writer, res *compose.Result, f format.Format) (io.WriteCloser, error) {
	if d.DestDir == "" {
		return nopWriteCloser{Writer: w}, nil
	}
	fn := docName(res, d.identityField())
	n := d.nameCache[fn]
	d.nameCache[fn] = n + 1
	if n != 0 {
		fn += "-" + strconv.Itoa(n)
	}
	fn += d.Suffix + f.Suffix()
	fp := filepath.Join(d.destPath(), fn)
	file, err := os.OpenFile(fp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	return &wc{f: file, w: bufio.NewWriter(file)}, nil
}

type wc struct {
	f *os.File
	w *bufio.Writer
}

func (w *wc) Write(d []byte) (int, error) {
	return w.w.Write(d)
}

func (w *wc) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.f.Close()
}

// docName derives an output file base name from the document's root
// element and, for objects, its identity field value.
func docName(res *compose.Result, identityField string) string {
	base := res.RootName
	if base == "" {
		base = "doc"
	}
	if res.Tree == nil || res.Tree.Type != ir.ObjectType {
		return base
	}
	id := ir.Get(res.Tree, identityField)
	if id == nil {
		return base
	}
	idStr := scalarName(id)
	if idStr == "" {
		return base
	}
	return base + "-" + idStr
}

func scalarName(v *ir.Node) string {
	var s string
	switch v.Type {
	case ir.StringType:
		s = v.String
	case ir.NumberType:
		switch {
		case v.Int64 != nil:
			s = strconv.FormatInt(*v.Int64, 10)
		case v.Float64 != nil:
			s = strconv.FormatFloat(*v.Float64, 'g', -1, 64)
		default:
			s = v.Number
		}
	case ir.BoolType:
		s = strconv.FormatBool(v.Bool)
	default:
		return ""
	}
	return sanitizeName(s)
}

func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}
