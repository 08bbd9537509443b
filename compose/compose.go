package compose

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	structml "github.com/structml/go-structml"
	"github.com/structml/go-structml/convert"
	"github.com/structml/go-structml/debug"
	"github.com/structml/go-structml/dom"
	"github.com/structml/go-structml/ir"
)

// Result is a composed document: the value tree plus the parts of the
// source that live outside the root element.
type Result struct {
	Tree     *ir.Node
	RootName string
	Comment  string
	ProcInst string
	DocType  string
}

// File reads, converts and composes the document at path. Relative
// include paths resolve against the file's directory.
func File(path string, opts ...ComposeOption) (*Result, error) {
	c := newComposer(opts...)
	p, err := c.loadParts(path)
	if err != nil {
		return nil, err
	}
	return c.result(p), nil
}

// Reader converts and composes a document from r. Relative include
// paths resolve against the configured base directory.
func Reader(r io.Reader, opts ...ComposeOption) (*Result, error) {
	c := newComposer(opts...)
	doc := newDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	p, err := c.parts(doc, c.o.baseDir)
	if err != nil {
		return nil, err
	}
	return c.result(p), nil
}

// Document composes an already parsed document.
func Document(doc *etree.Document, opts ...ComposeOption) (*Result, error) {
	c := newComposer(opts...)
	p, err := c.parts(doc, c.o.baseDir)
	if err != nil {
		return nil, err
	}
	return c.result(p), nil
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	return doc
}

type composer struct {
	o       composeOpts
	s       *convert.Settings
	visited map[string]bool
}

func newComposer(opts ...ComposeOption) *composer {
	o := composeOpts{baseDir: ".", resolve: true}
	for _, opt := range opts {
		opt(&o)
	}
	return &composer{
		o:       o,
		s:       convert.GetSettings(o.conv...),
		visited: map[string]bool{},
	}
}

// docParts is one converted document before final assembly.
type docParts struct {
	value    *ir.Node
	rootName string
	comment  string
	procInst string
	docType  string
}

// loadParts reads and converts one file of the include chain, guarding
// against revisits along the current chain.
func (c *composer) loadParts(path string) (*docParts, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	if c.visited[abs] {
		return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, path)
	}
	c.visited[abs] = true
	defer delete(c.visited, abs)

	doc := newDocument()
	if err := doc.ReadFromFile(abs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, path, err)
	}
	return c.parts(doc, filepath.Dir(abs))
}

// parts captures document level tokens, converts the root element and
// resolves any include declaration. dir anchors relative includes.
func (c *composer) parts(doc *etree.Document, dir string) (*docParts, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: missing root element", ErrSourceUnreadable)
	}
	p := &docParts{rootName: dom.NormalizeName(root.FullTag())}
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Comment:
			if p.comment == "" {
				p.comment = strings.TrimSpace(t.Data)
			}
		case *etree.ProcInst:
			// the XML declaration is not a document instruction
			if t.Target != "xml" && p.procInst == "" {
				p.procInst = strings.TrimSpace(dom.Payload(t))
			}
		case *etree.Directive:
			if p.docType == "" {
				p.docType = strings.TrimSpace(t.Data)
			}
		}
	}
	v, err := convert.Element(root, c.o.conv...)
	if err != nil {
		return nil, err
	}
	v, err = c.resolve(v, dir)
	if err != nil {
		return nil, err
	}
	p.value = v
	return p, nil
}

// resolve replaces an include declaration with the composed base
// document, merged with the local override fragment and any remaining
// sibling fields.
func (c *composer) resolve(v *ir.Node, dir string) (*ir.Node, error) {
	if !c.o.resolve || v.Type != ir.ObjectType {
		return v, nil
	}
	inc := ir.Get(v, ir.IncludeKey)
	if inc == nil {
		return v, nil
	}
	path, ok := includePath(inc)
	if !ok {
		return nil, fmt.Errorf("%w: path is not textual", ErrInclude)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if debug.Include() {
		debug.Logf("including %s\n", path)
	}
	base, err := c.loadParts(path)
	if err != nil {
		return nil, err
	}
	res := base.value
	if over := ir.Get(v, ir.OverrideKey); over != nil {
		res, err = structml.Merge(res, over, structml.MergeIdentity(c.s.IdentityField))
		if err != nil {
			return nil, err
		}
	}
	if rest := stripMarkers(v); rest != nil {
		res, err = structml.Merge(res, rest, structml.MergeIdentity(c.s.IdentityField))
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// stripMarkers returns v's fields besides the include and override
// markers, or nil when none remain.
func stripMarkers(v *ir.Node) *ir.Node {
	kvs := make([]ir.KeyVal, 0, len(v.Fields))
	for i := range v.Fields {
		name := v.Fields[i].String
		if name == ir.IncludeKey || name == ir.OverrideKey {
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: name, Val: v.Values[i]})
	}
	if len(kvs) == 0 {
		return nil
	}
	return ir.FromKeyVals(kvs)
}

// includePath extracts the include target. Coercion may have turned an
// all digit file name into a number; it still names a file.
func includePath(v *ir.Node) (string, bool) {
	switch v.Type {
	case ir.StringType:
		return v.String, v.String != ""
	case ir.NumberType:
		switch {
		case v.Int64 != nil:
			return strconv.FormatInt(*v.Int64, 10), true
		case v.Float64 != nil:
			return strconv.FormatFloat(*v.Float64, 'g', -1, 64), true
		}
		return v.Number, v.Number != ""
	case ir.ObjectType:
		if content := ir.Get(v, ir.ContentKey); content != nil {
			return includePath(content)
		}
	}
	return "", false
}

func (c *composer) result(p *docParts) *Result {
	res := &Result{
		Tree:     p.value,
		RootName: p.rootName,
		Comment:  p.comment,
		ProcInst: p.procInst,
		DocType:  p.docType,
	}
	if c.s.RootOnly {
		return res
	}
	var kvs []ir.KeyVal
	if c.s.SpecialNodes {
		if p.comment != "" {
			kvs = append(kvs, ir.KeyVal{Key: ir.CommentKey, Val: ir.FromString(p.comment)})
		}
		if p.procInst != "" {
			kvs = append(kvs, ir.KeyVal{Key: ir.ProcInstKey, Val: ir.FromString(p.procInst)})
		}
		if p.docType != "" {
			kvs = append(kvs, ir.KeyVal{Key: ir.DocTypeKey, Val: ir.FromString(p.docType)})
		}
	}
	kvs = append(kvs, ir.KeyVal{Key: p.rootName, Val: p.value})
	res.Tree = ir.FromKeyVals(kvs)
	return res
}
