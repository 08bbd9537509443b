package composedir

import (
	"fmt"

	"go.uber.org/multierr"

	structml "github.com/structml/go-structml"
	"github.com/structml/go-structml/compose"
	"github.com/structml/go-structml/debug"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/eval"
	"github.com/structml/go-structml/ir"
)

// Overlay is a conditional merge fragment. When gates the overlay on
// the build env, Match restricts it to structurally matching
// documents, and Merge is the fragment merged into each of them.
type Overlay struct {
	When  string `yaml:"when,omitempty" json:"when,omitempty"`
	Match any    `yaml:"match,omitempty" json:"match,omitempty"`
	Merge any    `yaml:"merge,omitempty" json:"merge,omitempty"`
}

// overlay applies every active overlay to every document. A document
// whose merge fails drops out with its error recorded; the rest keep
// going.
func (d *Dir) overlay(docs []*compose.Result) error {
	env := d.evalEnv()
	idOpt := structml.MergeIdentity(d.identityField())
	var errs error
	for j := range d.Overlays {
		ov := &d.Overlays[j]
		if ov.When != "" {
			ok, err := eval.Condition(ov.When, env)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("overlay %d: %w", j, err))
				continue
			}
			if !ok {
				continue
			}
		}
		matchTree, err := overlayTree(ov.Match, env)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("overlay %d match: %w", j, err))
			continue
		}
		mergeTree, err := overlayTree(ov.Merge, env)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("overlay %d merge: %w", j, err))
			continue
		}
		if mergeTree == nil {
			continue
		}
		for i, doc := range docs {
			if doc == nil {
				continue
			}
			if matchTree != nil {
				matched := structml.Matches(doc.Tree, matchTree)
				if debug.Build() {
					debug.Logf("# doc\n%s\n---\n# match\n%s\n---\n# matched\n%t\n",
						encode.MustString(doc.Tree), encode.MustString(matchTree), matched)
				}
				if !matched {
					continue
				}
			}
			out, err := structml.Merge(doc.Tree, mergeTree, idOpt)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("overlay %d doc %d: %w", j, i, err))
				docs[i] = nil
				continue
			}
			if debug.Build() {
				debug.Logf("merged\n%s\n", encode.MustString(out))
			}
			doc.Tree = out
		}
	}
	return errs
}

// overlayTree turns a decoded manifest fragment into a tree and
// expands its expressions.
func overlayTree(v any, env eval.Env) (*ir.Node, error) {
	if v == nil {
		return nil, nil
	}
	node, err := encode.FromAny(v)
	if err != nil {
		return nil, err
	}
	if err := eval.ExpandTree(node, env); err != nil {
		return nil, err
	}
	return node, nil
}
