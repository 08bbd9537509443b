package debug

import (
	"fmt"
	"testing"

	"github.com/structml/go-structml/ir"
)

// Tree is what callers hand to Logf's %s verbs in place of a raw
// node, which has no String method.
func TestTreeString(t *testing.T) {
	n := ir.FromKeyVals([]ir.KeyVal{
		{Key: "a", Val: ir.FromInt(1)},
	})
	want := "{\n  \"a\": 1\n}\n"
	if got := (Tree{Node: n}).String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := fmt.Sprintf("%s", Tree{Node: n}); got != want {
		t.Errorf("via %%s: got %q, want %q", got, want)
	}
}
