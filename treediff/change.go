package treediff

import (
	"fmt"

	"github.com/structml/go-structml/ir"
)

// Kind classifies a change.
type Kind int

const (
	Add Kind = iota
	Delete
	Modify
)

var kindStrings = map[Kind]string{
	Add:    "add",
	Delete: "delete",
	Modify: "modify",
}

var stringKinds = map[string]Kind{
	"add":    Add,
	"delete": Delete,
	"modify": Modify,
}

func (k Kind) String() string {
	s, ok := kindStrings[k]
	if !ok {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return s
}

func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindStrings[k]
	if !ok {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(s), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	v, ok := stringKinds[string(d)]
	if !ok {
		return fmt.Errorf("invalid kind %q", string(d))
	}
	*k = v
	return nil
}

// Change is one edit in a change list. From is nil for additions, To is
// nil for deletions, and both are set for modifications.
type Change struct {
	Path string   `json:"path"`
	Kind Kind     `json:"kind"`
	From *ir.Node `json:"from,omitempty"`
	To   *ir.Node `json:"to,omitempty"`
}

func (c Change) String() string {
	return fmt.Sprintf("%s %s", c.Kind, c.Path)
}
