package convert

import (
	"go.uber.org/zap"

	"github.com/structml/go-structml/dom"
)

// Settings holds the resolved conversion options. Zero values are not
// meaningful defaults; use GetSettings or the option constructors.
type Settings struct {
	ItemTag       string
	Attributes    bool
	SpecialNodes  bool
	CoerceScalars bool
	UniformArrays bool
	MaxDepth      int
	RootOnly      bool
	IdentityField string
	DebugMode     bool
	Logger        *zap.Logger
}

func defaultSettings() *Settings {
	return &Settings{
		ItemTag:       "item",
		Attributes:    true,
		SpecialNodes:  true,
		CoerceScalars: true,
		UniformArrays: true,
		MaxDepth:      0,
		RootOnly:      true,
		IdentityField: "name",
		Logger:        zap.NewNop(),
	}
}

// GetSettings resolves a list of options against the defaults. Callers
// that drive conversion and merging from one option list (compose, the
// command line) use it to read the applied values.
func GetSettings(opts ...ConvertOption) *Settings {
	s := defaultSettings()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// itemKey is the item tag after element-name normalization, which is
// what converted field names carry.
func (s *Settings) itemKey() string {
	return dom.NormalizeName(s.ItemTag)
}

// ConvertOption configures a conversion.
type ConvertOption func(*Settings)

// ItemTag sets the element name treated as an anonymous list item
// wrapper. Default "item".
func ItemTag(tag string) ConvertOption {
	return func(s *Settings) {
		s.ItemTag = tag
	}
}

// Attributes controls whether element attributes are read. Default true.
func Attributes(v bool) ConvertOption {
	return func(s *Settings) {
		s.Attributes = v
	}
}

// SpecialNodes controls whether comments, CDATA sections, processing
// instructions and document type declarations are read. Default true.
func SpecialNodes(v bool) ConvertOption {
	return func(s *Settings) {
		s.SpecialNodes = v
	}
}

// CoerceScalars controls numeric coercion of textual payloads. Default
// true.
func CoerceScalars(v bool) ConvertOption {
	return func(s *Settings) {
		s.CoerceScalars = v
	}
}

// UniformArrays controls filling heterogeneous object sequences to a
// shared field set. Default true.
func UniformArrays(v bool) ConvertOption {
	return func(s *Settings) {
		s.UniformArrays = v
	}
}

// MaxDepth bounds the recursion depth; nodes deeper than d are treated
// as absent. Zero means unbounded, the default.
func MaxDepth(d int) ConvertOption {
	return func(s *Settings) {
		s.MaxDepth = d
	}
}

// RootOnly controls whether document composition yields the root
// element's value alone, or a map keyed by the root tag alongside any
// captured top-level special nodes. Default true.
func RootOnly(v bool) ConvertOption {
	return func(s *Settings) {
		s.RootOnly = v
	}
}

// IdentityField sets the field that identifies elements of keyed
// sequences during merging. Default "name".
func IdentityField(name string) ConvertOption {
	return func(s *Settings) {
		s.IdentityField = name
	}
}

// DebugMode attaches underlying causes to conversion errors instead of
// collapsing them into one generic message. Default false.
func DebugMode(v bool) ConvertOption {
	return func(s *Settings) {
		s.DebugMode = v
	}
}

// Logger sets the logger used for non-fatal conversion warnings.
// Default is a no-op logger.
func Logger(log *zap.Logger) ConvertOption {
	return func(s *Settings) {
		s.Logger = log
	}
}
