package encode

import "github.com/structml/go-structml/format"

// EncState carries the resolved rendering options.
type EncState struct {
	format format.Format
	indent int
	wire   bool

	Color func(Colorable, string) string
}

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// Indent sets the indent width for JSON output. Default 2.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeWire renders compact single line output where the format
// supports it.
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
