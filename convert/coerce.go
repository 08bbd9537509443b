package convert

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/structml/go-structml/ir"
)

// Coerce converts a trimmed textual payload into a number, a vector of
// numbers or a matrix of numbers when the whole payload reads as
// numeric, and returns it as a string node otherwise.
//
// The decision runs in two stages. A cheap character test first strips
// digits, signs, decimal points, exponent markers, the tokens Inf, NaN
// and pi, imaginary markers i and I, and whitespace; only a string with
// nothing left proceeds to parsing. Rows are then split on newlines
// (literal or escaped), tokens within a row on whitespace, and every
// token must parse as a number. A single token yields a scalar, one row
// yields an array, several rows yield an array of row arrays. Any token
// that fails to parse keeps the original string unchanged.
func Coerce(s string) *ir.Node {
	expanded := strings.ReplaceAll(s, `\n`, "\n")
	if !numericLooking(expanded) {
		return ir.FromString(s)
	}
	var rows [][]*ir.Node
	for _, line := range strings.Split(expanded, "\n") {
		toks := strings.Fields(line)
		if len(toks) == 0 {
			continue
		}
		row := make([]*ir.Node, len(toks))
		for i, tok := range toks {
			v, ok := parseNumber(tok)
			if !ok {
				return ir.FromString(s)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	switch {
	case len(rows) == 0:
		return ir.FromString(s)
	case len(rows) == 1 && len(rows[0]) == 1:
		return rows[0][0]
	case len(rows) == 1:
		return ir.FromSlice(rows[0])
	}
	mat := make([]*ir.Node, len(rows))
	for i, row := range rows {
		mat[i] = ir.FromSlice(row)
	}
	return ir.FromSlice(mat)
}

// numericLooking reports whether s could plausibly be numeric. It is a
// filter, not a parser: a true result still requires every token to
// parse.
func numericLooking(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	s = strings.ReplaceAll(s, "Inf", "")
	s = strings.ReplaceAll(s, "NaN", "")
	s = strings.ReplaceAll(s, "pi", "")
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '+' || r == '-' || r == '.':
		case r == 'e' || r == 'E':
		case r == 'i' || r == 'I':
		case unicode.IsSpace(r):
		default:
			return false
		}
	}
	return true
}

func parseNumber(tok string) (*ir.Node, bool) {
	if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return ir.FromInt(i), true
	}
	if f, err := strconv.ParseFloat(tok, 64); err == nil {
		return ir.FromFloat(f), true
	}
	switch tok {
	case "pi", "+pi":
		return ir.FromFloat(math.Pi), true
	case "-pi":
		return ir.FromFloat(-math.Pi), true
	}
	return nil, false
}
