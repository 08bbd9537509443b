package structml

import (
	"github.com/structml/go-structml/ir"
)

// Matches reports whether doc structurally matches pattern. Object
// patterns match when every pattern field is present in doc and
// matches; arrays match element-wise with equal length; null patterns
// match any value, so {"name": null} checks field presence alone.
func Matches(doc, pattern *ir.Node) bool {
	if doc == nil || pattern == nil {
		return doc == nil && pattern == nil
	}
	if pattern.Type == ir.NullType {
		return true
	}
	if doc.Type != pattern.Type {
		return false
	}
	switch pattern.Type {
	case ir.ObjectType:
		return matchObject(doc, pattern)
	case ir.ArrayType:
		return matchArray(doc, pattern)
	case ir.StringType:
		return doc.String == pattern.String
	case ir.BoolType:
		return doc.Bool == pattern.Bool
	case ir.NumberType:
		return matchNumber(doc, pattern)
	}
	return false
}

func matchObject(doc, pattern *ir.Node) bool {
	pMap := make(map[string]*ir.Node, len(pattern.Fields))
	for i, field := range pattern.Fields {
		pMap[field.String] = pattern.Values[i]
	}
	count := 0
	for i := range doc.Fields {
		pv := pMap[doc.Fields[i].String]
		if pv == nil {
			continue
		}
		if !Matches(doc.Values[i], pv) {
			return false
		}
		count++
	}
	return count == len(pMap)
}

func matchArray(doc, pattern *ir.Node) bool {
	if len(doc.Values) != len(pattern.Values) {
		return false
	}
	for i := range doc.Values {
		if !Matches(doc.Values[i], pattern.Values[i]) {
			return false
		}
	}
	return true
}

func matchNumber(doc, pattern *ir.Node) bool {
	if (doc.Int64 == nil) != (pattern.Int64 == nil) {
		return false
	}
	if (doc.Float64 == nil) != (pattern.Float64 == nil) {
		return false
	}
	if doc.Int64 != nil {
		return *doc.Int64 == *pattern.Int64
	}
	if doc.Float64 != nil {
		return *doc.Float64 == *pattern.Float64
	}
	return doc.Number == pattern.Number
}
