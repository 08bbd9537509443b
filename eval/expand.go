package eval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/structml/go-structml/debug"
	"github.com/structml/go-structml/encode"
	"github.com/structml/go-structml/ir"
)

// ExpandTree evaluates expressions in every string of the tree, in
// place. A string that is exactly ".[expr]" is replaced by the typed
// result of the expression; any other string has its embedded "$[...]"
// and ".[...]" expressions interpolated.
func ExpandTree(node *ir.Node, env Env) error {
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		for _, cv := range node.Values {
			if err := ExpandTree(cv, env); err != nil {
				return err
			}
		}
	case ir.StringType:
		raw := GetRaw(node.String)
		if raw == "" {
			v, err := ExpandString(node.String, env)
			if err != nil {
				return fmt.Errorf("error expanding %q: %w", node.String, err)
			}
			node.String = v
			return nil
		}
		val, err := run(raw, env, node)
		if err != nil {
			return fmt.Errorf("error evaluating %q: %w", raw, err)
		}
		if debug.Eval() {
			debug.Logf("eval %q gave %#v\n", raw, val)
		}
		repl, err := FromAny(val)
		if err != nil {
			return fmt.Errorf("could not translate result of %q: %w", raw, err)
		}
		repl.Parent = node.Parent
		repl.ParentIndex = node.ParentIndex
		repl.ParentField = node.ParentField
		*node = *repl
		for _, cv := range node.Values {
			cv.Parent = node
		}
	}
	return nil
}

// GetRaw extracts the expression from a ".[expr]" reference string.
// It returns "" when v is not in that form.
func GetRaw(v string) string {
	if !isRawRef(v) {
		return ""
	}
	return v[2 : len(v)-1]
}

func isRawRef(s string) bool {
	return strings.HasPrefix(s, ".[") && strings.HasSuffix(s, "]")
}

// ExpandString expands $[...] and .[...] expressions in a string.
//
// Expressions are evaluated against the provided environment. Within
// expressions, backslash escaping is supported:
//   - \] → literal ] (does not close the expression)
//   - \\ → literal \
//   - \x → x (for any character x)
//
// If an expression is not closed with an unescaped ], the text is
// treated as a literal string rather than an expression.
func ExpandString(v string, env Env) (string, error) {
	if len(v) < 3 {
		return v, nil
	}
	exprStart := -1 // position of $ or . that starts the expression
	i := 0
	n := len(v)
	var outBuf []byte // accumulates the final output
	var keyBuf []byte // accumulates the current expression content (unescaped)

	for i < n-1 {
		c, next := v[i], v[i+1]
		i++
		switch c {
		case '$', '.':
			if next == '[' {
				exprStart = i - 1
				keyBuf = keyBuf[:0]
				i++
				continue
			}
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		case '\\':
			if exprStart != -1 {
				keyBuf = append(keyBuf, next)
				i++
				continue
			}
			outBuf = append(outBuf, c)
		case ']':
			if exprStart != -1 {
				x, err := evalKey(string(keyBuf), env)
				if err != nil {
					return "", err
				}
				outBuf = append(outBuf, x...)
				exprStart = -1
				continue
			}
			outBuf = append(outBuf, c)
		default:
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		}
	}

	if exprStart == -1 {
		outBuf = append(outBuf, v[n-1])
		return string(outBuf), nil
	}

	// Still inside an expression. If the string does not end with an
	// unescaped ], it was never an expression.
	if i >= n || v[n-1] != ']' {
		outBuf = append(outBuf, v[exprStart:n]...)
		return string(outBuf), nil
	}

	x, err := evalKey(string(keyBuf), env)
	if err != nil {
		return "", err
	}
	outBuf = append(outBuf, x...)
	return string(outBuf), nil
}

func evalKey(key string, env Env) ([]byte, error) {
	key = strings.TrimSpace(key)
	x, err := run(key, env, nil)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", key, err)
	}
	if debug.ExpandEnv() {
		debug.Logf("expand %q gave %#v\n", key, x)
	}
	d, err := anyToBytes(x)
	if err != nil {
		return nil, fmt.Errorf("could not render result of %q: %w", key, err)
	}
	return d, nil
}

func anyToBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case string:
		return []byte(x), nil
	case int:
		return strconv.AppendInt(nil, int64(x), 10), nil
	case int64:
		return strconv.AppendInt(nil, x, 10), nil
	case float64:
		return []byte(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case bool:
		return []byte(strconv.FormatBool(x)), nil
	case json.Number:
		return []byte(x), nil
	case *ir.Node:
		return wireBytes(x)
	default:
		node, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		return wireBytes(node)
	}
}

func wireBytes(node *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(node, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
