package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// FromJSON decodes JSON into a node tree. Object field order follows the
// input, unlike decoding through Go maps.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	y, err := fromJSONValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after value", ErrDecode)
	}
	return y, nil
}

func fromJSONValue(dec *json.Decoder, tok json.Token) (*Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return fromJSONObject(dec)
		case '[':
			return fromJSONArray(dec)
		}
		return nil, fmt.Errorf("%w: unexpected %q", ErrDecode, t.String())
	case string:
		return FromString(t), nil
	case json.Number:
		return fromJSONNumber(t), nil
	case bool:
		return FromBool(t), nil
	case nil:
		return Null(), nil
	}
	return nil, fmt.Errorf("%w: unexpected token %v", ErrDecode, tok)
}

func fromJSONObject(dec *json.Decoder) (*Node, error) {
	var kvs []KeyVal
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: object key %v", ErrDecode, keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		val, err := fromJSONValue(dec, valTok)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, KeyVal{Key: key, Val: val})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromKeyVals(kvs), nil
}

func fromJSONArray(dec *json.Decoder) (*Node, error) {
	var vals []*Node
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		v, err := fromJSONValue(dec, tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return FromSlice(vals), nil
}

func fromJSONNumber(num json.Number) *Node {
	s := num.String()
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return FromInt(i)
	}
	if errors.Is(err, strconv.ErrRange) {
		return &Node{Type: NumberType, Number: s}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Number: s}
}

// MarshalJSON renders the node in its natural JSON form with field order
// preserved. NaN and infinities have no JSON representation and become
// null.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	if y == nil {
		buf.WriteString("null")
		return nil
	}
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case NumberType:
		buf.WriteString(jsonNumber(y))
	case StringType:
		if err := writeJSONString(buf, y.String); err != nil {
			return err
		}
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i := range y.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(y.Fields[i].String)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

// writeJSONString escapes a string without json.Marshal's HTML escaping,
// so characters like '<' stay literal.
func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

func jsonNumber(y *Node) string {
	switch {
	case y.Int64 != nil:
		return strconv.FormatInt(*y.Int64, 10)
	case y.Float64 != nil:
		f := *y.Float64
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "null"
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case y.Number != "":
		return y.Number
	default:
		return "0"
	}
}
