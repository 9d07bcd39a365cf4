// Package rowio converts between row.Row and the line-delimited JSON format
// the engine reads sources from and writes results to — one JSON object per
// line, mirroring the line-oriented text files the original Python
// pipelines consumed. It is built on encoding/json rather than a
// third-party JSON library: every JSON package present in the example
// corpus is pulled in only transitively (by viper, by validator's
// dependencies), never imported directly by domain code, so there is no
// grounded third-party choice to prefer over the standard library here.
package rowio

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbukum/compgraph/row"
)

// ParseJSONLine decodes a single line of JSON into a Row. Integers and
// floats are distinguished the same way Python's json module distinguishes
// them: a numeric literal with no fractional part or exponent decodes to
// row.Int, anything else decodes to row.Float. A JSON array decodes to
// row.FloatList and must contain only numbers. JSON null decodes to
// row.Null.
func ParseJSONLine(line string) (row.Row, error) {
	dec := json.NewDecoder(strings.NewReader(line))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("rowio: decode line: %w", err)
	}

	out := make(row.Row, len(raw))
	for k, v := range raw {
		val, err := fromJSON(v)
		if err != nil {
			return nil, fmt.Errorf("rowio: column %q: %w", k, err)
		}
		out[k] = val
	}
	return out, nil
}

func fromJSON(v any) (row.Value, error) {
	switch t := v.(type) {
	case nil:
		return row.Null(), nil
	case string:
		return row.String(t), nil
	case json.Number:
		if isIntegerLiteral(string(t)) {
			n, err := t.Int64()
			if err != nil {
				return row.Value{}, err
			}
			return row.Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return row.Value{}, err
		}
		return row.Float(f), nil
	case []any:
		floats := make([]float64, len(t))
		for i, elem := range t {
			num, ok := elem.(json.Number)
			if !ok {
				return row.Value{}, fmt.Errorf("list element %d is not a number", i)
			}
			f, err := num.Float64()
			if err != nil {
				return row.Value{}, err
			}
			floats[i] = f
		}
		return row.FloatList(floats), nil
	default:
		return row.Value{}, fmt.Errorf("unsupported JSON value of type %T", v)
	}
}

func isIntegerLiteral(s string) bool {
	return !strings.ContainsAny(s, ".eE")
}

// WriteJSONLine encodes r as a single line of JSON, without a trailing
// newline. A row.Float with an integral value is written with a ".0"
// suffix so that ParseJSONLine reads it back as a row.Float, not a row.Int.
func WriteJSONLine(r row.Row) (string, error) {
	plain := make(map[string]any, len(r))
	for k, v := range r {
		val, err := toJSON(v)
		if err != nil {
			return "", fmt.Errorf("rowio: column %q: %w", k, err)
		}
		plain[k] = val
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("rowio: encode row: %w", err)
	}
	return string(b), nil
}

func toJSON(v row.Value) (any, error) {
	switch v.Kind() {
	case row.KindNull:
		return nil, nil
	case row.KindInt:
		n, _ := v.AsInt()
		return n, nil
	case row.KindFloat:
		f, _ := v.AsFloat()
		b, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		if isIntegerLiteral(string(b)) {
			b = append(b, ".0"...)
		}
		return json.RawMessage(b), nil
	case row.KindString:
		s, _ := v.AsString()
		return s, nil
	case row.KindFloatList:
		fl, _ := v.AsFloatList()
		return fl, nil
	default:
		return nil, fmt.Errorf("unsupported value kind %s", v.Kind())
	}
}
