package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the representation a Value normalized into.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindText
)

// Value is a statistic as reported by the remote service. The API mixes
// numbers and numeric strings for the same fields, so everything is
// normalized at the ingestion boundary: text containing a decimal point
// becomes a float, plain digits become an integer, anything else passes
// through as opaque text.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

func Text(s string) Value {
	return Value{kind: KindText, s: s}
}

// Normalize converts a decoded JSON value into a tagged Value. Numbers must
// arrive as json.Number (decode with UseNumber) so the integer/float
// distinction from the wire survives. Normalizing a Value is the identity.
func Normalize(raw any) Value {
	switch v := raw.(type) {
	case Value:
		return v
	case json.Number:
		return fromString(v.String())
	case string:
		return fromString(v)
	case int:
		return Int(int64(v))
	case int64:
		return Int(v)
	case float64:
		return Float(v)
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprint(v))
	}
}

func fromString(s string) Value {
	if !strings.Contains(s, ".") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
		return Text(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return Text(s)
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNumeric() bool {
	return v.kind == KindInt || v.kind == KindFloat
}

// Float64 returns the numeric value, or (0, false) for opaque text.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	default:
		return v.s
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return []byte(strconv.FormatFloat(v.f, 'f', -1, 64)), nil
	default:
		return json.Marshal(v.s)
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*v = Normalize(raw)
	return nil
}

// NormalizeMapping normalizes every value of a decoded JSON object.
func NormalizeMapping(raw map[string]any) map[string]Value {
	if raw == nil {
		return nil
	}
	out := make(map[string]Value, len(raw))
	for k, v := range raw {
		out[k] = Normalize(v)
	}
	return out
}
