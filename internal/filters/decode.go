package filters

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// FromAny converts a generically decoded value (as produced by encoding/json
// or yaml.v3) into a Value. Shapes are checked in a fixed order and the first
// match wins: nil, string, from/to map, min/max map, slice, anything else.
func FromAny(x any) Value {
	switch val := x.(type) {
	case nil:
		return Empty{}
	case string:
		return Text(val)
	}

	if m, ok := normalizeMap(x); ok {
		return fromMap(m)
	}
	if items, ok := asSlice(x); ok {
		return List{Items: items}
	}
	return Unrecognized{Raw: x}
}

func fromMap(m map[string]any) Value {
	from, hasFrom := m["from"]
	to, hasTo := m["to"]
	if hasFrom || hasTo {
		return DateRange{From: truthyText(from), To: truthyText(to)}
	}

	lo, hasMin := m["min"]
	hi, hasMax := m["max"]
	if hasMin || hasMax {
		return MinMax{Min: stringOnly(lo), Max: stringOnly(hi)}
	}

	return Unrecognized{Raw: m}
}

func asSlice(x any) ([]any, bool) {
	if items, ok := x.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

// BagFromMap converts a generically decoded object into a Bag
func BagFromMap(m map[string]any) Bag {
	bag := make(Bag, len(m))
	for name, v := range m {
		bag[name] = FromAny(v)
	}
	return bag
}

// UnmarshalJSON decodes a JSON object into b. Only malformed JSON or a
// non-object document (null included) is an error; every field value decodes
// to some Value.
func (b *Bag) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode filter bag: %w", err)
	}
	if raw == nil {
		return errors.New("failed to decode filter bag: document is null, want an object")
	}
	*b = BagFromMap(raw)
	return nil
}

// MarshalJSON renders b structurally so that decoding the output yields a
// Bag with the same active fields.
func (b Bag) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b))
	for name, v := range b {
		out[name] = toAny(v)
	}
	return json.Marshal(out)
}

func toAny(v Value) any {
	switch val := v.(type) {
	case Text:
		return string(val)
	case DateRange:
		return map[string]any{"from": nilIfEmpty(val.From), "to": nilIfEmpty(val.To)}
	case MinMax:
		return map[string]any{"min": val.Min, "max": val.Max}
	case List:
		if val.Items == nil {
			return []any{}
		}
		return val.Items
	case Unrecognized:
		return val.Raw
	default:
		return nil
	}
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// normalizeMap accepts map[string]any, the map[any]any form some YAML
// decoders produce for nested mappings, and typed maps such as
// map[string]string. Keys are compared by their text form.
func normalizeMap(x any) (map[string]any, bool) {
	if m, ok := x.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

// truthyText renders a date bound as text, or "" when the bound is falsy
func truthyText(x any) string {
	switch val := x.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return ""
	case float64:
		if val == 0 || math.IsNaN(val) {
			return ""
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		if val == 0 {
			return ""
		}
		return strconv.Itoa(val)
	case json.Number:
		if f, err := val.Float64(); err == nil && (f == 0 || math.IsNaN(f)) {
			return ""
		}
		return val.String()
	case float32:
		if val == 0 || math.IsNaN(float64(val)) {
			return ""
		}
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

func stringOnly(x any) string {
	s, _ := x.(string)
	return s
}
