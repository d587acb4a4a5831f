package transportorder

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Input is raw caller data as decoded from JSON or YAML. Keys are the flat
// field names of the exchange format ("number", "ocean.scac.no", "stops").
type Input map[string]any

// Has reports whether key is present, regardless of its value.
func (in Input) Has(key string) bool {
	_, ok := in[key]
	return ok
}

// String returns the value of key rendered as text. Missing keys and nil
// values yield ok == false.
func (in Input) String(key string) (string, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return "", false
	}
	return Text(v), true
}

// Text returns the value of key as text, or "" when absent.
func (in Input) Text(key string) string {
	s, _ := in.String(key)
	return s
}

// Number returns the numeric value of key. Strings holding a number are
// accepted.
func (in Input) Number(key string) (float64, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return 0, false
	}
	return toFloat(v)
}

// Object returns the nested map under key, or nil.
func (in Input) Object(key string) Input {
	return asInput(in[key])
}

// Objects returns the list of maps under key. Non-map entries are returned as
// empty inputs so positions are preserved.
func (in Input) Objects(key string) []Input {
	list, ok := in[key].([]any)
	if !ok {
		if typed, isTyped := in[key].([]Input); isTyped {
			return typed
		}
		if typed, isTyped := in[key].([]map[string]any); isTyped {
			result := make([]Input, 0, len(typed))
			for _, m := range typed {
				result = append(result, m)
			}
			return result
		}
		return nil
	}
	result := make([]Input, 0, len(list))
	for _, item := range list {
		obj := asInput(item)
		if obj == nil {
			obj = Input{}
		}
		result = append(result, obj)
	}
	return result
}

// Strings returns a list value rendered as text. A scalar is treated as a
// one-element list.
func (in Input) Strings(key string) []string {
	return Texts(in[key])
}

// Clone returns a shallow copy safe to modify at the top level.
func (in Input) Clone() Input {
	return maps.Clone(in)
}

// Text renders a decoded scalar as text. Strings are NFC-normalized so that
// composed and decomposed umlauts compare equal.
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return norm.NFC.String(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return norm.NFC.String(fmt.Sprint(t))
	}
}

// Texts renders a list value as text. Nil yields nil.
func Texts(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			out = append(out, Text(s))
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, Text(item))
		}
		return out
	default:
		return []string{Text(t)}
	}
}

// IsEmpty reports whether a decoded value carries no content.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case Input:
		return len(t) == 0
	default:
		return false
	}
}

func asInput(v any) Input {
	switch t := v.(type) {
	case Input:
		return t
	case map[string]any:
		return t
	default:
		return nil
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
