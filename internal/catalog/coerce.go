package catalog

import (
	"fmt"
	"strconv"
)

// toList normalizes any decoded JSON value to a slice: absent stays empty,
// sequences pass through unchanged, anything else becomes a singleton.
func toList(v any) []any {
	switch t := v.(type) {
	case nil:
		return []any{}
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}

// firstPresent returns the first candidate that is non-nil and non-empty,
// evaluated left to right. Callers order candidates most specific first.
func firstPresent(candidates ...any) any {
	for _, c := range candidates {
		if present(c) {
			return c
		}
	}
	return nil
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

// stringifyVariant reduces a value that may be a bare string or an object
// keyed by one of keys to a single string. Scalars that are not strings get
// a generic conversion. An object with none of the known keys reduces to ""
// rather than leaking map syntax into user-facing text.
func stringifyVariant(v any, keys ...string) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any:
		for _, k := range keys {
			if s := stringifyScalar(t[k]); s != "" {
				return s
			}
		}
		return ""
	default:
		return stringifyScalar(v)
	}
}

func stringifyScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// stringList coerces a value to a list and reduces each element with
// stringifyVariant, dropping elements that reduce to the empty string.
func stringList(v any, keys ...string) []string {
	items := toList(v)
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := stringifyVariant(it, keys...); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// intValue reads a count tolerant of the numeric encodings JSON decoding
// produces (float64), plus numeric strings and booleans.
func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}
