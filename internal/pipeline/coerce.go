package pipeline

import (
	"strconv"
	"strings"
)

// The oracle returns loosely-typed JSON: numbers arrive as float64, string,
// or null, and list fields flip between arrays and "". These helpers coerce
// without erroring — absence is a signal the normalizer fills in.

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func toIntPtr(v any) *int {
	if n, ok := toInt(v); ok {
		return &n
	}
	return nil
}

// toStringList maps "" to the explicit empty list and arrays to their string
// elements; nil and unknown shapes map to nil (no information).
func toStringList(v any) []string {
	switch l := v.(type) {
	case string:
		if strings.TrimSpace(l) == "" {
			return []string{}
		}
		return []string{strings.ToUpper(strings.TrimSpace(l))}
	case []string:
		out := []string{}
		for _, s := range l {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, strings.ToUpper(s))
			}
		}
		return out
	case []any:
		out := []string{}
		for _, e := range l {
			if s, ok := e.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.ToUpper(strings.TrimSpace(s)))
			}
		}
		return out
	default:
		return nil
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
