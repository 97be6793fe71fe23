// Package normalize coerces loosely-typed form input (stringified
// booleans, string-or-array fields, numeric strings) into concrete Go
// values. Handlers run submissions through it once, at the edge, so the
// domain services only ever see normalized values.
package normalize

import (
	"strconv"
	"strings"
)

// Bool interprets form-style boolean values. "true", "1" and "yes"
// (case-insensitive) are true; everything else is false.
func Bool(v interface{}) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		s := strings.ToLower(strings.TrimSpace(b))
		return s == "true" || s == "1" || s == "yes"
	default:
		return false
	}
}

// Number parses a numeric value that may arrive as a string or a JSON
// number, returning fallback when it cannot be parsed.
func Number(v interface{}, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

// StringList accepts a single string, a []string, or a []interface{} of
// strings and returns a flat []string. Empty entries are dropped.
func StringList(v interface{}) []string {
	var out []string
	appendItem := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}

	switch list := v.(type) {
	case string:
		appendItem(list)
	case []string:
		for _, s := range list {
			appendItem(s)
		}
	case []interface{}:
		for _, item := range list {
			if s, ok := item.(string); ok {
				appendItem(s)
			}
		}
	}

	return out
}

// Truncate trims v and cuts it to at most max runes.
func Truncate(v string, max int) string {
	v = strings.TrimSpace(v)
	runes := []rune(v)
	if len(runes) <= max {
		return v
	}
	return string(runes[:max])
}
