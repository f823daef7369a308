package grading

import (
	"math"
	"strconv"
	"strings"
)

// Coercion helpers for raw JSON-decoded submissions. encoding/json hands us
// float64 for every number, and clients are allowed to send indexes as
// strings, so both forms are accepted everywhere an index is expected.

func asIndex(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err == nil {
			return i, true
		}
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		if s == math.Trunc(s) {
			return strconv.Itoa(int(s)), true
		}
		return strconv.FormatFloat(s, 'f', -1, 64), true
	}
	return "", false
}

// unwrap peels the named envelope key off a map payload, so both the bare
// shape and the documented {"<key>": ...} contract are accepted.
func unwrap(response any, key string) any {
	if m, ok := response.(map[string]any); ok {
		if inner, ok := m[key]; ok {
			return inner
		}
	}
	return response
}
