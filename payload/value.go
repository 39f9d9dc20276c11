// Package payload gives read access to the loosely shaped JSON returned by the
// upstream booking API. Values are the ones encoding/json produces into an
// interface: map[string]any, []any, string, float64, bool and nil.
package payload

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Object returns v as a JSON object.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// List returns v as a JSON array, or nil when v is not one.
func List(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out
	}
	return nil
}

// Objects returns the object elements of the array at v, skipping anything else.
func Objects(v any) []map[string]any {
	items := List(v)
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if m, ok := Object(it); ok {
			out = append(out, m)
		}
	}
	return out
}

// Path walks nested objects by key and returns the value found, or nil.
func Path(root any, keys ...string) any {
	cur := root
	for _, k := range keys {
		m, ok := Object(cur)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// Text renders a scalar as trimmed text. Objects are read through their
// usual label fields (name, description, label, value).
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int32, int64:
		return fmt.Sprint(t)
	case map[string]any:
		return FirstString(t, "name", "description", "label", "value")
	}
	return ""
}

// FirstString returns the first non-blank text stored under any of keys.
func FirstString(obj map[string]any, keys ...string) string {
	if obj == nil {
		return ""
	}
	for _, k := range keys {
		if s := Text(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

// FirstNumber returns the first value under keys that Number accepts.
func FirstNumber(obj map[string]any, keys ...string) (float64, bool) {
	if obj == nil {
		return 0, false
	}
	for _, k := range keys {
		if n, ok := Number(obj[k]); ok {
			return n, true
		}
	}
	return 0, false
}

// Float is Number with the failure case collapsed to zero.
func Float(v any) float64 {
	n, _ := Number(v)
	return n
}

// Number coerces a JSON value into a finite float64. Strings may carry
// currency formatting: everything but digits, '.' and '-' is dropped and the
// longest numeric prefix of what remains is parsed ("$1,250.50" is 1250.5).
func Number(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		return parseNumeric(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumeric(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	prefix := numericPrefix(b.String())
	if prefix == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// numericPrefix returns the longest leading "-?digits(.digits)?" of s that
// contains at least one digit.
func numericPrefix(s string) string {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 {
			i = j
			digits += frac
		} else if digits > 0 {
			i++
		}
	}
	if digits == 0 {
		return ""
	}
	return strings.TrimSuffix(s[:i], ".")
}

// Truthy reports whether v is a JSON "yes": true, "true"/"yes"/"si"/"1" or a
// non-zero number.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch Normalize(t) {
		case "true", "yes", "si", "1":
			return true
		}
	case float64, int, int64, json.Number:
		n, ok := Number(t)
		return ok && n != 0
	}
	return false
}
