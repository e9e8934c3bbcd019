package draft

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Fields is one loosely-typed JSON object from the wizard. Steps were written
// independently, so the same value may live under several names; every
// accessor takes the accepted names in priority order.
type Fields map[string]any

// String returns the first non-blank value under keys, trimmed. Numbers and
// booleans are rendered as text; objects and arrays are ignored.
func (f Fields) String(keys ...string) string {
	for _, k := range keys {
		if s := scalarString(f[k]); s != "" {
			return s
		}
	}
	return ""
}

// Bool reports whether the first present key holds a truthy value. Wizards
// store checkboxes as booleans, "true"/"yes"/"1" strings or 0/1 numbers.
func (f Fields) Bool(keys ...string) bool {
	for _, k := range keys {
		v, ok := f[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		default:
			switch strings.ToLower(scalarString(t)) {
			case "true", "yes", "y", "1", "on":
				return true
			default:
				return false
			}
		}
	}
	return false
}

// Has reports whether any key holds a meaningful value: a non-blank scalar,
// or an object/array with at least one meaningful element.
func (f Fields) Has(keys ...string) bool {
	for _, k := range keys {
		if meaningful(f[k]) {
			return true
		}
	}
	return false
}

// Object returns the nested object under the first key holding one.
func (f Fields) Object(keys ...string) Fields {
	for _, k := range keys {
		if m, ok := f[k].(map[string]any); ok {
			return Fields(m)
		}
		if m, ok := f[k].(Fields); ok {
			return m
		}
	}
	return Fields{}
}

// List returns the array under the first key holding one, and whether any key
// held an array at all (an explicitly empty list counts as present).
func (f Fields) List(keys ...string) ([]any, bool) {
	for _, k := range keys {
		if l, ok := f[k].([]any); ok {
			return l, true
		}
	}
	return nil, false
}

// Strings returns the string entries of the first array under keys. Object
// entries contribute their "code" (or "role_code") field.
func (f Fields) Strings(keys ...string) []string {
	list, _ := f.List(keys...)
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch t := item.(type) {
		case map[string]any:
			if s := Fields(t).String("code", "role_code", "roleCode"); s != "" {
				out = append(out, s)
			}
		default:
			if s := scalarString(t); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func meaningful(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case map[string]any:
		for _, inner := range t {
			if meaningful(inner) {
				return true
			}
		}
		return false
	case []any:
		for _, inner := range t {
			if meaningful(inner) {
				return true
			}
		}
		return false
	case bool:
		return true
	default:
		return scalarString(t) != ""
	}
}
