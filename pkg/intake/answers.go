package intake

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Answers is the flat answer store of one intake session. Values are scalars,
// string lists or nested objects exactly as the client sent them.
type Answers map[string]any

// String returns the trimmed string value for key, or "" when the key is
// absent or holds something other than a string.
func (a Answers) String(key string) string {
	if a == nil {
		return ""
	}
	v, ok := a[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Is reports whether key holds exactly value.
func (a Answers) Is(key, value string) bool {
	return a.String(key) == value
}

// Bool accepts a JSON boolean or the strings "true" and "yes".
func (a Answers) Bool(key string) bool {
	if a == nil {
		return false
	}
	switch v := a[key].(type) {
	case bool:
		return v
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "true" || s == Yes
	}
	return false
}

// Number accepts JSON numbers and numeric strings.
func (a Answers) Number(key string) (float64, bool) {
	if a == nil {
		return 0, false
	}
	switch v := a[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		return f, err == nil
	}
	return 0, false
}

// OneOf reports whether key holds one of the allowed values.
func (a Answers) OneOf(key string, allowed ...string) bool {
	v := a.String(key)
	if v == "" {
		return false
	}
	for _, candidate := range allowed {
		if v == candidate {
			return true
		}
	}
	return false
}

// Apply merges patch into the store. A nil value removes the key.
func (a Answers) Apply(patch map[string]any) {
	for key, value := range patch {
		if value == nil {
			delete(a, key)
			continue
		}
		a[key] = cloneValue(value)
	}
}

// Clone returns a deep copy so a snapshot never shares nested maps or slices
// with the live store.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for key, value := range a {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = cloneValue(inner)
		}
		return out
	case Answers:
		return v.Clone()
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = cloneValue(inner)
		}
		return out
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	default:
		return v
	}
}
