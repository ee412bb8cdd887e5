package catapult

import (
	"strings"
	"time"
)

// the keys whose string values are timestamps in API payloads
var dateKeys = map[string]bool{
	"time":           true,
	"created_time":   true,
	"start_time":     true,
	"end_time":       true,
	"active_time":    true,
	"completed_time": true,
	"added_time":     true,
	"removed_time":   true,
	"created":        true,
	"updated":        true,
}

// toExternal converts a JSON-shaped value to the API's naming, i.e. snake_case keys
// become camelCase, recursively through maps and slices. Timestamps are rendered as
// ISO-8601 strings. Unknown values pass through unchanged.
func toExternal(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[snakeToCamel(key)] = toExternal(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = toExternal(val)
		}
		return out
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return value
	}
}

// fromExternal converts a JSON-shaped value from the API's naming, i.e. camelCase
// keys become snake_case, recursively through maps and slices.
func fromExternal(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[camelToSnake(key)] = fromExternal(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = fromExternal(val)
		}
		return out
	default:
		return value
	}
}

// coerceDates parses the string values of known timestamp keys into times, recursively
// through maps and slices. Values that don't parse are left untouched.
func coerceDates(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if s, ok := val.(string); ok && dateKeys[key] {
				if t, err := time.Parse(time.RFC3339, s); err == nil {
					out[key] = t
					continue
				}
			}
			out[key] = coerceDates(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = coerceDates(val)
		}
		return out
	default:
		return value
	}
}

// snakeToCamel converts a snake_case key to the API's camelCase form. The trailing
// underscore form `from_` maps to plain `from`.
func snakeToCamel(key string) string {
	key = strings.TrimSuffix(key, "_")
	parts := strings.Split(key, "_")
	out := strings.Builder{}
	out.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		out.WriteString(strings.ToUpper(p[:1]))
		out.WriteString(p[1:])
	}
	return out.String()
}

// camelToSnake converts a camelCase key to snake_case
func camelToSnake(key string) string {
	out := strings.Builder{}
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out.WriteByte('_')
			}
			out.WriteRune(r - 'A' + 'a')
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}
