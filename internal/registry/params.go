package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// cacheKey derives the cache key from the operation name and canonicalized
// parameters. Canonicalization lower-cases string values and sorts object
// keys so that semantically identical requests collide on one entry:
// {"Product_Query": "RTX 4090"} and {"product_query": "rtx 4090"} are, as
// far as a voice query is concerned, the same question.
func cacheKey(name string, params map[string]any) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(':')
	writeCanonical(&b, params)
	return b.String()
}

// writeCanonical appends a deterministic rendering of value to b.
func writeCanonical(b *strings.Builder, value any) {
	switch v := value.(type) {
	case nil:
		b.WriteString("null")
	case string:
		b.WriteString(strings.ToLower(strings.TrimSpace(v)))
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strings.ToLower(key))
			b.WriteByte('=')
			writeCanonical(b, v[key])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case json.Number:
		b.WriteString(v.String())
	default:
		// Numbers and booleans render identically for identical values.
		fmt.Fprintf(b, "%v", v)
	}
}

// StringParam extracts a trimmed string parameter, tolerating absence.
func StringParam(params map[string]any, key string) string {
	if value, ok := params[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// IntParam extracts an integer parameter, accepting the float64 values
// JSON decoding produces. Returns fallback when absent or non-numeric.
func IntParam(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return fallback
}
