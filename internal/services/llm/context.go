package llm

import (
	"encoding/json"
	"strings"
)

// maxContextDepth bounds the recursion over nested context values.
// Anything deeper is dropped, which also makes cyclic input terminate.
const maxContextDepth = 5

// sensitiveKeySubstrings are filtered out of context at every nesting
// level before the context is embedded in a prompt.
var sensitiveKeySubstrings = []string{"token", "secret", "password", "key"}

// renderContext produces the JSON view of a context mapping for prompt
// embedding. Returns "" when the context is empty, fully filtered, or
// not serializable; rendering never fails upward.
func renderContext(genContext map[string]interface{}) string {
	if len(genContext) == 0 {
		return ""
	}

	sanitized, ok := sanitizeValue(genContext, 0).(map[string]interface{})
	if !ok || len(sanitized) == 0 {
		return ""
	}

	data, err := json.MarshalIndent(sanitized, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}

// sanitizeValue walks maps and slices, removing sensitive keys at every
// level. Values past the depth bound are dropped.
func sanitizeValue(value interface{}, depth int) interface{} {
	if depth >= maxContextDepth {
		return nil
	}

	switch v := value.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				continue
			}
			if cleaned := sanitizeValue(val, depth+1); cleaned != nil {
				out[key] = cleaned
			}
		}
		return out
	case []interface{}:
		out := make([]interface{}, 0, len(v))
		for _, val := range v {
			if cleaned := sanitizeValue(val, depth+1); cleaned != nil {
				out = append(out, cleaned)
			}
		}
		return out
	default:
		return v
	}
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, substr := range sensitiveKeySubstrings {
		if strings.Contains(lower, substr) {
			return true
		}
	}
	return false
}
