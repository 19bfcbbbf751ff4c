package utils

import (
	"fmt"
)

func SafeString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func CoalesceString(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

// StringifyMap converts arbitrary JSON values to strings. Nil input yields an
// empty, non-nil map.
func StringifyMap(m map[string]interface{}) map[string]string {
	result := make(map[string]string, len(m))
	for k, v := range m {
		result[k] = SafeString(v)
	}
	return result
}
