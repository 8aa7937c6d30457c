package mcpkit

import (
	"strconv"
	"strings"
)

// ReadString reads a string parameter from input.
// A missing required parameter, or one that is blank after trimming, is an invalid-params error.
func ReadString(params map[string]any, key string, required bool) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return "", InvalidParams("parameter %q is required", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", InvalidParams("parameter %q must be a string", key)
	}
	s = strings.TrimSpace(s)
	if required && s == "" {
		return "", InvalidParams("parameter %q must not be empty", key)
	}
	return s, nil
}

// ReadStringDefault reads a string parameter with a default value.
func ReadStringDefault(params map[string]any, key, defaultVal string) string {
	s, err := ReadString(params, key, false)
	if err != nil || s == "" {
		return defaultVal
	}
	return s
}

// ReadNumber reads a numeric parameter from input.
func ReadNumber(params map[string]any, key string, required bool) (float64, bool, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return 0, false, InvalidParams("parameter %q is required", key)
		}
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		return n, true, nil
	case float32:
		return float64(n), true, nil
	case int:
		return float64(n), true, nil
	case int64:
		return float64(n), true, nil
	case int32:
		return float64(n), true, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false, InvalidParams("parameter %q must be a number", key)
		}
		return f, true, nil
	}
	return 0, false, InvalidParams("parameter %q must be a number", key)
}

// ReadInt reads an integer parameter from input.
func ReadInt(params map[string]any, key string, required bool) (int, error) {
	n, _, err := ReadNumber(params, key, required)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ReadIntDefault reads an integer parameter, returning defaultVal when it is absent.
// Unlike ReadStringDefault an explicit zero is kept so callers can range-check it.
func ReadIntDefault(params map[string]any, key string, defaultVal int) (int, error) {
	n, present, err := ReadNumber(params, key, false)
	if err != nil {
		return 0, err
	}
	if !present {
		return defaultVal, nil
	}
	return int(n), nil
}

// ReadBool reads a boolean parameter from input.
func ReadBool(params map[string]any, key string, defaultVal bool) bool {
	v, ok := params[key]
	if !ok {
		return defaultVal
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		lower := strings.ToLower(strings.TrimSpace(b))
		return lower == "true" || lower == "1" || lower == "yes"
	case float64:
		return b != 0
	case int:
		return b != 0
	}
	return defaultVal
}

// ReadStringSlice reads a string array parameter from input.
// A single string is split on whitespace.
func ReadStringSlice(params map[string]any, key string, required bool) ([]string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		if required {
			return nil, InvalidParams("parameter %q is required", key)
		}
		return nil, nil
	}
	switch arr := v.(type) {
	case []string:
		return arr, nil
	case []any:
		result := make([]string, 0, len(arr))
		for _, item := range arr {
			s, ok := item.(string)
			if !ok {
				return nil, InvalidParams("parameter %q must be a string array", key)
			}
			result = append(result, s)
		}
		return result, nil
	case string:
		return strings.Fields(arr), nil
	}
	return nil, InvalidParams("parameter %q must be a string array", key)
}
