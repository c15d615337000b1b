package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const unknownErrorMessage = "Error desconocido"

// APIError is a non-2xx response from a backend, with its body reduced to a
// displayable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// SafeMessage reduces an arbitrary decoded JSON error payload to a string.
// Objects are searched for msg, message, details, error and detail in that
// order; arrays are joined with ", ". Anything else is rendered as JSON.
func SafeMessage(v interface{}) string {
	switch m := v.(type) {
	case nil:
		return unknownErrorMessage
	case string:
		return m
	case error:
		return m.Error()
	case bool:
		if !m {
			return unknownErrorMessage
		}
		return "true"
	case float64:
		if m == 0 {
			return unknownErrorMessage
		}
		return strconv.FormatFloat(m, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, 0, len(m))
		for _, item := range m {
			parts = append(parts, SafeMessage(item))
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		if msg, ok := m["msg"].(string); ok && msg != "" {
			return msg
		}
		for _, key := range []string{"message", "details", "error", "detail"} {
			if present(m[key]) {
				return SafeMessage(m[key])
			}
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "Error de formato desconocido"
	}
	return string(data)
}

// present mirrors a truthiness check: empty strings, zero, false and null are absent.
func present(v interface{}) bool {
	switch m := v.(type) {
	case nil:
		return false
	case string:
		return m != ""
	case bool:
		return m
	case float64:
		return m != 0
	}
	return true
}

// messageFromBody extracts a message from an error response body, falling
// back to the raw text when it is not JSON.
func messageFromBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return unknownErrorMessage
	}
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return text
	}
	return SafeMessage(decoded)
}
