package gateway

import (
	"strings"

	"github.com/goccy/go-json"
)

var successWords = []string{"success", "éxito", "correctamente"}

// decodeBody mirrors how the flows answer: JSON when they say so, otherwise
// the raw text as a message, and an empty body means it worked.
func decodeBody(contentType string, raw []byte) any {
	if strings.Contains(contentType, "application/json") && len(raw) > 0 {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}
	text := strings.TrimSpace(string(raw))
	if text == "" {
		return map[string]any{"success": true}
	}
	return map[string]any{"message": text}
}

// Succeeded reads a flow response. Any positive signal is enough, checked in
// this order: "success" true, "status" equal to "success", "StatusCode" 200,
// then success words in "message". An explicit "success": false rules out
// the message words.
func Succeeded(body any) bool {
	m, ok := body.(map[string]any)
	if !ok {
		return false
	}
	success, hasSuccess := m["success"].(bool)
	if success {
		return true
	}
	if v, ok := m["status"].(string); ok && strings.EqualFold(v, "success") {
		return true
	}
	if v, ok := m["StatusCode"].(float64); ok && v == 200 {
		return true
	}
	if hasSuccess {
		return false
	}
	msg := strings.ToLower(stringField(m, "message"))
	for _, w := range successWords {
		if strings.Contains(msg, w) {
			return true
		}
	}
	return false
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}
