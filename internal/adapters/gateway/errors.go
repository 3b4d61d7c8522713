package gateway

import (
	"property-viewer/internal/core/domain"
	"strings"

	"github.com/tidwall/gjson"
)

// normalizeError turns a non-2xx response into the uniform APIError.
func normalizeError(status int, body []byte) *domain.APIError {
	if msg, ok := serverMessage(body); ok {
		return &domain.APIError{Message: msg, Status: status}
	}
	if status == 0 {
		return domain.NewNetworkError()
	}
	return domain.NewStatusError(status)
}

// serverMessage extracts the "message" field of an error payload. The field
// may be a string or an array whose string elements are joined with ", ".
func serverMessage(body []byte) (string, bool) {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return "", false
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return "", false
	}

	msg := root.Get("message")
	switch {
	case msg.Type == gjson.String:
		return msg.String(), true
	case msg.IsArray():
		var parts []string
		for _, item := range msg.Array() {
			if item.Type == gjson.String {
				parts = append(parts, item.String())
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", "), true
		}
	}
	return "", false
}
