package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Message picks the human-readable text for a failed response: the
// payload's "message" (or "error") field, then the status reason phrase,
// then FallbackMessage.
func Message(body []byte, statusText string) string {
	if msg := payloadMessage(body); msg != "" {
		return msg
	}
	if s := strings.TrimSpace(statusText); s != "" {
		return s
	}
	return FallbackMessage
}

func payloadMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, raw := range []json.RawMessage{payload.Message, payload.Error} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// reasonPhrase extracts the reason phrase from a status line such as
// "404 Not Found". Placeholders that net/http writes for unregistered
// codes ("status code 599") yield "".
func reasonPhrase(status string, code int) string {
	reason := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if reason == fmt.Sprintf("status code %d", code) {
		reason = ""
	}
	if reason == "" {
		reason = http.StatusText(code)
	}
	return reason
}
