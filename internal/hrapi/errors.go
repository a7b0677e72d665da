package hrapi

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var htmlTitleRe = regexp.MustCompile(`(?i)<title>(.*?)</title>`)

// NormalizeError turns an upstream error response body into a single
// readable string. It handles the three shapes the HR API produces: a JSON
// detail field, JSON per-field error lists, and raw HTML error pages such as
// database integrity violations.
func NormalizeError(contentType string, raw []byte) string {
	if strings.Contains(contentType, "application/json") {
		if msg := normalizeJSONError(raw); msg != "" {
			return msg
		}
	}

	text := string(raw)
	if m := htmlTitleRe.FindStringSubmatch(text); m != nil {
		title := strings.TrimSpace(m[1])
		if strings.Contains(title, "IntegrityError") {
			return "Integrity Error: this record conflicts with an existing one."
		}
		return "Server Error: " + title
	}
	if strings.Contains(text, "IntegrityError") {
		return "Integrity Error: this record conflicts with an existing one."
	}

	return "Server Error: received an unexpected response with no clear message."
}

func normalizeJSONError(raw []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload) == 0 {
		return ""
	}

	if detail, ok := payload["detail"]; ok {
		var s string
		if json.Unmarshal(detail, &s) == nil && s != "" {
			return "Server Error: " + s
		}
	}

	// Field-error shape: {"field": ["msg", ...], ...}. Sorted for stable output.
	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		var msgs []string
		if json.Unmarshal(payload[field], &msgs) == nil {
			parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, ", ")))
			continue
		}
		var msg string
		if json.Unmarshal(payload[field], &msg) == nil {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	return strings.Join(parts, " | ")
}
