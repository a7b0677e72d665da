package hrapi

import (
	"net/url"
	"strings"
)

// GetCookie extracts a named cookie value from a raw Cookie header string.
// Values are URL-decoded; a missing cookie yields "". Pure, no side effects.
func GetCookie(header, name string) string {
	if header == "" || name == "" {
		return ""
	}
	prefix := name + "="
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if !strings.HasPrefix(part, prefix) {
			continue
		}
		value := part[len(prefix):]
		if decoded, err := url.QueryUnescape(value); err == nil {
			return decoded
		}
		return value
	}
	return ""
}
