package ratelimit

import (
	"net/http"
	"strings"
)

// UnknownClient buckets requests that carry no proxy address header.
const UnknownClient = "unknown"

// ClientAddress prefers the CDN's CF-Connecting-IP header, then the first hop
// of X-Forwarded-For.
func ClientAddress(r *http.Request) string {
	for _, header := range []string{"CF-Connecting-IP", "X-Forwarded-For"} {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		first, _, _ := strings.Cut(value, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return UnknownClient
}
