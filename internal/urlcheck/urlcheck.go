package urlcheck

import (
	"net/url"
	"strconv"
	"strings"
)

// IsSafe reports whether raw is an absolute http(s) URL that does not point
// at localhost or a private network range. Every outbound fetch is gated on
// this predicate so user-supplied URLs cannot be used to probe internal
// services.
func IsSafe(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}

	if host == "localhost" || host == "::1" {
		return false
	}

	if strings.HasPrefix(host, "127.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "10.") {
		return false
	}

	// 172.16.0.0/12 spans 172.16 through 172.31, so the second octet needs
	// a numeric range check rather than a prefix match.
	if strings.HasPrefix(host, "172.") {
		parts := strings.Split(host, ".")
		if len(parts) >= 2 {
			if octet, err := strconv.Atoi(parts[1]); err == nil && octet >= 16 && octet <= 31 {
				return false
			}
		}
	}

	return true
}
