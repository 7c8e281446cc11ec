package http

import (
	"net/http"
	"strings"
)

const (
	// HeaderClientID selects whose preferences a request reads and writes.
	HeaderClientID = "X-Client-ID"

	// HeaderPrefersColorScheme is the client hint carrying the OS theme.
	HeaderPrefersColorScheme = "Sec-CH-Prefers-Color-Scheme"

	maxClientIDLength = 64
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// clientID returns the caller's client id, or "" for the shared default.
// Ids that are too long or contain anything but letters, digits, '-' and '_'
// are treated as absent.
func clientID(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(HeaderClientID))
	if id == "" || len(id) > maxClientIDLength {
		return ""
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ""
		}
	}
	return id
}

// prefersDark returns the request's OS theme signal.
func prefersDark(r *http.Request) func() bool {
	return func() bool {
		return strings.EqualFold(strings.Trim(r.Header.Get(HeaderPrefersColorScheme), `" `), "dark")
	}
}
