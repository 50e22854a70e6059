package entity

import (
	"fmt"
	"net"
	"net/mail"
	"net/url"
	"strings"
)

const (
	maxURLLength   = 2048
	maxEmailLength = 254
	maxTitleLength = 500
)

// ValidateURL checks that rawURL is an absolute http(s) URL with a host.
// Whether the host is reachable or private is checked at fetch time.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is invalid"}
	}
	// HTTP または HTTPS のみ許可
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if u.Hostname() == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return nil
}

// LooksLikeURL reports whether s is a single http(s) URL rather than prose.
func LooksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidateEmail accepts a bare address or the AnonymousUser marker.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if email == AnonymousUser {
		return nil
	}
	if len(email) > maxEmailLength {
		return &ValidationError{Field: "email", Message: "email is too long"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email is invalid"}
	}
	return nil
}

// IsPrivateIP reports whether ip is loopback, link-local, private or
// unspecified. Fetching such addresses is refused (SSRF).
func IsPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsPrivate() ||
		ip.IsUnspecified()
}
