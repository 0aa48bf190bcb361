// Package input sanitizes user- and upstream-supplied strings before they are
// echoed back to clients.
package input

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// maxHostLength is the longest host name DNS allows.
const maxHostLength = 253

var (
	unsafeChars   = regexp.MustCompile(`[<>"']`)
	domainPattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Sanitize trims s, strips characters that could break out of HTML attributes
// and caps the result at maxLength runes.
func Sanitize(s string, maxLength int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return Truncate(unsafeChars.ReplaceAllString(s, ""), maxLength)
}

// Truncate cuts s to at most maxLength runes. A non-positive maxLength
// disables the limit.
func Truncate(s string, maxLength int) string {
	if maxLength <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	return string(runes[:maxLength])
}

// Abbreviate is Truncate with a trailing ellipsis when anything was cut.
func Abbreviate(s string, maxLength int) string {
	cut := Truncate(s, maxLength)
	if cut == s {
		return s
	}
	return cut + "..."
}

// ValidURL reports whether raw is an absolute http(s) URL whose host is a
// dotted domain name, localhost or an IP literal.
func ValidURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" || len(u.Host) > maxHostLength {
		return false
	}

	host := u.Hostname()
	switch {
	case host == "":
		return false
	case host == "localhost":
		return true
	case net.ParseIP(host) != nil:
		return true
	default:
		return domainPattern.MatchString(host)
	}
}
