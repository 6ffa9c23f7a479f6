package tenant

import (
	"net"
	"strings"
)

// SubdomainFromHost derives the candidate subdomain from a Host header.
//
// The first dot-separated label is the candidate only when the host is not
// localhost, not a bare IP literal, and has at least three labels
// ("acme.feedback.example.com" → "acme"). Anything else yields "" and the
// resolver falls through to the next signal.
func SubdomainFromHost(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "localhost" || net.ParseIP(host) != nil {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 {
		return ""
	}
	return labels[0]
}

// isLocalHost reports whether the Host header points at a local deployment.
func isLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
