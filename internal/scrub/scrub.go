// Package scrub removes infrastructure identifiers from response text
// before it leaves the system. Pure string transform, applied uniformly
// to every serialized response.
package scrub

import "regexp"

var (
	ipv4Pattern = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)

	// UUID-shaped identifiers: subscription and tenant IDs.
	uuidPattern = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)

	// Full resource paths leak subscription and resource group names.
	resourcePathPattern = regexp.MustCompile(`/subscriptions/[^\s"']+`)

	// Internal provider hostnames.
	hostnamePattern = regexp.MustCompile(`\b[a-zA-Z0-9][a-zA-Z0-9.-]*\.(?:internal\.cloudapp\.net|azmk8s\.io)\b`)
)

// Redaction placeholders.
const (
	redactedIP       = "[REDACTED-IP]"
	redactedID       = "[REDACTED-ID]"
	redactedResource = "[REDACTED-RESOURCE]"
	redactedHost     = "[REDACTED-HOST]"
)

// Scrub replaces IP addresses, subscription/account IDs, resource
// paths, and internal hostnames with fixed placeholders.
func Scrub(s string) string {
	s = resourcePathPattern.ReplaceAllString(s, redactedResource)
	s = uuidPattern.ReplaceAllString(s, redactedID)
	s = hostnamePattern.ReplaceAllString(s, redactedHost)
	s = ipv4Pattern.ReplaceAllString(s, redactedIP)
	return s
}
