package tools

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation runs before any I/O: malformed requests fail fast.
var (
	namespacePattern = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)
	nodePoolPattern  = regexp.MustCompile(`^[a-z][a-z0-9]{0,11}$`)
)

// validateNamespace accepts an empty namespace (meaning all) or a
// DNS-label-like name.
func validateNamespace(ns string) error {
	if ns == "" {
		return nil
	}
	if len(ns) > 63 || !namespacePattern.MatchString(ns) {
		return fmt.Errorf("invalid namespace %q: must be a DNS label", ns)
	}
	return nil
}

// validateNodePool accepts an empty pool (meaning all) or a short
// lowercase alphanumeric name starting with a letter.
func validateNodePool(pool string) error {
	if pool == "" {
		return nil
	}
	if !nodePoolPattern.MatchString(pool) {
		return fmt.Errorf("invalid node_pool %q: must start with a letter and be lowercase alphanumeric", pool)
	}
	return nil
}

// validateMode accepts exactly "preflight" or "live".
func validateMode(mode string) error {
	if mode != "preflight" && mode != "live" {
		return fmt.Errorf("invalid mode %q: must be %q or %q", mode, "preflight", "live")
	}
	return nil
}

// validateStatusFilter accepts "pending", "failed", or "all".
// Empty defaults to "all".
func validateStatusFilter(filter string) (string, error) {
	switch filter {
	case "":
		return "all", nil
	case "pending", "failed", "all":
		return filter, nil
	}
	return "", fmt.Errorf("invalid status_filter %q: must be pending, failed, or all", filter)
}

// validateRange checks an integer input against inclusive bounds,
// substituting the default for a zero value.
func validateRange(name string, v, min, max, def int) (int, error) {
	if v == 0 {
		return def, nil
	}
	if v < min || v > max {
		return 0, fmt.Errorf("invalid %s %d: must be in [%d, %d]", name, v, min, max)
	}
	return v, nil
}

// unknownClusterError rejects an unresolvable cluster ID with the full
// list of valid IDs so the caller can self-correct.
func unknownClusterError(id string, valid []string) error {
	return fmt.Errorf("unknown cluster %q: valid cluster ids are %s (or %q for every cluster)",
		id, strings.Join(valid, ", "), "all")
}
