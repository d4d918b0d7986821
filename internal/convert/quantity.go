package convert

import (
	"log/slog"

	"k8s.io/apimachinery/pkg/api/resource"
)

// ParseCPUMillicores parses a CPU quantity string into millicores.
// A trailing "m" suffix means the prefix is already millicores; a bare
// number means whole cores. Unparseable input logs a warning and
// returns 0 so one malformed field never aborts a pressure computation.
func ParseCPUMillicores(s string) float64 {
	if s == "" {
		return 0
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		slog.Warn("unparseable cpu quantity", "value", s, "error", err)
		return 0
	}
	return q.AsApproximateFloat64() * 1000
}

// ParseMemoryBytes parses a memory quantity string into bytes.
// Binary suffixes (Ki/Mi/Gi/Ti) and decimal suffixes (k/M/G) are both
// recognized; no suffix means raw bytes. Unparseable input logs a
// warning and returns 0.
func ParseMemoryBytes(s string) float64 {
	if s == "" {
		return 0
	}
	q, err := resource.ParseQuantity(s)
	if err != nil {
		slog.Warn("unparseable memory quantity", "value", s, "error", err)
		return 0
	}
	return q.AsApproximateFloat64()
}
