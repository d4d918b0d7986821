package config

import (
	"os"
	"strconv"
	"time"
)

// Thresholds holds the operator-tunable classification boundaries.
// Loaded once per process, immutable afterwards, and shared read-only
// by all concurrent operations.
type Thresholds struct {
	CPUWarningPercent     float64       // FLEETSCOPE_CPU_WARNING, default: 75
	CPUCriticalPercent    float64       // FLEETSCOPE_CPU_CRITICAL, default: 90
	MemoryWarningPercent  float64       // FLEETSCOPE_MEMORY_WARNING, default: 80
	MemoryCriticalPercent float64       // FLEETSCOPE_MEMORY_CRITICAL, default: 95
	PendingPodsWarning    int           // FLEETSCOPE_PENDING_PODS_WARNING, default: 5
	PendingPodsCritical   int           // FLEETSCOPE_PENDING_PODS_CRITICAL, default: 20
	UpgradeAnomaly        time.Duration // FLEETSCOPE_UPGRADE_ANOMALY_MINUTES, default: 30m
}

// Config is the full process configuration: the cluster registry plus
// the threshold set and runtime knobs.
type Config struct {
	ClustersFile   string        // FLEETSCOPE_CLUSTERS_FILE, default: "clusters.yaml"
	MetricsPort    int           // FLEETSCOPE_METRICS_PORT, default: 0 (disabled)
	RequestTimeout time.Duration // FLEETSCOPE_REQUEST_TIMEOUT, default: 30s
	Thresholds     Thresholds
	Registry       *Registry
}

// LoadThresholds reads the threshold set from environment variables,
// applying defaults for unset values.
func LoadThresholds() Thresholds {
	return Thresholds{
		CPUWarningPercent:     parseFloat("FLEETSCOPE_CPU_WARNING", 75),
		CPUCriticalPercent:    parseFloat("FLEETSCOPE_CPU_CRITICAL", 90),
		MemoryWarningPercent:  parseFloat("FLEETSCOPE_MEMORY_WARNING", 80),
		MemoryCriticalPercent: parseFloat("FLEETSCOPE_MEMORY_CRITICAL", 95),
		PendingPodsWarning:    parseInt("FLEETSCOPE_PENDING_PODS_WARNING", 5),
		PendingPodsCritical:   parseInt("FLEETSCOPE_PENDING_PODS_CRITICAL", 20),
		UpgradeAnomaly:        time.Duration(parseInt("FLEETSCOPE_UPGRADE_ANOMALY_MINUTES", 30)) * time.Minute,
	}
}

// Load reads the process configuration from the environment and loads
// the cluster registry file. A registry that fails to load or validate
// is a fatal startup error.
func Load() (Config, error) {
	cfg := Config{
		ClustersFile:   envOrDefault("FLEETSCOPE_CLUSTERS_FILE", "clusters.yaml"),
		MetricsPort:    parseInt("FLEETSCOPE_METRICS_PORT", 0),
		RequestTimeout: parseDuration("FLEETSCOPE_REQUEST_TIMEOUT", 30*time.Second),
		Thresholds:     LoadThresholds(),
	}

	reg, err := LoadRegistry(cfg.ClustersFile)
	if err != nil {
		return Config{}, err
	}
	cfg.Registry = reg

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// parseDuration tries time.ParseDuration first, then falls back to
// treating the value as integer seconds.
func parseDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(v)
	if err == nil {
		return d
	}

	secs, err := strconv.Atoi(v)
	if err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultVal
}

func parseInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func parseFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
