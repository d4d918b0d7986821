package upgrade

import (
	"sort"
	"time"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// ComputeStats summarizes historical upgrade durations against the
// anomaly baseline. Returns nil when there is no history.
func ComputeStats(history []model.UpgradeRecord, baseline time.Duration) *model.DurationStats {
	if len(history) == 0 {
		return nil
	}

	durations := make([]float64, len(history))
	var sum float64
	within := 0
	for i, rec := range history {
		durations[i] = rec.DurationSeconds
		sum += rec.DurationSeconds
		if rec.DurationSeconds <= baseline.Seconds() {
			within++
		}
	}
	sort.Float64s(durations)

	return &model.DurationStats{
		Count:               len(history),
		MeanSeconds:         sum / float64(len(history)),
		P90Seconds:          percentile(durations, 0.90),
		BaselineSeconds:     baseline.Seconds(),
		WithinBaselineCount: within,
	}
}

// percentile returns the nearest-rank percentile of a sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(p*float64(len(sorted))+0.5) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return sorted[rank]
}
