package classify

import (
	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// ClassifyPressure combines CPU %, memory %, and pending-pod count into
// a severity level. Each signal is evaluated independently against its
// own thresholds and the maximum severity wins. Nil percentages
// (metrics unavailable) contribute no candidate. Pure and total: all
// inputs nil/zero yields ok.
func ClassifyPressure(cpuPct, memPct *float64, pendingPods int, t config.Thresholds) model.PressureLevel {
	level := model.PressureOK

	raise := func(candidate model.PressureLevel) {
		if candidate.Exceeds(level) {
			level = candidate
		}
	}

	if cpuPct != nil {
		switch {
		case *cpuPct >= t.CPUCriticalPercent:
			raise(model.PressureCritical)
		case *cpuPct >= t.CPUWarningPercent:
			raise(model.PressureWarning)
		}
	}

	if memPct != nil {
		switch {
		case *memPct >= t.MemoryCriticalPercent:
			raise(model.PressureCritical)
		case *memPct >= t.MemoryWarningPercent:
			raise(model.PressureWarning)
		}
	}

	switch {
	case pendingPods > t.PendingPodsCritical:
		raise(model.PressureCritical)
	case pendingPods >= t.PendingPodsWarning:
		raise(model.PressureWarning)
	}

	return level
}
