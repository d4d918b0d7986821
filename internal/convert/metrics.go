package convert

import (
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// NodeMetricsToModel converts a metrics.k8s.io NodeMetrics reading.
func NodeMetricsToModel(nm *metricsv1beta1.NodeMetrics) model.NodeMetrics {
	return model.NodeMetrics{
		Name:               nm.Name,
		CPUUsageMillicores: ParseCPUMillicores(quantityString(nm.Usage, "cpu")),
		MemoryUsageBytes:   ParseMemoryBytes(quantityString(nm.Usage, "memory")),
	}
}
