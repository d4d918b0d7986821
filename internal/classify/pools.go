package classify

import (
	"sort"

	"k8s.io/utils/ptr"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// poolTotals accumulates allocatable and used resources for one pool.
type poolTotals struct {
	cpuAllocatable float64
	memAllocatable float64
	cpuUsed        float64
	memUsed        float64
	hasUsage       bool
	readyNodes     int
	totalNodes     int
	pendingPods    int
}

// AggregatePools groups nodes by pool, sums allocatable and used
// CPU/memory, attributes pending pods to the pool of their assigned
// node, and classifies each pool's pressure. Pending pods with no
// assigned node, or whose node maps to no known pool, are added to
// every pool's count: the scheduler has not decided placement, so all
// pools share the risk.
func AggregatePools(nodes []model.NodeInfo, metrics []model.NodeMetrics, pendingPods []model.PodInfo, t config.Thresholds) []model.PoolPressure {
	usage := make(map[string]model.NodeMetrics, len(metrics))
	for _, m := range metrics {
		usage[m.Name] = m
	}

	nodePool := make(map[string]string, len(nodes))
	pools := make(map[string]*poolTotals)
	for _, n := range nodes {
		nodePool[n.Name] = n.Pool
		pt, ok := pools[n.Pool]
		if !ok {
			pt = &poolTotals{}
			pools[n.Pool] = pt
		}
		pt.totalNodes++
		if n.Ready {
			pt.readyNodes++
		}
		pt.cpuAllocatable += n.CPUAllocatableMillicores
		pt.memAllocatable += n.MemoryAllocatableBytes
		if m, ok := usage[n.Name]; ok {
			pt.cpuUsed += m.CPUUsageMillicores
			pt.memUsed += m.MemoryUsageBytes
			pt.hasUsage = true
		}
	}

	for _, pod := range pendingPods {
		pool, placed := nodePool[pod.NodeName]
		if pod.NodeName == "" || !placed {
			for _, pt := range pools {
				pt.pendingPods++
			}
			continue
		}
		pools[pool].pendingPods++
	}

	out := make([]model.PoolPressure, 0, len(pools))
	for name, pt := range pools {
		pp := model.PoolPressure{
			Pool:        name,
			PendingPods: pt.pendingPods,
			ReadyNodes:  pt.readyNodes,
			TotalNodes:  pt.totalNodes,
		}
		// Never divide by zero: percentage is undefined without
		// allocatable capacity or usage readings.
		if pt.hasUsage && pt.cpuAllocatable > 0 {
			pp.CPUPercent = ptr.To(pt.cpuUsed / pt.cpuAllocatable * 100)
		}
		if pt.hasUsage && pt.memAllocatable > 0 {
			pp.MemoryPercent = ptr.To(pt.memUsed / pt.memAllocatable * 100)
		}
		pp.PressureLevel = ClassifyPressure(pp.CPUPercent, pp.MemoryPercent, pp.PendingPods, t)
		out = append(out, pp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Pool < out[j].Pool })
	return out
}
