package upgrade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetscope/fleetscope/pkg/model"
)

func upgradeEvent(node string, ts time.Time) model.EventInfo {
	return model.EventInfo{Kind: "Node", Name: node, Reason: ReasonNodeUpgrade, Timestamp: ts}
}

func readyEvent(node string, ts time.Time) model.EventInfo {
	return model.EventInfo{Kind: "Node", Name: node, Reason: ReasonNodeReady, Timestamp: ts}
}

func TestBuildReportEstimation(t *testing.T) {
	now := waveStart.Add(20 * time.Minute)
	nodes := []model.NodeInfo{
		{Name: "n0", KubeletVersion: "v1.30.1"},
		{Name: "n1", KubeletVersion: "v1.29.4"},
		{Name: "n2", KubeletVersion: "v1.29.4"},
	}
	events := []model.EventInfo{
		upgradeEvent("n0", waveStart),
		readyEvent("n0", waveStart.Add(10*time.Minute)),
		upgradeEvent("n1", waveStart.Add(12*time.Minute)),
	}

	r := BuildReport(nodes, events, nil, "1.30.1", anomaly, now)

	require.Len(t, r.Nodes, 3)
	assert.Equal(t, model.PhaseUpgraded, r.Nodes[0].Phase)
	assert.Equal(t, model.PhaseUpgrading, r.Nodes[1].Phase)
	assert.Equal(t, model.PhasePending, r.Nodes[2].Phase)

	assert.Equal(t, 1, r.Completed)
	assert.Equal(t, 2, r.Remaining)
	assert.True(t, r.AnyActive)
	assert.InDelta(t, 1200, r.ElapsedSeconds, 0.001)

	// One node in 20 minutes, two to go: 40 minutes estimated.
	require.NotNil(t, r.EstimatedRemainingSeconds)
	assert.InDelta(t, 2400, *r.EstimatedRemainingSeconds, 0.001)
	assert.False(t, r.AnomalyFlag)
}

func TestBuildReportNoEstimateWithoutCompletions(t *testing.T) {
	nodes := []model.NodeInfo{{Name: "n0"}}
	events := []model.EventInfo{upgradeEvent("n0", waveStart)}

	r := BuildReport(nodes, events, nil, "1.30.1", anomaly, waveStart.Add(5*time.Minute))
	assert.Nil(t, r.EstimatedRemainingSeconds)
	assert.Equal(t, 0, r.Completed)
}

func TestBuildReportAnomaly(t *testing.T) {
	now := waveStart.Add(45 * time.Minute)
	nodes := []model.NodeInfo{{Name: "n0", Unschedulable: true}}
	events := []model.EventInfo{upgradeEvent("n0", waveStart)}

	r := BuildReport(nodes, events, nil, "1.30.1", anomaly, now)
	assert.True(t, r.AnomalyFlag)
	assert.Contains(t, r.AnomalyMessage, "exceeds the 30 minute baseline")
	assert.NotContains(t, r.AnomalyMessage, "PDB")
	assert.Equal(t, model.PhaseStalled, r.Nodes[0].Phase)
}

func TestBuildReportAnomalyWithPDBBlock(t *testing.T) {
	now := waveStart.Add(45 * time.Minute)
	nodes := []model.NodeInfo{{Name: "n0", Unschedulable: true}}
	events := []model.EventInfo{upgradeEvent("n0", waveStart)}

	r := BuildReport(nodes, events, []string{"api-pdb"}, "1.30.1", anomaly, now)
	assert.True(t, r.AnomalyFlag)
	assert.Contains(t, r.AnomalyMessage, "PDB block was detected")
	assert.Equal(t, model.PhasePDBBlocked, r.Nodes[0].Phase)
}

func TestBuildReportNoWave(t *testing.T) {
	nodes := []model.NodeInfo{
		{Name: "n0", Unschedulable: true},
		{Name: "n1"},
	}

	r := BuildReport(nodes, nil, nil, "1.30.1", anomaly, waveStart)

	require.Len(t, r.Nodes, 2)
	// Without any upgrade event there is no wave: only cordoned and
	// pending are possible, and no duration math runs.
	assert.Equal(t, model.PhaseCordoned, r.Nodes[0].Phase)
	assert.Equal(t, model.PhasePending, r.Nodes[1].Phase)
	assert.Zero(t, r.ElapsedSeconds)
	assert.Nil(t, r.EstimatedRemainingSeconds)
	assert.False(t, r.AnomalyFlag)
	assert.True(t, r.AnyActive, "a cordoned node is still active")
}
