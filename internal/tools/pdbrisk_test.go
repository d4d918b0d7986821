package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetscope/fleetscope/pkg/model"
)

func pdbFixture() *fakeKube {
	return &fakeKube{
		nodes: []model.NodeInfo{
			{Name: "sys-0", Pool: "system"},
			{Name: "usr-0", Pool: "user1"},
			{Name: "usr-1", Pool: "user1"},
		},
		pods: []model.PodInfo{
			{Name: "api-0", Namespace: "a", Phase: "Running", NodeName: "usr-0", Labels: map[string]string{"app": "api"}},
			{Name: "api-1", Namespace: "a", Phase: "Running", NodeName: "sys-0", Labels: map[string]string{"app": "api"}},
			{Name: "web-0", Namespace: "a", Phase: "Running", NodeName: "usr-1", Labels: map[string]string{"app": "web"}},
			{Name: "api-other", Namespace: "b", Phase: "Running", NodeName: "usr-1", Labels: map[string]string{"app": "api"}},
			{Name: "cache-0", Namespace: "b", Phase: "Running", NodeName: "sys-0", Labels: map[string]string{"app": "cache"}},
		},
		pdbs: []model.PDBInfo{
			{
				Name:               "api-pdb",
				Namespace:          "a",
				Selector:           map[string]string{"app": "api"},
				MinAvailable:       &model.BudgetValue{IntValue: 2, IsInt: true},
				CurrentHealthy:     2,
				DisruptionsAllowed: 0,
			},
			{
				Name:               "web-pdb",
				Namespace:          "a",
				Selector:           map[string]string{"app": "web"},
				MinAvailable:       &model.BudgetValue{IntValue: 1, IsInt: true},
				CurrentHealthy:     3,
				DisruptionsAllowed: 2,
			},
			{
				Name:           "cache-pdb",
				Namespace:      "b",
				Selector:       map[string]string{"app": "cache"},
				MaxUnavailable: &model.BudgetValue{IntValue: 0, IsInt: true},
				CurrentHealthy: 1,
			},
		},
	}
}

func TestPDBRiskPreflight(t *testing.T) {
	fk := pdbFixture()
	s := newTestService(t, fk, &fakeCloud{})

	// Empty mode defaults to preflight.
	results, err := s.PDBRisk(context.Background(), "prod-westeurope-main", "", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	r := results[0]

	assert.Equal(t, "preflight", r.Mode)
	require.Len(t, r.Blockers, 2)
	assert.Equal(t, "api-pdb", r.Blockers[0].Name)
	assert.Equal(t, "minAvailable=2 equals current healthy count (2)", r.Blockers[0].Reason)
	assert.Equal(t, "cache-pdb", r.Blockers[1].Name)
	assert.Equal(t, "maxUnavailable=0", r.Blockers[1].Reason)
	assert.Nil(t, r.Blockers[0].AffectedNodes, "preflight never maps nodes")
	assert.Zero(t, fk.podListCalls)
}

func TestPDBRiskLive(t *testing.T) {
	fk := pdbFixture()
	s := newTestService(t, fk, &fakeCloud{})

	results, err := s.PDBRisk(context.Background(), "prod-westeurope-main", "", "live")
	require.NoError(t, err)
	r := results[0]

	require.Len(t, r.Blockers, 2)
	// api-pdb covers api-0 and api-1; api-other is in another namespace
	// and web-0 fails the selector.
	assert.Equal(t, []string{"sys-0", "usr-0"}, r.Blockers[0].AffectedNodes)
	assert.Equal(t, []string{"sys-0"}, r.Blockers[1].AffectedNodes)
}

func TestPDBRiskLivePoolFilter(t *testing.T) {
	fk := pdbFixture()
	s := newTestService(t, fk, &fakeCloud{})

	results, err := s.PDBRisk(context.Background(), "prod-westeurope-main", "user1", "live")
	require.NoError(t, err)
	r := results[0]

	// cache-pdb only touches the system pool, so it is not a risk to a
	// user1 drain and drops out entirely.
	require.Len(t, r.Blockers, 1)
	assert.Equal(t, "api-pdb", r.Blockers[0].Name)
	assert.Equal(t, []string{"usr-0"}, r.Blockers[0].AffectedNodes)
}

func TestPDBRiskLiveAttributionDegrades(t *testing.T) {
	fk := pdbFixture()
	fk.podsErr = errors.New("pods unavailable")
	s := newTestService(t, fk, &fakeCloud{})

	results, err := s.PDBRisk(context.Background(), "prod-westeurope-main", "", "live")
	require.NoError(t, err)
	r := results[0]

	require.Len(t, r.Blockers, 2, "blocker list survives without attribution")
	assert.Nil(t, r.Blockers[0].AffectedNodes)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "pods", r.Errors[0].Source)
}

func TestPDBRiskPDBsFoundational(t *testing.T) {
	fk := pdbFixture()
	fk.pdbsErr = errors.New("policy api down")
	s := newTestService(t, fk, &fakeCloud{})

	results, err := s.PDBRisk(context.Background(), "prod-westeurope-main", "", "preflight")
	require.NoError(t, err)
	r := results[0]

	assert.Empty(t, r.Blockers)
	require.Len(t, r.Errors, 1)
	assert.Equal(t, "pdbs", r.Errors[0].Source)
}

func TestPDBRiskInvalidMode(t *testing.T) {
	s := newTestService(t, &fakeKube{}, &fakeCloud{})
	_, err := s.PDBRisk(context.Background(), "prod-westeurope-main", "", "drain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}
