package cloudapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetscope/fleetscope/internal/config"
)

func testTarget(baseURL string) config.ClusterTarget {
	return config.ClusterTarget{
		Environment:   "prod",
		Region:        "westeurope",
		Subscription:  "sub-1",
		ResourceGroup: "rg-prod",
		Name:          "main",
		ManagementURL: baseURL,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(testTarget(srv.URL), StaticToken("test-token"), 5*time.Second)
}

func TestGetClusterInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/subscriptions/sub-1/resourceGroups/rg-prod/providers/Microsoft.ContainerService/managedClusters/main", r.URL.Path)
		assert.Equal(t, apiVersionClusters, r.URL.Query().Get("api-version"))

		fmt.Fprint(w, `{
			"name": "main",
			"location": "westeurope",
			"properties": {
				"kubernetesVersion": "1.30.1",
				"provisioningState": "Succeeded",
				"powerState": {"code": "Running"},
				"agentPoolProfiles": [
					{"name": "system", "provisioningState": "Succeeded",
					 "orchestratorVersion": "1.30.1", "currentOrchestratorVersion": "1.29.4",
					 "count": 3, "maxCount": 5}
				]
			}
		}`)
	})

	info, err := client.GetClusterInfo(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "main", info.Name)
	assert.Equal(t, "1.30.1", info.KubernetesVersion)
	assert.Equal(t, "Running", info.PowerState)
	require.Len(t, info.NodePools, 1)
	pool := info.NodePools[0]
	assert.Equal(t, "system", pool.Name)
	assert.Equal(t, "1.29.4", pool.CurrentVersion)
	assert.Equal(t, "1.30.1", pool.TargetVersion)
	assert.Equal(t, 5, pool.MaxCount)
}

func TestGetNodePoolStateFallsBackToOrchestratorVersion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/agentPools/user1")
		fmt.Fprint(w, `{
			"name": "user1",
			"properties": {"provisioningState": "Upgrading", "orchestratorVersion": "1.30.1", "count": 4}
		}`)
	})

	state, err := client.GetNodePoolState(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, "Upgrading", state.ProvisioningState)
	// No currentOrchestratorVersion reported: orchestratorVersion
	// stands in for both.
	assert.Equal(t, "1.30.1", state.CurrentVersion)
	assert.Equal(t, "1.30.1", state.TargetVersion)
}

func TestGetUpgradeProfileSkipsPreview(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/upgradeProfiles/default")
		fmt.Fprint(w, `{
			"properties": {
				"controlPlaneProfile": {
					"kubernetesVersion": "1.30.1",
					"upgrades": [
						{"kubernetesVersion": "1.31.0", "isPreview": false},
						{"kubernetesVersion": "1.32.0-alpha", "isPreview": true}
					]
				},
				"agentPoolProfiles": [
					{"name": "system", "kubernetesVersion": "1.30.1",
					 "upgrades": [{"kubernetesVersion": "1.31.0", "isPreview": false}]}
				]
			}
		}`)
	})

	profile, err := client.GetUpgradeProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1.31.0"}, profile.ControlPlaneUpgrades)
	require.Len(t, profile.Pools, 1)
	assert.Equal(t, []string{"1.31.0"}, profile.Pools[0].Upgrades)
}

func TestGetActivityLogUpgrades(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("$filter")
		assert.Contains(t, filter, "eventTimestamp ge")
		assert.Contains(t, filter, "resourceUri eq")
		assert.Equal(t, apiVersionActivity, r.URL.Query().Get("api-version"))

		fmt.Fprint(w, `{"value": [
			{"operationName": {"value": "Upgrade Cluster"}, "status": {"value": "Succeeded"},
			 "submissionTimestamp": "2026-02-20T10:00:00Z", "eventTimestamp": "2026-02-20T10:25:00Z"},
			{"operationName": {"value": "Upgrade Cluster"}, "status": {"value": "Failed"},
			 "submissionTimestamp": "2026-02-18T10:00:00Z", "eventTimestamp": "2026-02-18T10:05:00Z"},
			{"operationName": {"value": "Create or Update Managed Cluster"}, "status": {"value": "Succeeded"},
			 "submissionTimestamp": "2026-02-15T10:00:00Z", "eventTimestamp": "2026-02-15T10:05:00Z"},
			{"operationName": {"value": "Upgrade Agent Pool"}, "status": {"value": "Succeeded"},
			 "submissionTimestamp": "2026-02-10T09:00:00Z", "eventTimestamp": "2026-02-10T09:40:00Z"},
			{"operationName": {"value": "Upgrade Cluster"}, "status": {"value": "Succeeded"},
			 "submissionTimestamp": "2026-02-01T08:00:00Z", "eventTimestamp": "2026-02-01T08:30:00Z"}
		]}`)
	})
	client.now = func() time.Time { return now }

	// Five entries, three completed upgrades; count=2 keeps the newest two.
	records, err := client.GetActivityLogUpgrades(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Upgrade Cluster", records[0].OperationName)
	assert.InDelta(t, 1500, records[0].DurationSeconds, 0.001)
	assert.Equal(t, "Upgrade Agent Pool", records[1].OperationName)
	assert.InDelta(t, 2400, records[1].DurationSeconds, 0.001)
}

func TestGetActivityLogUpgradesClampsCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"value": []}`)
	})

	records, err := client.GetActivityLogUpgrades(context.Background(), 500)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetJSONErrorIncludesBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error": {"code": "AuthorizationFailed"}}`)
	})

	_, err := client.GetClusterInfo(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "AuthorizationFailed")
}
