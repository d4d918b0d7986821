package cloudapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fleetscope/fleetscope/pkg/model"
)

type upgradeProfile struct {
	Properties struct {
		ControlPlaneProfile upgradePoolProfile   `json:"controlPlaneProfile"`
		AgentPoolProfiles   []upgradePoolProfile `json:"agentPoolProfiles"`
	} `json:"properties"`
}

type upgradePoolProfile struct {
	Name              string `json:"name"`
	KubernetesVersion string `json:"kubernetesVersion"`
	Upgrades          []struct {
		KubernetesVersion string `json:"kubernetesVersion"`
		IsPreview         bool   `json:"isPreview"`
	} `json:"upgrades"`
}

// GetUpgradeProfile fetches the catalog of versions the control plane
// and each pool can upgrade to. Preview versions are excluded.
func (c *Client) GetUpgradeProfile(ctx context.Context) (model.UpgradeProfile, error) {
	var up upgradeProfile
	path := c.clusterPath() + "/upgradeProfiles/default"
	if err := c.getJSON(ctx, path, apiVersionClusters, nil, &up); err != nil {
		return model.UpgradeProfile{}, err
	}

	profile := model.UpgradeProfile{
		ControlPlaneVersion:  up.Properties.ControlPlaneProfile.KubernetesVersion,
		ControlPlaneUpgrades: stableUpgrades(up.Properties.ControlPlaneProfile),
	}
	for _, p := range up.Properties.AgentPoolProfiles {
		profile.Pools = append(profile.Pools, model.PoolUpgradeInfo{
			Name:           p.Name,
			CurrentVersion: p.KubernetesVersion,
			Upgrades:       stableUpgrades(p),
		})
	}
	return profile, nil
}

func stableUpgrades(p upgradePoolProfile) []string {
	var out []string
	for _, u := range p.Upgrades {
		if !u.IsPreview {
			out = append(out, u.KubernetesVersion)
		}
	}
	return out
}

type activityLogPage struct {
	Value []activityLogEntry `json:"value"`
}

type activityLogEntry struct {
	OperationName struct {
		Value string `json:"value"`
	} `json:"operationName"`
	Status struct {
		Value string `json:"value"`
	} `json:"status"`
	EventTimestamp      time.Time `json:"eventTimestamp"`
	SubmissionTimestamp time.Time `json:"submissionTimestamp"`
	Properties          struct {
		Message string `json:"message"`
	} `json:"properties"`
}

// GetActivityLogUpgrades returns the most recent completed upgrade
// operations from the provider's audit log, newest first, within the
// 90-day retention window. count is clamped to [1, 50].
func (c *Client) GetActivityLogUpgrades(ctx context.Context, count int) ([]model.UpgradeRecord, error) {
	if count < 1 {
		count = 1
	}
	if count > activityLogMaxCount {
		count = activityLogMaxCount
	}

	now := c.now()
	filter := fmt.Sprintf(
		"eventTimestamp ge '%s' and eventTimestamp le '%s' and resourceUri eq '%s'",
		now.Add(-activityLogWindow).Format(time.RFC3339),
		now.Format(time.RFC3339),
		c.clusterPath(),
	)
	query := url.Values{}
	query.Set("$filter", filter)

	var page activityLogPage
	path := fmt.Sprintf("/subscriptions/%s/providers/Microsoft.Insights/eventtypes/management/values", c.target.Subscription)
	if err := c.getJSON(ctx, path, apiVersionActivity, query, &page); err != nil {
		return nil, err
	}

	var records []model.UpgradeRecord
	for _, entry := range page.Value {
		if !isCompletedUpgrade(entry) {
			continue
		}
		records = append(records, model.UpgradeRecord{
			OperationName:   entry.OperationName.Value,
			Status:          entry.Status.Value,
			SubmittedAt:     entry.SubmissionTimestamp,
			CompletedAt:     entry.EventTimestamp,
			DurationSeconds: entry.EventTimestamp.Sub(entry.SubmissionTimestamp).Seconds(),
		})
		if len(records) == count {
			break
		}
	}
	return records, nil
}

// isCompletedUpgrade keeps succeeded upgrade operations only.
func isCompletedUpgrade(entry activityLogEntry) bool {
	if !strings.EqualFold(entry.Status.Value, "Succeeded") {
		return false
	}
	return strings.Contains(strings.ToLower(entry.OperationName.Value), "upgrade")
}
