// Package cloudapi speaks to the managed-cluster control plane's REST
// API: cluster metadata, node pool state, upgrade catalogs, and the
// activity log used for historical upgrade timing.
package cloudapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/fleetscope/fleetscope/internal/config"
	"github.com/fleetscope/fleetscope/pkg/model"
)

// Provider is the control-plane collaborator surface. Each method may
// fail independently; callers catch failures per call.
type Provider interface {
	GetClusterInfo(ctx context.Context) (model.ClusterInfo, error)
	GetNodePoolState(ctx context.Context, name string) (model.NodePoolState, error)
	GetUpgradeProfile(ctx context.Context) (model.UpgradeProfile, error)
	GetActivityLogUpgrades(ctx context.Context, count int) ([]model.UpgradeRecord, error)
}

// TokenSource supplies a bearer token for management API calls.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource returning a fixed token.
type StaticToken string

// Token returns the static token.
func (s StaticToken) Token(_ context.Context) (string, error) { return string(s), nil }

const (
	defaultManagementURL = "https://management.azure.com"
	apiVersionClusters   = "2024-05-01"
	apiVersionActivity   = "2015-04-01"

	// activityLogWindow bounds historical lookups; the provider keeps
	// at most 90 days of management-plane events.
	activityLogWindow = 90 * 24 * time.Hour

	// activityLogMaxCount caps how many records one call may request.
	activityLogMaxCount = 50
)

// Client implements Provider over HTTP with transparent gzip.
type Client struct {
	httpClient *http.Client
	baseURL    string
	target     config.ClusterTarget
	tokens     TokenSource
	now        func() time.Time
}

// NewClient creates a management API client for one cluster target.
func NewClient(target config.ClusterTarget, tokens TokenSource, timeout time.Duration) *Client {
	// Explicit transport instead of http.DefaultTransport to avoid
	// sharing mutable state with other code in the process.
	base := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
	}

	baseURL := target.ManagementURL
	if baseURL == "" {
		baseURL = defaultManagementURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: gzhttp.Transport(base),
		},
		baseURL: baseURL,
		target:  target,
		tokens:  tokens,
		now:     time.Now,
	}
}

// clusterPath is the resource path of the managed cluster.
func (c *Client) clusterPath() string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s/providers/Microsoft.ContainerService/managedClusters/%s",
		c.target.Subscription, c.target.ResourceGroup, c.target.Name)
}

// getJSON issues an authenticated GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path, apiVersion string, query url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("api-version", apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("cloudapi: building request: %w", err)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("cloudapi: acquiring token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cloudapi: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cloudapi: %s returned %d: %s", path, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cloudapi: decoding %s response: %w", path, err)
	}
	return nil
}
