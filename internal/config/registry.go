package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClusterTarget is the identity and coordinates of one managed cluster.
// Immutable after load; looked up by composite ID.
type ClusterTarget struct {
	Environment   string `yaml:"environment"`
	Region        string `yaml:"region"`
	Subscription  string `yaml:"subscription"`
	ResourceGroup string `yaml:"resource_group"`
	Name          string `yaml:"name"`
	KubeContext   string `yaml:"kube_context"`

	// ManagementURL overrides the control-plane API base URL, used in
	// tests and sovereign-cloud deployments.
	ManagementURL string `yaml:"management_url,omitempty"`
}

// ID returns the composite cluster identifier used in tool requests.
func (t ClusterTarget) ID() string {
	return fmt.Sprintf("%s-%s-%s", t.Environment, t.Region, t.Name)
}

// Registry is the set of configured cluster targets, frozen at startup.
type Registry struct {
	targets map[string]ClusterTarget // key = lowercase composite ID
	ids     []string                 // sorted, original case
}

// registryFile is the on-disk YAML shape.
type registryFile struct {
	Clusters []ClusterTarget `yaml:"clusters"`
}

// LoadRegistry reads and validates the cluster registry from path.
// Any structural problem is fatal: the process must not serve requests
// with a partial registry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading clusters file: %w", err)
	}
	return ParseRegistry(data)
}

// ParseRegistry builds a Registry from raw YAML.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parsing clusters file: %w", err)
	}
	if len(file.Clusters) == 0 {
		return nil, fmt.Errorf("config: clusters file defines no clusters")
	}

	reg := &Registry{targets: make(map[string]ClusterTarget, len(file.Clusters))}
	for i, t := range file.Clusters {
		if err := validateTarget(t); err != nil {
			return nil, fmt.Errorf("config: cluster %d: %w", i, err)
		}
		id := strings.ToLower(t.ID())
		if _, dup := reg.targets[id]; dup {
			return nil, fmt.Errorf("config: duplicate cluster id %q", t.ID())
		}
		reg.targets[id] = t
		reg.ids = append(reg.ids, t.ID())
	}
	sort.Strings(reg.ids)
	return reg, nil
}

// validateTarget rejects missing required fields and placeholder values
// left over from a template.
func validateTarget(t ClusterTarget) error {
	fields := map[string]string{
		"environment":    t.Environment,
		"region":         t.Region,
		"subscription":   t.Subscription,
		"resource_group": t.ResourceGroup,
		"name":           t.Name,
	}
	for name, v := range fields {
		if v == "" {
			return fmt.Errorf("missing required field %s", name)
		}
		if isPlaceholder(v) {
			return fmt.Errorf("field %s has placeholder value %q", name, v)
		}
	}
	return nil
}

// isPlaceholder catches template values like "<subscription-id>" or
// "CHANGEME" that would otherwise fail at request time.
func isPlaceholder(v string) bool {
	if strings.HasPrefix(v, "<") || strings.HasSuffix(v, ">") {
		return true
	}
	upper := strings.ToUpper(v)
	return strings.Contains(upper, "CHANGEME") || strings.Contains(upper, "TODO") ||
		strings.Contains(upper, "REPLACE")
}

// Lookup resolves a composite cluster ID, case-insensitively.
func (r *Registry) Lookup(id string) (ClusterTarget, bool) {
	t, ok := r.targets[strings.ToLower(id)]
	return t, ok
}

// IDs returns all configured cluster IDs in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Targets returns all configured targets, ordered by ID.
func (r *Registry) Targets() []ClusterTarget {
	out := make([]ClusterTarget, 0, len(r.ids))
	for _, id := range r.ids {
		out = append(out, r.targets[strings.ToLower(id)])
	}
	return out
}
