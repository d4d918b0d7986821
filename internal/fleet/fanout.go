// Package fleet runs single-cluster operations concurrently across the
// configured fleet, isolating failures per cluster.
package fleet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// Result pairs one cluster's outcome with its ID so callers never rely
// on positional alignment after failures are filtered out.
type Result[T any] struct {
	ClusterID string
	Value     T
}

// Operation is a single-cluster query.
type Operation[T any] func(ctx context.Context, clusterID string) (T, error)

// FanOut launches one concurrent invocation of op per cluster ID. All
// invocations run independently: a failure or panic in one never
// cancels, delays, or corrupts the others. Failures are logged with
// cluster and operation context and excluded from the returned list —
// no placeholders. Results are ordered by cluster ID for determinism.
func FanOut[T any](ctx context.Context, name string, clusterIDs []string, op Operation[T]) []Result[T] {
	results := make(chan Result[T], len(clusterIDs))

	var wg sync.WaitGroup
	for _, id := range clusterIDs {
		wg.Add(1)
		go func(clusterID string) {
			defer wg.Done()
			value, err := invoke(ctx, clusterID, op)
			if err != nil {
				slog.Error("fan-out cluster failed",
					"operation", name,
					"cluster", clusterID,
					"error", err,
				)
				return
			}
			results <- Result[T]{ClusterID: clusterID, Value: value}
		}(id)
	}
	wg.Wait()
	close(results)

	out := make([]Result[T], 0, len(clusterIDs))
	for r := range results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClusterID < out[j].ClusterID })
	return out
}

// invoke runs op with panic containment so one misbehaving cluster
// handler cannot take down the process or its siblings.
func invoke[T any](ctx context.Context, clusterID string, op Operation[T]) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return op(ctx, clusterID)
}
