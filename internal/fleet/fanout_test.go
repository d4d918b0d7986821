package fleet

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutAllSucceed(t *testing.T) {
	ids := []string{"prod-eu-a", "prod-us-b", "staging-eu-c"}

	results := FanOut(context.Background(), "test", ids, func(_ context.Context, id string) (string, error) {
		return "result-" + id, nil
	})

	require.Len(t, results, 3)
	// Sorted by cluster ID, each result attributable to its source.
	assert.Equal(t, "prod-eu-a", results[0].ClusterID)
	assert.Equal(t, "result-prod-eu-a", results[0].Value)
	assert.Equal(t, "staging-eu-c", results[2].ClusterID)
}

func TestFanOutOneFailureYieldsNMinusOne(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}

	results := FanOut(context.Background(), "test", ids, func(_ context.Context, id string) (int, error) {
		if id == "b" {
			return 0, errors.New("unreachable")
		}
		return len(id), nil
	})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.NotEqual(t, "b", r.ClusterID, "failed cluster must not appear as a placeholder")
	}
}

func TestFanOutPanicIsolation(t *testing.T) {
	ids := []string{"a", "b", "c"}
	var calls atomic.Int32

	results := FanOut(context.Background(), "test", ids, func(_ context.Context, id string) (string, error) {
		calls.Add(1)
		if id == "a" {
			panic("boom")
		}
		return id, nil
	})

	assert.Equal(t, int32(3), calls.Load(), "panic must not prevent sibling invocations")
	require.Len(t, results, 2)
	assert.Equal(t, "b", results[0].ClusterID)
	assert.Equal(t, "c", results[1].ClusterID)
}

func TestFanOutEmpty(t *testing.T) {
	results := FanOut(context.Background(), "test", nil, func(_ context.Context, id string) (string, error) {
		t.Fatal("operation must not run with no clusters")
		return "", nil
	})
	assert.Empty(t, results)
}
