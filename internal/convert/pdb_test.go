package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

func TestPDBToModel(t *testing.T) {
	min := intstr.FromInt32(3)
	pdb := &policyv1.PodDisruptionBudget{
		ObjectMeta: metav1.ObjectMeta{Name: "api-pdb", Namespace: "payments"},
		Spec: policyv1.PodDisruptionBudgetSpec{
			MinAvailable: &min,
			Selector:     &metav1.LabelSelector{MatchLabels: map[string]string{"app": "api"}},
		},
		Status: policyv1.PodDisruptionBudgetStatus{
			CurrentHealthy:     3,
			DesiredHealthy:     3,
			DisruptionsAllowed: 0,
			ExpectedPods:       3,
		},
	}

	info := PDBToModel(pdb)

	assert.Equal(t, "api-pdb", info.Name)
	assert.Equal(t, map[string]string{"app": "api"}, info.Selector)
	require.NotNil(t, info.MinAvailable)
	assert.True(t, info.MinAvailable.IsInt)
	assert.Equal(t, 3, info.MinAvailable.IntValue)
	assert.Nil(t, info.MaxUnavailable)
	assert.Equal(t, int32(0), info.DisruptionsAllowed)
}

func TestBudgetValue(t *testing.T) {
	intVal := intstr.FromInt32(0)
	got := budgetValue(&intVal)
	require.NotNil(t, got)
	assert.True(t, got.IsInt)
	assert.Equal(t, 0, got.IntValue)

	// A numeric string parses as an integer.
	numStr := intstr.FromString("5")
	got = budgetValue(&numStr)
	require.NotNil(t, got)
	assert.True(t, got.IsInt)
	assert.Equal(t, 5, got.IntValue)

	// A percentage stays a string, never an error.
	pct := intstr.FromString("25%")
	got = budgetValue(&pct)
	require.NotNil(t, got)
	assert.False(t, got.IsInt)
	assert.Equal(t, "25%", got.StrValue)

	assert.Nil(t, budgetValue(nil))
}
