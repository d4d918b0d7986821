package convert

import (
	"strconv"

	policyv1 "k8s.io/api/policy/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/fleetscope/fleetscope/pkg/model"
)

// PDBToModel converts a Kubernetes PodDisruptionBudget to a
// model.PDBInfo.
func PDBToModel(pdb *policyv1.PodDisruptionBudget) model.PDBInfo {
	info := model.PDBInfo{
		Name:               pdb.Name,
		Namespace:          pdb.Namespace,
		CurrentHealthy:     pdb.Status.CurrentHealthy,
		DesiredHealthy:     pdb.Status.DesiredHealthy,
		DisruptionsAllowed: pdb.Status.DisruptionsAllowed,
		ExpectedPods:       pdb.Status.ExpectedPods,
	}

	if pdb.Spec.Selector != nil {
		info.Selector = pdb.Spec.Selector.MatchLabels
	}
	info.MinAvailable = budgetValue(pdb.Spec.MinAvailable)
	info.MaxUnavailable = budgetValue(pdb.Spec.MaxUnavailable)

	return info
}

// budgetValue converts an IntOrString budget. Integer parse is
// attempted first; on failure the original string is kept — never an
// error.
func budgetValue(v *intstr.IntOrString) *model.BudgetValue {
	if v == nil {
		return nil
	}
	if v.Type == intstr.Int {
		return &model.BudgetValue{IntValue: int(v.IntVal), IsInt: true}
	}
	if n, err := strconv.Atoi(v.StrVal); err == nil {
		return &model.BudgetValue{IntValue: n, IsInt: true}
	}
	return &model.BudgetValue{StrValue: v.StrVal}
}
