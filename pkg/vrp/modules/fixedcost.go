package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// FixedCostModule contributes the marginal cost of opening a vehicle: the
// first job placed onto an otherwise-empty route carries the vehicle's
// FixedCost as part of its insertion cost, so the search weighs "use one
// more vehicle" against "detour an existing one" at decision time instead
// of only discovering the fixed cost once the solution is scored.
// core.WeightedObjective charges the same FixedCost once, unconditionally,
// for every non-empty route in the final accounting — this module exists
// so that cost is visible during construction too.
type FixedCostModule struct{}

// NewFixedCostModule builds the fixed-cost module.
func NewFixedCostModule() *FixedCostModule { return &FixedCostModule{} }

// Name implements core.Module.
func (m *FixedCostModule) Name() string { return "fixed_cost" }

// Priority implements core.Module. Soft-cost only, so it can run late.
func (m *FixedCostModule) Priority() int { return 90 }

// HardRoute implements core.Module: fixed cost never rejects.
func (m *FixedCostModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module.
func (m *FixedCostModule) HardActivity(*core.RouteContext, *core.ActivityContext) (bool, core.UnassignedCode) {
	return true, 0
}

// SoftCost implements core.Module: charges FixedCost exactly once, on the
// insertion that would take the route from zero jobs to one.
func (m *FixedCostModule) SoftCost(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) float64 {
	if activityCtx.Target.Job == nil {
		return 0
	}
	if routeCtx.Route.Tour.JobCount() > 0 {
		return 0
	}
	return routeCtx.Actor().Vehicle.FixedCost
}

// AcceptRouteState implements core.Module; fixed cost derives no state.
func (m *FixedCostModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module.
func (m *FixedCostModule) AcceptSolutionState(*core.SolutionContext) {}
