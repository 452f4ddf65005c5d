package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// reloadThreshold is the fraction of a vehicle's capacity at which a load
// is considered "near full" for soft-cost purposes. It does not change
// the hard capacity bound itself — a vehicle may still load right up to
// Capacity between reloads — it only nudges the search toward inserting a
// reload before things get tight.
const reloadThreshold = 0.9

// ReloadModule is capacity-with-resets: it replays the same running-load
// simulation as CapacityModule, except the running load snaps back to
// zero at every Reload activity.
// Vehicles with no Reloads configured are not checked here at all
// (HardActivity accepts and SoftCost is zero), leaving them to
// CapacityModule, so this module is safe to register alongside it.
type ReloadModule struct{}

// NewReloadModule builds the reload-capacity module.
func NewReloadModule() *ReloadModule { return &ReloadModule{} }

// Name implements core.Module.
func (m *ReloadModule) Name() string { return "reload" }

// Priority implements core.Module. Runs immediately after capacity, since
// it is capacity's reload-aware refinement.
func (m *ReloadModule) Priority() int { return 11 }

// HardRoute implements core.Module: reload resets mean a job's own demand
// alone is never route-infeasible on this dimension beyond what
// CapacityModule already checks.
func (m *ReloadModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module: rejects if the running load,
// reset at every reload since the route's start, would exceed capacity
// at the candidate insertion point.
func (m *ReloadModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	vehicle := routeCtx.Actor().Vehicle
	if len(vehicle.Reloads) == 0 {
		return true, 0
	}

	cap := vehicle.Capacity
	load := runningLoadSinceReload(routeCtx, activityCtx.Previous)
	if activityCtx.Target.Job != nil {
		load = load.Add(netDemandForPlace(activityCtx.Target.Job, activityCtx.Target.PlaceIdx))
	}
	if cap.Exceeds(load) {
		return false, core.CodeCapacity
	}
	return true, 0
}

// SoftCost implements core.Module: penalizes inserting a job that pushes
// the load since the last reload above reloadThreshold of capacity,
// nudging the search toward placing a reload first instead of running the
// vehicle right up to its limit.
func (m *ReloadModule) SoftCost(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) float64 {
	vehicle := routeCtx.Actor().Vehicle
	if len(vehicle.Reloads) == 0 || activityCtx.Target.Job == nil {
		return 0
	}

	load := runningLoadSinceReload(routeCtx, activityCtx.Previous)
	load = load.Add(netDemandForPlace(activityCtx.Target.Job, activityCtx.Target.PlaceIdx))

	var penalty float64
	for i, l := range load {
		var c float64
		if i < len(vehicle.Capacity) {
			c = vehicle.Capacity[i]
		}
		if c <= 0 {
			continue
		}
		if l/c > reloadThreshold {
			penalty += (l/c - reloadThreshold) * c
		}
	}
	return penalty
}

// AcceptRouteState implements core.Module; reload derives no aggregate
// state beyond what the hard check already replays on demand.
func (m *ReloadModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module.
func (m *ReloadModule) AcceptSolutionState(*core.SolutionContext) {}

// runningLoadSinceReload replays net demand for every activity up to and
// including prev, resetting to zero whenever a Reload activity is
// crossed.
func runningLoadSinceReload(routeCtx *core.RouteContext, prev *core.Activity) core.Capacity {
	var running core.Capacity
	for _, a := range routeCtx.Route.Tour.Activities() {
		if a.Kind == core.Reload {
			running = nil
		} else if a.Job != nil {
			running = running.Add(netDemandForPlace(a.Job, a.PlaceIdx))
		}
		if a == prev {
			break
		}
	}
	return running
}
