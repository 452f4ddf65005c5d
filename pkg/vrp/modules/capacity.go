package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// CapacityModule enforces that a vehicle's running load never exceeds its
// Capacity at any point along the tour, supporting single- or
// multi-dimensional capacities.
type CapacityModule struct{}

// NewCapacityModule builds the capacity module.
func NewCapacityModule() *CapacityModule { return &CapacityModule{} }

// Name implements core.Module.
func (m *CapacityModule) Name() string { return "capacity" }

// Priority implements core.Module. Runs after transport (needs no
// timing) but before the softer modules.
func (m *CapacityModule) Priority() int { return 10 }

// HardRoute implements core.Module: a job whose demand alone exceeds the
// vehicle's capacity can never fit, regardless of position.
func (m *CapacityModule) HardRoute(routeCtx *core.RouteContext, job *core.Job) (bool, core.UnassignedCode) {
	cap := routeCtx.Actor().Vehicle.Capacity
	if cap.Exceeds(peakDemand(job)) {
		return false, core.CodeCapacity
	}
	return true, 0
}

// HardActivity implements core.Module: replays the route's running load
// up to and including the candidate activity, rejecting if it would ever
// exceed capacity. Reload activities reset the running load to zero,
// the same replay ReloadModule performs.
func (m *CapacityModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	cap := routeCtx.Actor().Vehicle.Capacity
	load := runningLoadBefore(routeCtx, activityCtx.Previous)
	if activityCtx.Target.Job != nil {
		load = load.Add(netDemandForPlace(activityCtx.Target.Job, activityCtx.Target.PlaceIdx))
	}
	if cap.Exceeds(load) {
		return false, core.CodeCapacity
	}
	return true, 0
}

// SoftCost implements core.Module: capacity is a hard constraint only.
func (m *CapacityModule) SoftCost(*core.RouteContext, *core.ActivityContext) float64 { return 0 }

// AcceptRouteState implements core.Module: writes the route's observed
// maximum load to MaxLoadKey.
func (m *CapacityModule) AcceptRouteState(routeCtx *core.RouteContext) {
	var maxLoad float64
	var running core.Capacity
	for _, a := range routeCtx.Route.Tour.Activities() {
		if a.Job == nil {
			continue
		}
		running = running.Add(netDemandForPlace(a.Job, a.PlaceIdx))
		for _, v := range running {
			if v > maxLoad {
				maxLoad = v
			}
		}
	}
	routeCtx.State.SetRouteState(core.MaxLoadKey, maxLoad)
}

// AcceptSolutionState implements core.Module; no solution-level aggregate.
func (m *CapacityModule) AcceptSolutionState(*core.SolutionContext) {}

// peakDemand is the highest instantaneous load the job alone puts on a
// vehicle: a Single job's net demand, or — for a Multi job — the
// dimension-wise max of its pickup and delivery sides, since the full
// pickup is carried between the two legs.
func peakDemand(job *core.Job) core.Capacity {
	if job.Kind != core.KindMulti {
		return job.Demand.Pickup.Sub(job.Demand.Delivery)
	}
	p, d := job.Demand.Pickup, job.Demand.Delivery
	n := len(p)
	if len(d) > n {
		n = len(d)
	}
	out := make(core.Capacity, n)
	for i := 0; i < n; i++ {
		var pv, dv float64
		if i < len(p) {
			pv = p[i]
		}
		if i < len(d) {
			dv = d[i]
		}
		if pv > dv {
			out[i] = pv
		} else {
			out[i] = dv
		}
	}
	return out
}

// netDemandForPlace is the load delta serving place idx of job applies
// to the vehicle. A Single job applies its whole net demand at its one
// place; a Multi job picks up at its first place and delivers at its
// last, carrying the load across everything in between.
func netDemandForPlace(job *core.Job, idx int) core.Capacity {
	if job.Kind != core.KindMulti {
		return job.Demand.Pickup.Sub(job.Demand.Delivery)
	}
	var delta core.Capacity
	if idx == 0 {
		delta = delta.Add(job.Demand.Pickup)
	}
	if idx == len(job.Places)-1 {
		delta = delta.Sub(job.Demand.Delivery)
	}
	return delta
}

// runningLoadBefore replays net demand for every activity up to and
// including prev, resetting to zero at every Reload activity.
func runningLoadBefore(routeCtx *core.RouteContext, prev *core.Activity) core.Capacity {
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
