package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// ReachableModule rejects inserting an activity whose leg from the
// previous activity (or to the next one) the transport oracle reports as
// unroutable — a negative distance or duration, following TransportCost's
// convention of returning a negative value for an unroutable
// (profile, from, to) pair. It exists separately
// from TransportModule so a problem can drop the reachability check
// (e.g. when every location is known-connected) without losing time
// window enforcement, and vice versa.
type ReachableModule struct {
	transport core.TransportCost
}

// NewReachableModule builds the reachable module over the given
// transport oracle.
func NewReachableModule(transport core.TransportCost) *ReachableModule {
	return &ReachableModule{transport: transport}
}

// Name implements core.Module.
func (m *ReachableModule) Name() string { return "reachable" }

// Priority implements core.Module. Runs after transport, skills and
// locking, ahead of the breaks, travel-limit and capacity checks.
func (m *ReachableModule) Priority() int { return 2 }

// HardRoute implements core.Module: reachability depends on tour
// position, not the job alone.
func (m *ReachableModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module.
func (m *ReachableModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	profile := routeCtx.Actor().Vehicle.Profile
	to := activityCtx.Target.Place.Location

	if activityCtx.Previous != nil {
		from := activityCtx.Previous.Place.Location
		if m.transport.Distance(profile, from, to, activityCtx.Previous.DepartureTime) < 0 {
			return false, core.CodeUnreachable
		}
		if m.transport.Duration(profile, from, to, activityCtx.Previous.DepartureTime) < 0 {
			return false, core.CodeUnreachable
		}
	}
	if activityCtx.Next != nil {
		nextTo := activityCtx.Next.Place.Location
		if m.transport.Distance(profile, to, nextTo, 0) < 0 {
			return false, core.CodeUnreachable
		}
		if m.transport.Duration(profile, to, nextTo, 0) < 0 {
			return false, core.CodeUnreachable
		}
	}
	return true, 0
}

// SoftCost implements core.Module: reachability only ever hard-rejects.
func (m *ReachableModule) SoftCost(*core.RouteContext, *core.ActivityContext) float64 { return 0 }

// AcceptRouteState implements core.Module: drops any activity already in
// the tour whose leg from its predecessor has become unroutable — this
// can happen after a decomposition merge stitches together routes built
// against different partial matrices.
func (m *ReachableModule) AcceptRouteState(routeCtx *core.RouteContext) {
	profile := routeCtx.Actor().Vehicle.Profile
	activities := routeCtx.Route.Tour.Activities()

	var unreachable []*core.Job
	for i := 1; i < len(activities); i++ {
		prev, cur := activities[i-1], activities[i]
		if cur.Job == nil {
			continue
		}
		if m.transport.Distance(profile, prev.Place.Location, cur.Place.Location, prev.DepartureTime) < 0 {
			unreachable = append(unreachable, cur.Job)
		}
	}
	for _, job := range unreachable {
		routeCtx.Route.Tour.RemoveJob(job)
	}
}

// AcceptSolutionState implements core.Module; jobs dropped for
// unreachability are re-surfaced into Required by the caller driving
// AcceptRouteState, not here — this module only knows about one route at
// a time.
func (m *ReachableModule) AcceptSolutionState(*core.SolutionContext) {}
