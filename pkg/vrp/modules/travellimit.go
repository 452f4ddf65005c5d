package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// TravelLimitModule caps a vehicle's total travel distance/duration per
// shift. Zero on either field means that dimension is
// unbounded. It re-derives the marginal leg cost the same way
// TransportModule's HardActivity does, rather than reading
// TotalDistanceKey/TotalDurationKey, since those only reflect the tour's
// state as of the last AcceptRouteState and this check must hold for the
// candidate insertion point before it is ever accepted.
type TravelLimitModule struct {
	transport core.TransportCost
}

// NewTravelLimitModule builds the travel-limit module over the same
// transport oracle TransportModule uses.
func NewTravelLimitModule(transport core.TransportCost) *TravelLimitModule {
	return &TravelLimitModule{transport: transport}
}

// Name implements core.Module.
func (m *TravelLimitModule) Name() string { return "travel_limit" }

// Priority implements core.Module. Depends on nothing but the raw
// transport oracle, so it can run right after transport itself.
func (m *TravelLimitModule) Priority() int { return 5 }

// HardRoute implements core.Module: travel limit is a cumulative,
// position-dependent property, not a per-job one.
func (m *TravelLimitModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module: rejects if inserting here would
// push the route's running distance or duration past the vehicle's
// MaxDistance/MaxDuration.
func (m *TravelLimitModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	vehicle := routeCtx.Actor().Vehicle
	if vehicle.MaxDistance <= 0 && vehicle.MaxDuration <= 0 {
		return true, 0
	}
	if activityCtx.Previous == nil {
		return true, 0
	}

	profile := vehicle.Profile
	from := activityCtx.Previous.Place.Location
	to := activityCtx.Target.Place.Location

	legDistance := m.transport.Distance(profile, from, to, activityCtx.Previous.DepartureTime)
	legDuration := m.transport.Duration(profile, from, to, activityCtx.Previous.DepartureTime)
	if legDistance < 0 || legDuration < 0 {
		return false, core.CodeUnreachable
	}

	runDistance, runDuration := m.runningTravel(routeCtx, activityCtx.Previous)
	runDistance += legDistance
	runDuration += legDuration

	if vehicle.MaxDistance > 0 && runDistance > vehicle.MaxDistance {
		return false, core.CodeTravelLimit
	}
	if vehicle.MaxDuration > 0 && runDuration > vehicle.MaxDuration {
		return false, core.CodeTravelLimit
	}
	return true, 0
}

// SoftCost implements core.Module: travel limit is a hard constraint
// only — its cost is already counted by TransportModule.
func (m *TravelLimitModule) SoftCost(*core.RouteContext, *core.ActivityContext) float64 { return 0 }

// AcceptRouteState implements core.Module; travel limit derives no state
// of its own.
func (m *TravelLimitModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module.
func (m *TravelLimitModule) AcceptSolutionState(*core.SolutionContext) {}

// runningTravel sums distance/duration over every leg up to and including
// prev, using each activity's already-accepted arrival/departure times as
// the basis for each leg's distance/duration lookup.
func (m *TravelLimitModule) runningTravel(routeCtx *core.RouteContext, prev *core.Activity) (float64, float64) {
	activities := routeCtx.Route.Tour.Activities()
	profile := routeCtx.Actor().Vehicle.Profile
	var distance, duration float64
	for i := 1; i < len(activities); i++ {
		a, b := activities[i-1], activities[i]
		if a == prev {
			break
		}
		d := m.transport.Distance(profile, a.Place.Location, b.Place.Location, a.DepartureTime)
		t := m.transport.Duration(profile, a.Place.Location, b.Place.Location, a.DepartureTime)
		if d > 0 {
			distance += d
		}
		if t > 0 {
			duration += t
		}
	}
	return distance, duration
}
