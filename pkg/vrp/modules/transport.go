// Package modules provides the concrete constraint-pipeline modules:
// transport cost, capacity, reload capacity, breaks, skills, strict
// locking, travel limit, reachable, fixed cost and even distribution.
// Each is a small struct implementing the shared core.Module capability
// interface, registered into an ordered pipeline by priority.
package modules

import (
	"github.com/burikinc/vrp/pkg/vrp/core"
)

// TransportModule computes driving/serving time and distance along a
// tour, writing TotalDistanceKey/TotalDurationKey/WaitingKey route state
// and per-activity arrival/departure times during AcceptRouteState. Its
// HardActivity check enforces that an activity's time window is met at
// its own position and does not push the very next activity outside its
// window — a one-step-forward feasibility check; full downstream
// propagation happens for real once the activity is actually inserted
// and AcceptRouteState recomputes the whole tour.
type TransportModule struct {
	transport core.TransportCost
	activity  core.ActivityCost
}

// NewTransportModule builds the transport module over the given cost
// oracles.
func NewTransportModule(transport core.TransportCost, activity core.ActivityCost) *TransportModule {
	return &TransportModule{transport: transport, activity: activity}
}

// Name implements core.Module.
func (m *TransportModule) Name() string { return "transport" }

// Priority implements core.Module. Runs first: every other module reads
// the arrival/departure times this module writes.
func (m *TransportModule) Priority() int { return 0 }

// HardRoute implements core.Module. Transport has no route-level
// rejection of its own; reachability is the Reachable module's job.
func (m *TransportModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module.
func (m *TransportModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	profile := routeCtx.Actor().Vehicle.Profile

	place := activityCtx.Target.Place

	arrival := m.arrivalAt(profile, activityCtx.Previous, place)
	if !windowFeasible(place, arrival) {
		return false, core.CodeTimeWindow
	}

	if activityCtx.Next == nil {
		return true, 0
	}

	start := startTime(place, arrival)
	departure := start + m.activity.Estimate(place, arrival)
	nextArrival := m.transport.Duration(profile, place.Location, activityCtx.Next.Place.Location, departure)
	if nextArrival < 0 {
		return false, core.CodeUnreachable
	}
	if !windowFeasible(activityCtx.Next.Place, departure+nextArrival) {
		return false, core.CodeTimeWindow
	}

	return true, 0
}

// SoftCost implements core.Module: the marginal distance+duration cost of
// inserting at this point, scaled by the vehicle's per-unit costs.
func (m *TransportModule) SoftCost(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) float64 {
	vehicle := routeCtx.Actor().Vehicle
	profile := vehicle.Profile

	base := 0.0
	if activityCtx.Previous != nil {
		to := activityCtx.Target.Place.Location
		base += m.transport.Distance(profile, activityCtx.Previous.Place.Location, to, 0) * vehicle.CostPerDistance
		base += m.transport.Duration(profile, activityCtx.Previous.Place.Location, to, 0) * vehicle.CostPerTime
	}
	return base
}

// AcceptRouteState implements core.Module: walks the tour in order,
// writing arrival/departure times and accumulating distance, duration
// and waiting time.
func (m *TransportModule) AcceptRouteState(routeCtx *core.RouteContext) {
	profile := routeCtx.Actor().Vehicle.Profile
	activities := routeCtx.Route.Tour.Activities()

	var totalDistance, totalDuration, totalWaiting float64

	for i, a := range activities {
		if i == 0 {
			a.DepartureTime = routeCtx.Actor().Shift.TimeSpan.Start
			a.ArrivalTime = a.DepartureTime
			continue
		}

		prev := activities[i-1]
		dist := m.transport.Distance(profile, prev.Place.Location, a.Place.Location, prev.DepartureTime)
		dur := m.transport.Duration(profile, prev.Place.Location, a.Place.Location, prev.DepartureTime)
		if dist < 0 || dur < 0 {
			// Unreachable: the reachable module is responsible for
			// dropping this activity; here we simply stop accumulating
			// distance/duration so state never goes negative.
			a.ArrivalTime = prev.DepartureTime
			a.DepartureTime = a.ArrivalTime
			continue
		}

		totalDistance += dist
		totalDuration += dur

		arrival := prev.DepartureTime + dur
		a.ArrivalTime = arrival

		start := startTime(a.Place, arrival)
		waiting := start - arrival
		if waiting > 0 {
			totalWaiting += waiting
		}

		service := m.activity.Estimate(a.Place, arrival)
		totalDuration += service
		a.DepartureTime = start + service
	}

	routeCtx.State.SetRouteState(core.TotalDistanceKey, totalDistance)
	routeCtx.State.SetRouteState(core.TotalDurationKey, totalDuration+totalWaiting)
	routeCtx.State.SetRouteState(core.WaitingKey, totalWaiting)
}

// AcceptSolutionState implements core.Module; transport has no
// solution-level aggregate beyond what each route already carries.
func (m *TransportModule) AcceptSolutionState(*core.SolutionContext) {}

func (m *TransportModule) arrivalAt(profile int, previous *core.Activity, place core.Place) float64 {
	if previous == nil {
		return 0
	}
	dur := m.transport.Duration(profile, previous.Place.Location, place.Location, previous.DepartureTime)
	if dur < 0 {
		return -1
	}
	return previous.DepartureTime + dur
}

func windowFeasible(place core.Place, arrival float64) bool {
	if arrival < 0 {
		return false
	}
	if len(place.TimeWindows) == 0 {
		return true
	}
	for _, w := range place.TimeWindows {
		if arrival <= w.End {
			return true
		}
	}
	return false
}

func startTime(place core.Place, arrival float64) float64 {
	if len(place.TimeWindows) == 0 {
		return arrival
	}
	for _, w := range place.TimeWindows {
		if arrival <= w.End {
			if arrival < w.Start {
				return w.Start
			}
			return arrival
		}
	}
	return arrival
}
