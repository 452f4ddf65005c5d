package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// breakUnassignedPenalty is the flat cost charged per shift break that
// could not be placed anywhere in its route. The matching rejection
// code is core.CodeBreakUnassigned; the cost is the magnitude.
const breakUnassignedPenalty = 100.0

// BreaksModule governs insertion/skip decisions for vehicle breaks.
// Breaks are optional: a shift with a configured Break may have it placed
// anywhere feasible in the tour, or skipped entirely at the cost of
// breakUnassignedPenalty. Unlike jobs, a skipped break never
// blocks the route from being considered complete — it only adds to
// solution cost via core.BreakPenaltyKey.
type BreaksModule struct {
	transport core.TransportCost
}

// NewBreaksModule builds the breaks module over the given transport
// oracle, used to check a break's own arrival time against its window.
func NewBreaksModule(transport core.TransportCost) *BreaksModule {
	return &BreaksModule{transport: transport}
}

// Name implements core.Module.
func (m *BreaksModule) Name() string { return "breaks" }

// Priority implements core.Module. Runs alongside transport, since break
// feasibility is purely a timing question.
func (m *BreaksModule) Priority() int { return 3 }

// HardRoute implements core.Module: breaks aren't jobs, so they never
// participate in job-level route rejection.
func (m *BreaksModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module: when the candidate is a break
// activity, enforces its own time window the same way TransportModule
// enforces a job's.
func (m *BreaksModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	if activityCtx.Target.Kind != core.Break {
		return true, 0
	}
	if activityCtx.Previous == nil {
		return true, 0
	}

	profile := routeCtx.Actor().Vehicle.Profile
	place := activityCtx.Target.Place

	dur := m.transport.Duration(profile, activityCtx.Previous.Place.Location, place.Location, activityCtx.Previous.DepartureTime)
	if dur < 0 {
		return false, core.CodeUnreachable
	}
	arrival := activityCtx.Previous.DepartureTime + dur
	if !windowFeasible(place, arrival) {
		return false, core.CodeTimeWindow
	}
	return true, 0
}

// SoftCost implements core.Module: placing a break costs nothing beyond
// the travel TransportModule already charges to reach it; skipping it is
// priced once per route in AcceptSolutionState instead.
func (m *BreaksModule) SoftCost(*core.RouteContext, *core.ActivityContext) float64 { return 0 }

// AcceptRouteState implements core.Module; break timing is recomputed by
// TransportModule's generic per-activity walk, since a Break activity is
// just another Place/duration pair along the tour.
func (m *BreaksModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module: tallies breakUnassignedPenalty
// once for every route whose actor's shift declares a break that no
// Break-kind activity in the tour satisfies.
func (m *BreaksModule) AcceptSolutionState(solution *core.SolutionContext) {
	var total float64
	for _, r := range solution.Routes {
		configured := len(r.Actor().Shift.Breaks)
		placed := countBreaks(r)
		if configured > placed {
			total += float64(configured-placed) * breakUnassignedPenalty
		}
	}
	solution.State.SetRouteState(core.BreakPenaltyKey, total)
}

func countBreaks(routeCtx *core.RouteContext) int {
	n := 0
	for _, a := range routeCtx.Route.Tour.Activities() {
		if a.Kind == core.Break {
			n++
		}
	}
	return n
}
