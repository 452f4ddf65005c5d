package modules

import (
	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/population"
)

// evenDistributionWeight scales how strongly imbalance across routes
// feeds into an insertion's soft cost relative to distance/duration.
const evenDistributionWeight = 1.0

// EvenDistributionModule penalizes insertions that push a route's job
// count further above the fleet's current mean. It keeps the fleet-wide
// mean job count as state refreshed once per AcceptSolutionState call,
// since SoftCost only
// sees one route at a time and can't recompute a cross-route mean on its
// own; the fuller breakdown (load variance, distance gravity, …) is
// cached alongside it and returned by Metrics. SoftCost reads only the
// mean job count.
type EvenDistributionModule struct {
	transport core.TransportCost
	metrics   population.Metrics
	meanCount float64
}

// NewEvenDistributionModule builds the even-distribution module over the
// given transport oracle, used for the distance-gravity component of its
// cached metrics.
func NewEvenDistributionModule(transport core.TransportCost) *EvenDistributionModule {
	return &EvenDistributionModule{transport: transport}
}

// Name implements core.Module.
func (m *EvenDistributionModule) Name() string { return "even_distribution" }

// Priority implements core.Module. Soft-cost only, runs last.
func (m *EvenDistributionModule) Priority() int { return 100 }

// HardRoute implements core.Module: even distribution never rejects.
func (m *EvenDistributionModule) HardRoute(*core.RouteContext, *core.Job) (bool, core.UnassignedCode) {
	return true, 0
}

// HardActivity implements core.Module.
func (m *EvenDistributionModule) HardActivity(*core.RouteContext, *core.ActivityContext) (bool, core.UnassignedCode) {
	return true, 0
}

// SoftCost implements core.Module: charges a penalty proportional to how
// far above the fleet's last-known mean job count this route would sit
// after the insertion, so the search prefers opening/extending an
// under-loaded route over continuing to pile onto an already-busy one.
func (m *EvenDistributionModule) SoftCost(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) float64 {
	if activityCtx.Target.Job == nil {
		return 0
	}
	count := float64(routeCtx.Route.Tour.JobCount())
	excess := count + 1 - m.meanCount
	if excess <= 0 {
		return 0
	}
	return excess * evenDistributionWeight
}

// AcceptRouteState implements core.Module; imbalance is a cross-route
// property, computed in AcceptSolutionState instead.
func (m *EvenDistributionModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module: recomputes the fleet-wide
// metrics this module's SoftCost reads on the next round of candidate
// evaluation.
func (m *EvenDistributionModule) AcceptSolutionState(solution *core.SolutionContext) {
	m.metrics = population.Compute(solution, m.transport)

	var total float64
	for _, r := range solution.Routes {
		total += float64(r.Route.Tour.JobCount())
	}
	if len(solution.Routes) > 0 {
		m.meanCount = total / float64(len(solution.Routes))
	} else {
		m.meanCount = 0
	}
}

// Metrics returns the fleet-wide metrics as of the last AcceptSolutionState
// call.
func (m *EvenDistributionModule) Metrics() population.Metrics {
	return m.metrics
}
