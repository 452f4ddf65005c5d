package mutation

import (
	"github.com/burikinc/vrp/pkg/vrp/builder"
	"github.com/burikinc/vrp/pkg/vrp/core"
)

// repair runs the naive insertion builder over whatever is left in
// ind.Solution.Required after a mutation's edits — every mutation in this
// package is free to leave removed jobs as Required rather than
// rolling back a failed reinsertion itself, relying on repair to either
// place them somewhere in the existing routes/actors or fall through to
// Unassigned, keeping the post-mutation individual in a valid partition
// of {served, Required, Ignored, Unassigned}.
func repair(ind *core.Individual) {
	if len(ind.Solution.Required) == 0 {
		return
	}
	builder.NewNaiveInsertionBuilder().Build(ind)
}

// removeJob pulls job out of routeCtx's tour and appends it to the
// individual's Required list, running AcceptRouteState so the route's
// derived state reflects the removal before repair runs.
func removeJob(ind *core.Individual, routeCtx *core.RouteContext, job *core.Job) {
	if !routeCtx.Route.Tour.RemoveJob(job) {
		return
	}
	ind.Problem.Constraint.AcceptRouteState(routeCtx)
	ind.Solution.Required = append(ind.Solution.Required, job)
}
