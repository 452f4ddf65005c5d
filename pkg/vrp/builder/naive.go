package builder

import "github.com/burikinc/vrp/pkg/vrp/core"

// NaiveInsertionBuilder is the minimal reference InitialBuilder: for each
// Required job, in declaration order, it tries every route already open
// (in the order they were opened) and then every still-available actor,
// inserting the job's activities at the first feasible position the
// constraint pipeline accepts. It makes no attempt to minimize cost; it
// exists so the rest of the engine has a real, pipeline-respecting
// way to go from an empty individual to a feasible one.
//
// Multi-job (pickup/delivery) places are inserted as a contiguous block
// at the end of the chosen route rather than independently optimized,
// since searching for their individually-best positions is exactly the
// kind of insertion-heuristic sophistication this builder deliberately
// skips.
type NaiveInsertionBuilder struct{}

// NewNaiveInsertionBuilder builds the naive insertion builder.
func NewNaiveInsertionBuilder() *NaiveInsertionBuilder { return &NaiveInsertionBuilder{} }

// Build implements InitialBuilder.
func (b *NaiveInsertionBuilder) Build(ind *core.Individual) {
	sol := ind.Solution
	pipeline := ind.Problem.Constraint

	required := append([]*core.Job(nil), sol.Required...)
	for _, job := range required {
		if sol.Locked[job] {
			continue
		}
		if b.tryInsert(ind, job) {
			sol.RemoveRequired(job)
		} else {
			sol.RemoveRequired(job)
			sol.Unassigned[job] = core.CodeUnknown
		}
	}

	for _, r := range sol.Routes {
		pipeline.AcceptRouteState(r)
	}
	pipeline.AcceptSolutionState(sol)
}

func (b *NaiveInsertionBuilder) tryInsert(ind *core.Individual, job *core.Job) bool {
	sol := ind.Solution
	pipeline := ind.Problem.Constraint

	for _, routeCtx := range sol.Routes {
		if b.tryInsertIntoRoute(pipeline, routeCtx, job) {
			return true
		}
	}

	for _, actor := range sol.Registry.Available() {
		routeCtx := core.NewRouteContext(actor)
		if !b.tryInsertIntoRoute(pipeline, routeCtx, job) {
			continue
		}
		sol.Routes = append(sol.Routes, routeCtx)
		sol.Registry.UseRoute(routeCtx)
		return true
	}

	return false
}

func (b *NaiveInsertionBuilder) tryInsertIntoRoute(pipeline *core.Pipeline, routeCtx *core.RouteContext, job *core.Job) bool {
	if ok, _ := pipeline.EvaluateHardRoute(routeCtx, job); !ok {
		return false
	}

	if job.Kind == core.KindSingle {
		return b.tryInsertAtBestPosition(pipeline, routeCtx, job, 0)
	}

	// Multi job: append every place, in declared order, as a contiguous
	// block at the end of the tour.
	activities := routeCtx.Route.Tour.Activities()
	insertAt := len(activities) - 1 // right before the arrival sentinel

	snapshot := routeCtx.DeepCopy()
	for placeIdx := range job.Places {
		if !b.tryInsertPlaceAt(pipeline, routeCtx, job, placeIdx, insertAt) {
			*routeCtx = *snapshot
			return false
		}
		insertAt++
	}
	return true
}

func (b *NaiveInsertionBuilder) tryInsertAtBestPosition(pipeline *core.Pipeline, routeCtx *core.RouteContext, job *core.Job, placeIdx int) bool {
	activities := routeCtx.Route.Tour.Activities()
	for idx := 1; idx < len(activities); idx++ {
		if b.tryInsertPlaceAt(pipeline, routeCtx, job, placeIdx, idx) {
			return true
		}
	}
	return false
}

func (b *NaiveInsertionBuilder) tryInsertPlaceAt(pipeline *core.Pipeline, routeCtx *core.RouteContext, job *core.Job, placeIdx, idx int) bool {
	activities := routeCtx.Route.Tour.Activities()
	if idx < 1 || idx >= len(activities) {
		return false
	}

	target := &core.Activity{Kind: core.Service, Job: job, PlaceIdx: placeIdx, Place: job.Places[placeIdx]}
	activityCtx := &core.ActivityContext{
		Previous: activities[idx-1],
		Target:   target,
		Next:     activities[idx],
	}

	if ok, _ := pipeline.EvaluateHardActivity(routeCtx, activityCtx); !ok {
		return false
	}

	routeCtx.Route.Tour.InsertAt(idx, target)
	pipeline.AcceptRouteState(routeCtx)
	return true
}
