package core

// ActivityContext exposes the previous, target and next activities around
// a candidate insertion point. Target is the not-yet-inserted
// candidate activity itself — already carrying its Job/PlaceIdx/Place —
// so a module can read "the candidate's place" as Target.Place without a
// separate field duplicating it.
type ActivityContext struct {
	Previous *Activity
	Target   *Activity
	Next     *Activity
}

// Module is one constraint-pipeline stage. Every module can gate route-
// and activity-level insertions (hard constraints), contribute to the
// insertion's soft cost, and refresh its own derived state after a
// structural change.
type Module interface {
	// Name identifies the module for diagnostics and state-key
	// namespacing.
	Name() string

	// Priority orders modules within the pipeline; lower runs first.
	// Hard rejections short-circuit evaluation, so cheap/likely-to-reject
	// modules belong at low priority.
	Priority() int

	// HardRoute decides whether job may enter routeCtx at all, before
	// any insertion point in that route is considered.
	HardRoute(routeCtx *RouteContext, job *Job) (bool, UnassignedCode)

	// HardActivity decides whether the candidate may land at this
	// specific insertion point.
	HardActivity(routeCtx *RouteContext, activityCtx *ActivityContext) (bool, UnassignedCode)

	// SoftCost is this module's contribution to the insertion's total
	// delta cost. Never used to reject.
	SoftCost(routeCtx *RouteContext, activityCtx *ActivityContext) float64

	// AcceptRouteState recomputes this module's derived route/activity
	// state after a structural change to routeCtx's tour.
	AcceptRouteState(routeCtx *RouteContext)

	// AcceptSolutionState recomputes this module's derived solution-level
	// state after a batch of route changes.
	AcceptSolutionState(solution *SolutionContext)
}

// Pipeline is the ordered constraint-module chain: it both
// feasibility-gates and costs insertions, and maintains derived
// route/solution state. Modules run in ascending Priority order; a hard
// rejection from any module short-circuits evaluation for that candidate.
type Pipeline struct {
	modules []Module
}

// NewPipeline builds a pipeline from modules, sorting them by priority
// once up front so the hot insertion path never re-sorts.
func NewPipeline(modules ...Module) *Pipeline {
	p := &Pipeline{modules: append([]Module(nil), modules...)}
	p.sortByPriority()
	return p
}

func (p *Pipeline) sortByPriority() {
	// insertion sort: pipelines hold a handful of modules, and this keeps
	// priority ties in registration order.
	for i := 1; i < len(p.modules); i++ {
		for j := i; j > 0 && p.modules[j].Priority() < p.modules[j-1].Priority(); j-- {
			p.modules[j], p.modules[j-1] = p.modules[j-1], p.modules[j]
		}
	}
}

// Modules returns the pipeline's modules in evaluation order.
func (p *Pipeline) Modules() []Module {
	return p.modules
}

// EvaluateHardRoute runs every module's HardRoute predicate, short-
// circuiting on the first rejection.
func (p *Pipeline) EvaluateHardRoute(routeCtx *RouteContext, job *Job) (bool, UnassignedCode) {
	for _, m := range p.modules {
		if ok, code := m.HardRoute(routeCtx, job); !ok {
			return false, code
		}
	}
	return true, 0
}

// EvaluateHardActivity runs every module's HardActivity predicate,
// short-circuiting on the first rejection.
func (p *Pipeline) EvaluateHardActivity(routeCtx *RouteContext, activityCtx *ActivityContext) (bool, UnassignedCode) {
	for _, m := range p.modules {
		if ok, code := m.HardActivity(routeCtx, activityCtx); !ok {
			return false, code
		}
	}
	return true, 0
}

// EvaluateSoftCost sums every module's soft-cost contribution for this
// candidate insertion point.
func (p *Pipeline) EvaluateSoftCost(routeCtx *RouteContext, activityCtx *ActivityContext) float64 {
	var total float64
	for _, m := range p.modules {
		total += m.SoftCost(routeCtx, activityCtx)
	}
	return total
}

// AcceptRouteState lets every module refresh its derived route state
// after routeCtx's tour has structurally changed. Callers must invoke
// this after every insert/remove/reorder; state is fresh only between
// this call and the next structural edit.
func (p *Pipeline) AcceptRouteState(routeCtx *RouteContext) {
	for _, m := range p.modules {
		m.AcceptRouteState(routeCtx)
	}
}

// AcceptSolutionState lets every module refresh its derived solution
// state after a batch of route changes.
func (p *Pipeline) AcceptSolutionState(solution *SolutionContext) {
	for _, m := range p.modules {
		m.AcceptSolutionState(solution)
	}
}
