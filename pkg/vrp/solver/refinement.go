// Package solver glues the engine together: initial builders
// seed a population, a mutation refines it generation by generation, a
// termination predicate (plus an external quota) decides when to stop,
// and telemetry observes the run.
package solver

import (
	"time"

	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// RefinementContext carries one refinement run's shared state: the
// problem, the evolving population, the cancellation quota, and the
// run's accumulated statistics. It satisfies both mutation.Context and
// termination.Context, so mutations and stopping predicates read the
// same source of truth.
type RefinementContext struct {
	problem    *core.Problem
	pop        population.Population
	quota      termination.Quota
	startedAt  time.Time
	generation int

	// State is the cross-component annotation bag mirroring
	// SolutionContext.State at the run level; strategies and telemetry
	// sinks may stash whatever bookkeeping they need here.
	State map[string]any
}

// NewRefinementContext starts a run's clock over the given problem,
// population and quota. A nil quota means "never cancelled externally".
func NewRefinementContext(problem *core.Problem, pop population.Population, quota termination.Quota) *RefinementContext {
	if quota == nil {
		quota = termination.NoQuota{}
	}
	return &RefinementContext{
		problem:   problem,
		pop:       pop,
		quota:     quota,
		startedAt: time.Now(),
		State:     make(map[string]any),
	}
}

// Problem implements mutation.Context.
func (c *RefinementContext) Problem() *core.Problem { return c.problem }

// Quota implements mutation.Context.
func (c *RefinementContext) Quota() termination.Quota { return c.quota }

// Population implements mutation.Context.
func (c *RefinementContext) Population() population.Population { return c.pop }

// Generation implements termination.Context.
func (c *RefinementContext) Generation() int { return c.generation }

// Elapsed implements termination.Context.
func (c *RefinementContext) Elapsed() time.Duration { return time.Since(c.startedAt) }

// BestCost implements termination.Context.
func (c *RefinementContext) BestCost() (float64, bool) {
	best := c.pop.Select()
	if best == nil {
		return 0, false
	}
	return best.Cost(), true
}

// PopulationSize implements termination.Context.
func (c *RefinementContext) PopulationSize() int { return c.pop.Size() }

// ShouldAddSolution reports whether a freshly produced individual may
// enter the population: once the quota is reached no more
// solutions are added — unless the population would otherwise stay
// empty, so the caller always receives at least one result.
func ShouldAddSolution(ctx *RefinementContext) bool {
	if ctx.pop.Size() == 0 {
		return true
	}
	return !ctx.quota.IsReached()
}
