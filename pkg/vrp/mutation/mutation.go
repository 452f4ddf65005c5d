// Package mutation holds the mutation operators: ruin-and-recreate,
// local-search swap/cross exchange, and the decomposition mutation.
package mutation

import (
	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// Context is the slice of a refinement run a mutation needs: the shared
// Problem, the run's cancellation Quota, and the population the run is
// refining (DecomposeSearch seeds from its top-ranked individual). It is
// an interface, not solver.RefinementContext directly, so this package
// never imports solver — solver.RefinementContext satisfies Context by
// construction, and decompose's per-partition contexts satisfy it with a
// small local type of their own.
type Context interface {
	Problem() *core.Problem
	Quota() termination.Quota
	Population() population.Population
}

// Mutation transforms candidate solutions: MutateOne derives one individual
// deterministically given its own Random; MutateAll may parallelize
// across several.
type Mutation interface {
	// MutateOne returns a new individual derived from ind. ind itself is
	// never modified — mutations read it by shared reference and return a
	// new owned Individual.
	MutateOne(ctx Context, ind *core.Individual) *core.Individual
	// MutateAll applies MutateOne across inds, in whatever order and
	// concurrency the implementation chooses; the result has the same
	// length as inds, index-aligned.
	MutateAll(ctx Context, inds []*core.Individual) []*core.Individual
}
