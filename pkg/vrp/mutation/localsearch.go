package mutation

import "github.com/burikinc/vrp/pkg/vrp/core"

// SwapExchange picks two distinct routes at random and removes one random
// job from each. Each side's removal is run through the pipeline the same
// way any other structural edit is, and repair() then reinserts both jobs
// with the naive builder's first-feasible walk over all open routes and
// free actors; neither job is placed into the other's route directly.
type SwapExchange struct{}

// NewSwapExchange builds the swap-exchange mutation.
func NewSwapExchange() *SwapExchange { return &SwapExchange{} }

// MutateOne implements Mutation.
func (m *SwapExchange) MutateOne(_ Context, ind *core.Individual) *core.Individual {
	out := ind.DeepCopy()
	routes := out.Solution.Routes
	if len(routes) < 2 {
		return out
	}

	i := out.Random.Intn(len(routes))
	j := out.Random.Intn(len(routes))
	for j == i {
		j = out.Random.Intn(len(routes))
	}
	routeA, routeB := routes[i], routes[j]

	jobsA := routeA.Route.Tour.Jobs()
	jobsB := routeB.Route.Tour.Jobs()
	if len(jobsA) == 0 || len(jobsB) == 0 {
		return out
	}

	jobA := jobsA[out.Random.Intn(len(jobsA))]
	jobB := jobsB[out.Random.Intn(len(jobsB))]
	if jobA == jobB {
		return out
	}

	removeJob(out, routeA, jobA)
	removeJob(out, routeB, jobB)

	repair(out)
	return out
}

// MutateAll implements Mutation.
func (m *SwapExchange) MutateAll(ctx Context, inds []*core.Individual) []*core.Individual {
	return mutateAllSequential(m, ctx, inds)
}

// CrossExchange picks two distinct routes and removes a short,
// equal-length contiguous job sequence from each; repair() then
// reinserts the removed jobs the same way SwapExchange does, so the
// segments are not placed into each other's route directly.
// Removing more than SwapExchange's single job per side, it explores a
// larger neighborhood per call at the same "remove then repair" cost.
type CrossExchange struct {
	// SegmentLength is how many jobs to exchange per call; clamped to the
	// shorter side's job count when either route has fewer.
	SegmentLength int
}

// NewCrossExchange builds the cross-exchange mutation with the given
// segment length (at least 1).
func NewCrossExchange(segmentLength int) *CrossExchange {
	if segmentLength < 1 {
		segmentLength = 1
	}
	return &CrossExchange{SegmentLength: segmentLength}
}

// MutateOne implements Mutation.
func (m *CrossExchange) MutateOne(_ Context, ind *core.Individual) *core.Individual {
	out := ind.DeepCopy()
	routes := out.Solution.Routes
	if len(routes) < 2 {
		return out
	}

	i := out.Random.Intn(len(routes))
	j := out.Random.Intn(len(routes))
	for j == i {
		j = out.Random.Intn(len(routes))
	}
	routeA, routeB := routes[i], routes[j]

	jobsA := routeA.Route.Tour.Jobs()
	jobsB := routeB.Route.Tour.Jobs()

	n := m.SegmentLength
	if n > len(jobsA) {
		n = len(jobsA)
	}
	if n > len(jobsB) {
		n = len(jobsB)
	}
	if n == 0 {
		return out
	}

	startA := out.Random.Intn(len(jobsA) - n + 1)
	startB := out.Random.Intn(len(jobsB) - n + 1)

	segA := append([]*core.Job(nil), jobsA[startA:startA+n]...)
	segB := append([]*core.Job(nil), jobsB[startB:startB+n]...)

	for _, job := range segA {
		removeJob(out, routeA, job)
	}
	for _, job := range segB {
		removeJob(out, routeB, job)
	}

	repair(out)
	return out
}

// MutateAll implements Mutation.
func (m *CrossExchange) MutateAll(ctx Context, inds []*core.Individual) []*core.Individual {
	return mutateAllSequential(m, ctx, inds)
}
