package mutation

import (
	"github.com/burikinc/vrp/pkg/vrp/core"
	"golang.org/x/sync/errgroup"
)

// mutateAllSequential applies m.MutateOne to each individual in order —
// used by mutations cheap enough that fan-out overhead would dominate the
// actual work.
func mutateAllSequential(m Mutation, ctx Context, inds []*core.Individual) []*core.Individual {
	out := make([]*core.Individual, len(inds))
	for i, ind := range inds {
		out[i] = m.MutateOne(ctx, ind)
	}
	return out
}

// ParallelMutateAll applies m.MutateOne across inds concurrently via an
// errgroup fan-out, preserving input order in the result — the parallel
// half of the MutateAll contract. Since MutateOne never returns an
// error, the group can never fail and g.Wait()'s return is always nil.
func ParallelMutateAll(m Mutation, ctx Context, inds []*core.Individual) []*core.Individual {
	out := make([]*core.Individual, len(inds))
	var g errgroup.Group
	for i, ind := range inds {
		i, ind := i, ind
		g.Go(func() error {
			out[i] = m.MutateOne(ctx, ind)
			return nil
		})
	}
	_ = g.Wait()
	return out
}
