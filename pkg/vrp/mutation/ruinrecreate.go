package mutation

import "github.com/burikinc/vrp/pkg/vrp/core"

// RuinAndRecreate is the classic ruin-and-recreate local search: remove a
// random fraction of served jobs from their routes, then repair the
// resulting gaps through the constraint pipeline.
type RuinAndRecreate struct {
	// Rate is the fraction of currently-served jobs to ruin on each call,
	// in (0, 1]. Values at or below 0 fall back to 0.01; values above 1
	// clamp to 1.
	Rate float64
}

// NewRuinAndRecreate builds the mutation with the given ruin rate.
func NewRuinAndRecreate(rate float64) *RuinAndRecreate {
	return &RuinAndRecreate{Rate: rate}
}

// MutateOne implements Mutation.
func (m *RuinAndRecreate) MutateOne(_ Context, ind *core.Individual) *core.Individual {
	out := ind.DeepCopy()

	type served struct {
		route *core.RouteContext
		job   *core.Job
	}
	var all []served
	for _, r := range out.Solution.Routes {
		for _, j := range r.Route.Tour.Jobs() {
			all = append(all, served{route: r, job: j})
		}
	}
	if len(all) == 0 {
		return out
	}

	rate := m.Rate
	if rate <= 0 {
		rate = 0.01
	}
	if rate > 1 {
		rate = 1
	}
	n := int(float64(len(all)) * rate)
	if n < 1 {
		n = 1
	}
	if n > len(all) {
		n = len(all)
	}

	out.Random.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	for i := 0; i < n; i++ {
		removeJob(out, all[i].route, all[i].job)
	}

	repair(out)
	return out
}

// MutateAll implements Mutation.
func (m *RuinAndRecreate) MutateAll(ctx Context, inds []*core.Individual) []*core.Individual {
	return mutateAllSequential(m, ctx, inds)
}
