package mutation

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/modules"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// identityMutation returns a plain deep copy, counting invocations. It
// stands in for the inner mutation wherever a test only cares about
// decomposition's own bookkeeping.
type identityMutation struct {
	calls atomic.Int32
}

func (m *identityMutation) MutateOne(_ Context, ind *core.Individual) *core.Individual {
	m.calls.Add(1)
	return ind.DeepCopy()
}

func (m *identityMutation) MutateAll(ctx Context, inds []*core.Individual) []*core.Individual {
	return mutateAllSequential(m, ctx, inds)
}

// testCtx is a minimal mutation.Context double.
type testCtx struct {
	problem *core.Problem
	pop     population.Population
}

func (c *testCtx) Problem() *core.Problem            { return c.problem }
func (c *testCtx) Quota() termination.Quota          { return termination.NoQuota{} }
func (c *testCtx) Population() population.Population { return c.pop }

// threeClusterProblem builds three vehicles stationed at locations 1, 2
// and 3 with one job each at the vehicle's own location, over a matrix
// where the 1↔3 pair is unroutable. Route medoids land on 1, 2 and 3, so
// the pairwise reachability graph is exactly {A:{B}, B:{A,C}, C:{B}}.
func threeClusterProblem(t *testing.T) (*core.Problem, []*core.Job) {
	t.Helper()

	const n = 4
	durations := make([]float64, n*n)
	distances := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := float64(i - j)
			if d < 0 {
				d = -d
			}
			durations[i*n+j] = d
			distances[i*n+j] = d
		}
	}
	distances[1*n+3] = -1
	distances[3*n+1] = -1
	matrix, err := core.NewMatrix(n, durations, distances, nil)
	require.NoError(t, err)
	transport := core.NewMatrixTransportCost(map[int]*core.Matrix{0: matrix})

	var vehicles []*core.Vehicle
	var jobs []*core.Job
	ids := []string{"vA", "vB", "vC"}
	for i, id := range ids {
		loc := core.Location(i + 1)
		home := core.Place{Location: loc}
		vehicles = append(vehicles, &core.Vehicle{
			ID: id, Profile: 0, Capacity: core.Capacity{10},
			Shifts:          []core.Shift{{Start: home, End: home, TimeSpan: core.TimeWindow{End: 1000}}},
			CostPerDistance: 1, CostPerTime: 1,
		})
		jobs = append(jobs, &core.Job{
			ID:     "job-" + id,
			Kind:   core.KindSingle,
			Places: []core.Place{{Location: loc, Duration: 1}},
			Demand: core.Demand{Delivery: core.Capacity{1}},
		})
	}

	fleet := core.NewFleet([]*core.Driver{{ID: "d1"}}, vehicles)
	pipeline := core.NewPipeline(
		modules.NewTransportModule(transport, core.DefaultActivityCost{}),
		modules.NewCapacityModule(),
	)

	problem := core.NewProblem(fleet, core.NewJobCorpus(jobs), transport, pipeline, core.NewWeightedObjective(1000), nil)
	return problem, jobs
}

// threeRouteIndividual serves job i on the vehicle stationed with it.
func threeRouteIndividual(t *testing.T, problem *core.Problem, jobs []*core.Job) *core.Individual {
	t.Helper()

	ind := core.NewIndividual(problem, core.NewRandom(3))
	for i, actor := range problem.Fleet.Actors() {
		routeCtx := core.NewRouteContext(actor)
		routeCtx.Route.Tour.InsertAt(1, &core.Activity{
			Kind: core.Service, Job: jobs[i], PlaceIdx: 0, Place: jobs[i].Places[0],
		})
		problem.Constraint.AcceptRouteState(routeCtx)
		ind.Solution.Routes = append(ind.Solution.Routes, routeCtx)
		ind.Solution.Registry.UseRoute(routeCtx)
		ind.Solution.RemoveRequired(jobs[i])
	}
	problem.Constraint.AcceptSolutionState(ind.Solution)
	return ind
}

func servedJobIDs(ind *core.Individual) map[string]bool {
	out := make(map[string]bool)
	for _, r := range ind.Solution.Routes {
		for _, j := range r.Route.Tour.Jobs() {
			out[j.ID] = true
		}
	}
	return out
}

func TestGroupRoutes_ProximityPartition(t *testing.T) {
	problem, jobs := threeClusterProblem(t)
	ind := threeRouteIndividual(t, problem, jobs)

	partials := decomposeIndividual(problem, ind)

	// {A,B} rides on the reachable 1↔2 pair; C stands alone because its
	// only present distance points at an already-used route.
	require.Len(t, partials, 2)
	assert.Equal(t, 2, len(partials[0].Solution.Routes))
	assert.Equal(t, "vA", partials[0].Solution.Routes[0].Actor().Vehicle.ID)
	assert.Equal(t, "vB", partials[0].Solution.Routes[1].Actor().Vehicle.ID)
	require.Len(t, partials[1].Solution.Routes, 1)
	assert.Equal(t, "vC", partials[1].Solution.Routes[0].Actor().Vehicle.ID)
}

func TestGroupRoutes_EveryRouteInExactlyOneGroup(t *testing.T) {
	problem, jobs := threeClusterProblem(t)
	ind := threeRouteIndividual(t, problem, jobs)

	medoids := make([]core.Location, len(ind.Solution.Routes))
	medoidOK := make([]bool, len(ind.Solution.Routes))
	for i, r := range ind.Solution.Routes {
		medoids[i], medoidOK[i] = core.GetMedoid(r, problem.Transport)
	}

	groups := groupRoutes(ind.Solution.Routes, medoids, medoidOK, problem.Transport)

	seen := make(map[int]int)
	for _, g := range groups {
		for _, idx := range g {
			seen[idx]++
		}
	}
	for i := range ind.Solution.Routes {
		assert.Equal(t, 1, seen[i], "route %d", i)
	}
}

func TestDecomposeSearch_SingleRouteFallsBackToInner(t *testing.T) {
	problem, jobs := threeClusterProblem(t)

	// One route only: decomposition is a no-op and the inner mutation
	// runs on the original individual. The other jobs are ignored so no
	// carrier partial is added for them.
	ind := core.NewIndividual(problem, core.NewRandom(5))
	actor := problem.Fleet.Actors()[0]
	routeCtx := core.NewRouteContext(actor)
	routeCtx.Route.Tour.InsertAt(1, &core.Activity{
		Kind: core.Service, Job: jobs[0], PlaceIdx: 0, Place: jobs[0].Places[0],
	})
	problem.Constraint.AcceptRouteState(routeCtx)
	ind.Solution.Routes = append(ind.Solution.Routes, routeCtx)
	ind.Solution.Registry.UseRoute(routeCtx)
	ind.Solution.RemoveRequired(jobs[0])
	for _, j := range jobs[1:] {
		ind.Solution.RemoveRequired(j)
		ind.Solution.Ignored = append(ind.Solution.Ignored, j)
	}

	inner := &identityMutation{}
	decompose := NewDecomposeSearch(inner, 2)
	ctx := &testCtx{problem: problem, pop: population.NewGreedyPopulation()}

	out := decompose.MutateOne(ctx, ind)

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, servedJobIDs(ind), servedJobIDs(out))
}

func TestDecomposeSearch_MergePreservesComposition(t *testing.T) {
	problem, jobs := threeClusterProblem(t)
	ind := threeRouteIndividual(t, problem, jobs)

	decompose := NewDecomposeSearch(&identityMutation{}, 2)
	ctx := &testCtx{problem: problem, pop: population.NewGreedyPopulation()}

	merged := decompose.MutateOne(ctx, ind)

	// Same served jobs, same per-actor composition as the source.
	assert.Equal(t, servedJobIDs(ind), servedJobIDs(merged))
	require.Len(t, merged.Solution.Routes, 3)
	for i, r := range merged.Solution.Routes {
		srcJobs := make(map[string]bool)
		var src *core.RouteContext
		for _, s := range ind.Solution.Routes {
			if s.Actor() == r.Actor() {
				src = s
				break
			}
		}
		require.NotNil(t, src, "merged route %d has an actor the source never used", i)
		for _, j := range src.Route.Tour.Jobs() {
			srcJobs[j.ID] = true
		}
		for _, j := range r.Route.Tour.Jobs() {
			assert.True(t, srcJobs[j.ID])
		}
	}

	// Every actor used by any partition is marked used in the merged
	// registry — and only those.
	for _, r := range merged.Solution.Routes {
		assert.True(t, merged.Solution.Registry.IsUsed(r.Actor()))
	}
	assert.Empty(t, merged.Solution.Required)
	assert.Empty(t, merged.Solution.Unassigned)

	// Derived state was recomputed through the pipeline after the merge.
	for _, r := range merged.Solution.Routes {
		_, ok := r.State.RouteFloat(core.TotalDistanceKey)
		assert.True(t, ok)
	}
}

func TestDecomposeSearch_CarrierKeepsUnplacedJobs(t *testing.T) {
	problem, jobs := threeClusterProblem(t)
	ind := threeRouteIndividual(t, problem, jobs)

	j7 := &core.Job{
		ID:     "j7",
		Kind:   core.KindSingle,
		Places: []core.Place{{Location: 2, Duration: 1}},
		Demand: core.Demand{Delivery: core.Capacity{1}},
	}
	ind.Solution.Required = append(ind.Solution.Required, j7)

	partials := decomposeIndividual(problem, ind)
	require.Len(t, partials, 3, "two route groups plus the empty carrier")
	carrier := partials[2]
	assert.Empty(t, carrier.Solution.Routes)
	require.Len(t, carrier.Solution.Required, 1)
	assert.Equal(t, "j7", carrier.Solution.Required[0].ID)

	decompose := NewDecomposeSearch(&identityMutation{}, 1)
	ctx := &testCtx{problem: problem, pop: population.NewGreedyPopulation()}
	merged := decompose.MutateOne(ctx, ind)

	require.Len(t, merged.Solution.Required, 1)
	assert.Equal(t, "j7", merged.Solution.Required[0].ID)
}

func TestDecomposeSearch_SeedsFromPopulationBest(t *testing.T) {
	problem, jobs := threeClusterProblem(t)
	best := threeRouteIndividual(t, problem, jobs)

	pop := population.NewGreedyPopulation()
	pop.Add(best)
	ctx := &testCtx{problem: problem, pop: pop}

	// The provided individual is empty; decomposition must still split
	// the population's best three-route individual.
	empty := core.NewIndividual(problem, core.NewRandom(9))
	decompose := NewDecomposeSearch(&identityMutation{}, 1)

	merged := decompose.MutateOne(ctx, empty)
	assert.Equal(t, servedJobIDs(best), servedJobIDs(merged))
}
