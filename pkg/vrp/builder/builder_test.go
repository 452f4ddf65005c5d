package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/modules"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

func seedProblem(t *testing.T, jobCount int) *core.Problem {
	t.Helper()

	n := jobCount + 1
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
	matrix, err := core.NewMatrix(n, durations, distances, nil)
	require.NoError(t, err)
	transport := core.NewMatrixTransportCost(map[int]*core.Matrix{0: matrix})

	depot := core.Place{Location: 0}
	vehicle := &core.Vehicle{
		ID: "v1", Profile: 0, Capacity: core.Capacity{100},
		Shifts:          []core.Shift{{Start: depot, End: depot, TimeSpan: core.TimeWindow{End: 10000}}},
		CostPerDistance: 1, CostPerTime: 1,
	}
	fleet := core.NewFleet([]*core.Driver{{ID: "d1"}}, []*core.Vehicle{vehicle})

	jobs := make([]*core.Job, jobCount)
	for i := range jobs {
		jobs[i] = &core.Job{
			ID:     string(rune('a' + i)),
			Kind:   core.KindSingle,
			Places: []core.Place{{Location: core.Location(i + 1), Duration: 1}},
			Demand: core.Demand{Delivery: core.Capacity{1}},
		}
	}

	pipeline := core.NewPipeline(
		modules.NewTransportModule(transport, core.DefaultActivityCost{}),
		modules.NewCapacityModule(),
		modules.NewReachableModule(transport),
	)

	return core.NewProblem(fleet, core.NewJobCorpus(jobs), transport, pipeline, core.NewWeightedObjective(1000), nil)
}

func TestNaiveInsertionBuilder_ServesEveryFeasibleJob(t *testing.T) {
	problem := seedProblem(t, 4)
	ind := core.NewIndividual(problem, core.NewRandom(7))

	NewNaiveInsertionBuilder().Build(ind)

	assert.Empty(t, ind.Solution.Required)
	assert.Empty(t, ind.Solution.Unassigned)
	require.Len(t, ind.Solution.Routes, 1)
	assert.Equal(t, 4, ind.Solution.Routes[0].Route.Tour.JobCount())

	// Derived state is fresh after the build.
	_, ok := ind.Solution.Routes[0].State.RouteFloat(core.TotalDistanceKey)
	assert.True(t, ok)
}

func TestNaiveInsertionBuilder_InsertsMultiJob(t *testing.T) {
	problem := seedProblem(t, 2)

	shuttle := &core.Job{
		ID:   "shuttle",
		Kind: core.KindMulti,
		Places: []core.Place{
			{Location: 1, Duration: 1},
			{Location: 2, Duration: 1},
		},
		Demand: core.Demand{Pickup: core.Capacity{5}, Delivery: core.Capacity{5}},
	}
	jobs := append(problem.Jobs.All(), shuttle)
	problem.Jobs = core.NewJobCorpus(jobs)

	ind := core.NewIndividual(problem, core.NewRandom(7))
	NewNaiveInsertionBuilder().Build(ind)

	assert.Empty(t, ind.Solution.Required)
	assert.Empty(t, ind.Solution.Unassigned)
	require.Len(t, ind.Solution.Routes, 1)

	// Both legs landed, pickup before delivery.
	var pickupIdx, deliveryIdx int
	for i, a := range ind.Solution.Routes[0].Route.Tour.Activities() {
		if a.Job == shuttle && a.PlaceIdx == 0 {
			pickupIdx = i
		}
		if a.Job == shuttle && a.PlaceIdx == 1 {
			deliveryIdx = i
		}
	}
	require.NotZero(t, pickupIdx)
	require.NotZero(t, deliveryIdx)
	assert.Less(t, pickupIdx, deliveryIdx)
}

func TestSeed_FillsToSize(t *testing.T) {
	problem := seedProblem(t, 3)
	methods := []WeightedMethod{{Builder: NewNaiveInsertionBuilder(), Weight: 1}}

	out := Seed(problem, core.NewRandom(1), methods, 4, nil, nil)

	require.Len(t, out, 4)
	for _, ind := range out {
		assert.Empty(t, ind.Solution.Required)
	}
}

func TestSeed_AcceptsPreseededIndividuals(t *testing.T) {
	problem := seedProblem(t, 2)
	methods := []WeightedMethod{{Builder: NewNaiveInsertionBuilder(), Weight: 1}}

	pre := core.NewIndividual(problem, core.NewRandom(2))
	out := Seed(problem, core.NewRandom(1), methods, 3, []*core.Individual{pre}, nil)

	require.Len(t, out, 3)
	assert.Same(t, pre, out[0])
}

// TestSeed_QuotaStopsFurtherBuilds is the quota-cancellation scenario:
// a quota firing after the second build leaves exactly two individuals
// and never invokes further builders.
func TestSeed_QuotaStopsFurtherBuilds(t *testing.T) {
	problem := seedProblem(t, 2)
	methods := []WeightedMethod{{Builder: NewNaiveInsertionBuilder(), Weight: 1}}

	quota := termination.NewCountQuota(1)
	out := Seed(problem, core.NewRandom(1), methods, 10, nil, quota)

	assert.Len(t, out, 2)
}

// TestSeed_FirstBuildIgnoresReachedQuota checks monotone seeding: even
// under an already-reached quota, the first individual is still built so
// the caller never walks away empty-handed.
func TestSeed_FirstBuildIgnoresReachedQuota(t *testing.T) {
	problem := seedProblem(t, 2)
	methods := []WeightedMethod{{Builder: NewNaiveInsertionBuilder(), Weight: 1}}

	quota := termination.NewCountQuota(0)
	out := Seed(problem, core.NewRandom(1), methods, 10, nil, quota)

	assert.Len(t, out, 1)
}
