package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProblem(t *testing.T, jobs ...*Job) *Problem {
	t.Helper()
	transport := NewMatrixTransportCost(map[int]*Matrix{0: lineMatrix(t, 10)})
	vehicle := &Vehicle{
		ID: "v1", Profile: 0, Capacity: Capacity{10},
		Shifts:          []Shift{{Start: Place{Location: 0}, End: Place{Location: 0}, TimeSpan: TimeWindow{End: 1000}}},
		CostPerDistance: 1, CostPerTime: 1,
	}
	fleet := NewFleet([]*Driver{{ID: "d1"}}, []*Vehicle{vehicle})
	return NewProblem(fleet, NewJobCorpus(jobs), transport, NewPipeline(), NewWeightedObjective(100), nil)
}

func TestNewSolutionContext_AllJobsRequired(t *testing.T) {
	j1, j2 := singleJob("j1", 1), singleJob("j2", 2)
	problem := testProblem(t, j1, j2)

	sol := NewSolutionContext(problem)

	require.Len(t, sol.Required, 2)
	assert.Empty(t, sol.Routes)
	assert.Empty(t, sol.Unassigned)
	assert.Len(t, sol.Registry.Available(), 1)
}

func TestSolutionContext_DeepCopyIsIndependent(t *testing.T) {
	j1 := singleJob("j1", 1)
	problem := testProblem(t, j1)
	sol := NewSolutionContext(problem)

	actor := problem.Fleet.Actors()[0]
	routeCtx := NewRouteContext(actor)
	routeCtx.Route.Tour.InsertAt(1, serviceActivity(j1))
	sol.Routes = append(sol.Routes, routeCtx)
	sol.Registry.UseRoute(routeCtx)
	sol.RemoveRequired(j1)

	clone := sol.DeepCopy()

	require.Len(t, clone.Routes, 1)
	assert.NotSame(t, sol.Routes[0], clone.Routes[0])
	assert.Same(t, sol.Routes[0].Actor(), clone.Routes[0].Actor())

	// Mutating the clone's tour must not leak into the source.
	clone.Routes[0].Route.Tour.RemoveJob(j1)
	assert.Equal(t, 1, sol.Routes[0].Route.Tour.JobCount())
	assert.Equal(t, 0, clone.Routes[0].Route.Tour.JobCount())

	clone.Unassigned[j1] = CodeUnknown
	assert.Empty(t, sol.Unassigned)
}

func TestIndividual_DeepCopyKeepsProblemShared(t *testing.T) {
	problem := testProblem(t, singleJob("j1", 1))
	ind := NewIndividual(problem, NewRandom(42))

	clone := ind.DeepCopy()

	assert.Same(t, ind.Problem, clone.Problem)
	assert.NotSame(t, ind.Solution, clone.Solution)
	assert.NotEmpty(t, clone.ID)
	assert.NotEqual(t, ind.ID, clone.ID)
}

func TestRegistry_UseFreeAndDeepSlice(t *testing.T) {
	a1 := testActor("v1")
	a2 := testActor("v2")
	reg := NewRegistry([]*Actor{a1, a2})

	route := NewRouteContext(a1)
	reg.UseRoute(route)

	assert.True(t, reg.IsUsed(a1))
	assert.False(t, reg.IsUsed(a2))
	assert.Len(t, reg.Available(), 1)

	sliced := reg.DeepSlice(func(a *Actor) bool { return a == a1 })
	assert.True(t, sliced.IsUsed(a1))
	assert.False(t, sliced.IsUsed(a2))
	assert.Empty(t, sliced.Available())

	reg.Free(a1)
	assert.False(t, reg.IsUsed(a1))
	assert.Len(t, reg.Available(), 2)

	// The earlier slice is an independent clone.
	assert.True(t, sliced.IsUsed(a1))
}

func TestStateBag_TypedAccessAndRemap(t *testing.T) {
	bag := NewStateBag()
	bag.SetRouteState(TotalDistanceKey, 12.5)

	v, ok := GetRouteStateAs[float64](bag, TotalDistanceKey)
	require.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = GetRouteStateAs[string](bag, TotalDistanceKey)
	assert.False(t, ok, "type mismatch reads as absent")

	_, ok = GetRouteStateAs[float64](bag, WaitingKey)
	assert.False(t, ok, "missing key reads as absent")

	a := &Activity{Kind: Service}
	bag.SetActivityState(MaxLoadKey, a, 3.0)

	na := &Activity{Kind: Service}
	clone := bag.DeepCopy(map[*Activity]*Activity{a: na})

	got, ok := GetActivityStateAs[float64](clone, MaxLoadKey, na)
	require.True(t, ok)
	assert.Equal(t, 3.0, got)

	_, ok = clone.GetActivityState(MaxLoadKey, a)
	assert.False(t, ok, "old activity pointer must not survive the remap")
}

func TestModuleKey_NeverCollidesWithWellKnownKeys(t *testing.T) {
	assert.Greater(t, ModuleKey(0), WaitingKey)
	assert.Greater(t, ModuleKey(0), BreakPenaltyKey)
	assert.NotEqual(t, ModuleKey(0), ModuleKey(1))
}
