package mutation

import (
	"log/slog"
	"sort"

	"github.com/burikinc/vrp/internal/parallel"
	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// maxRoutesPerIndividual caps how many routes land in one decomposition
// group.
const maxRoutesPerIndividual = 3

// DecomposeSearch accelerates refinement on large instances by splitting
// an individual's routes into geographically coherent groups (by medoid
// distance), evolving each group in isolation on its own worker, then
// reassembling the pieces into one individual. When the split
// produces fewer than two partial individuals (route groups plus the
// carrier for required/unassigned jobs, if any), decomposition is a
// no-op and the inner mutation runs on the original individual instead.
type DecomposeSearch struct {
	// Inner is the mutation each partition is refined with.
	Inner Mutation
	// RepeatCount is how many select→mutate→add iterations each
	// partition's greedy population runs.
	RepeatCount int
}

// NewDecomposeSearch builds the decomposition mutation around inner,
// running repeatCount refinement iterations per partition (at least 1).
func NewDecomposeSearch(inner Mutation, repeatCount int) *DecomposeSearch {
	if repeatCount < 1 {
		repeatCount = 1
	}
	return &DecomposeSearch{Inner: inner, RepeatCount: repeatCount}
}

// MutateOne implements Mutation.
func (m *DecomposeSearch) MutateOne(ctx Context, ind *core.Individual) *core.Individual {
	seed := ind
	if best := ctx.Population().Select(); best != nil {
		seed = best
	}

	partials := decomposeIndividual(ctx.Problem(), seed)
	if len(partials) < 2 {
		return m.Inner.MutateOne(ctx, ind)
	}

	refined := parallel.Map(nil, partials, func(partial *core.Individual) *core.Individual {
		return m.refinePartition(ctx.Quota(), partial)
	})

	return mergeIndividuals(ctx.Problem(), seed, refined)
}

// MutateAll implements Mutation. Decomposition already fans out its own
// per-partition workers, so batching stays sequential here.
func (m *DecomposeSearch) MutateAll(ctx Context, inds []*core.Individual) []*core.Individual {
	return mutateAllSequential(m, ctx, inds)
}

// partitionContext is the lightweight refinement context each partition
// runs under: problem and quota inherited from the outer run, a fresh
// greedy population per partition, defaulted everything else.
type partitionContext struct {
	problem *core.Problem
	quota   termination.Quota
	pop     population.Population
}

func (c *partitionContext) Problem() *core.Problem            { return c.problem }
func (c *partitionContext) Quota() termination.Quota          { return c.quota }
func (c *partitionContext) Population() population.Population { return c.pop }

// refinePartition wraps partial in a greedy population and runs
// RepeatCount select→mutate→add iterations against the inner mutation,
// returning the partition's best individual. Quota is polled between
// iterations; a reached quota leaves the partition at whatever its
// population holds so far.
func (m *DecomposeSearch) refinePartition(quota termination.Quota, partial *core.Individual) *core.Individual {
	pop := population.NewGreedyPopulation()
	pop.Add(partial)
	pctx := &partitionContext{problem: partial.Problem, quota: quota, pop: pop}

	for i := 0; i < m.RepeatCount; i++ {
		if quota != nil && quota.IsReached() {
			break
		}
		best := pop.Select()
		if best == nil {
			break
		}
		pop.Add(m.Inner.MutateOne(pctx, best))
	}

	return pop.Select()
}

// routeDistance is one entry of a route's sorted neighbor list: the
// other route's index plus the medoid-to-medoid distance, when both
// medoids exist and the pair is routable.
type routeDistance struct {
	index    int
	distance float64
	present  bool
}

// decomposeIndividual partitions seed into partial individuals:
// medoids, pairwise route distances, greedy grouping,
// partial construction, plus the empty carrier for any required or
// unassigned jobs. Returns fewer than two partials when decomposition
// would be a no-op.
func decomposeIndividual(problem *core.Problem, seed *core.Individual) []*core.Individual {
	routes := seed.Solution.Routes
	if len(routes) == 0 {
		return nil
	}

	medoids := make([]core.Location, len(routes))
	medoidOK := make([]bool, len(routes))
	for i, r := range routes {
		medoids[i], medoidOK[i] = core.GetMedoid(r, problem.Transport)
	}

	groups := groupRoutes(routes, medoids, medoidOK, problem.Transport)
	checkGroupsComplete(groups, len(routes))

	partials := make([]*core.Individual, 0, len(groups)+1)
	for _, group := range groups {
		partials = append(partials, partialIndividual(seed, group))
	}

	if len(seed.Solution.Required) > 0 || len(seed.Solution.Unassigned) > 0 {
		partials = append(partials, carrierIndividual(seed))
	}

	return partials
}

// groupRoutes builds, for every route, a neighbor
// list sorted both-present-ascending / one-missing-last / both-missing-
// equal (ties by original index), then FIFO-greedy grouping — iterate
// routes in index order, each not-yet-used route pulls in its closest
// up-to-maxRoutesPerIndividual-1 unused neighbors.
func groupRoutes(routes []*core.RouteContext, medoids []core.Location, medoidOK []bool, transport core.TransportCost) [][]int {
	n := len(routes)

	neighbors := make([][]routeDistance, n)
	for i := 0; i < n; i++ {
		list := make([]routeDistance, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			entry := routeDistance{index: j}
			if medoidOK[i] && medoidOK[j] {
				profile := routes[i].Actor().Vehicle.Profile
				d := transport.Distance(profile, medoids[i], medoids[j], 0)
				if d >= 0 {
					entry.distance = d
					entry.present = true
				}
			}
			list = append(list, entry)
		}
		sort.SliceStable(list, func(a, b int) bool {
			la, lb := list[a], list[b]
			switch {
			case la.present && lb.present:
				return la.distance < lb.distance
			case la.present:
				return true
			case lb.present:
				return false
			default:
				return false
			}
		})
		neighbors[i] = list
	}

	used := make([]bool, n)
	var groups [][]int
	for i := 0; i < n; i++ {
		if used[i] {
			continue
		}
		group := []int{i}
		used[i] = true
		for _, cand := range neighbors[i] {
			if len(group) == maxRoutesPerIndividual {
				break
			}
			// The list is sorted present-first, so the first absent entry
			// means no remaining neighbor is provably close — an
			// unreachable or medoid-less route never rides along on
			// proximity it doesn't have.
			if !cand.present {
				break
			}
			if used[cand.index] {
				continue
			}
			group = append(group, cand.index)
			used[cand.index] = true
		}
		groups = append(groups, group)
	}
	return groups
}

// checkGroupsComplete verifies every route index lands in exactly one
// group. A violation is an engine bug, not a
// problem-data condition, so it is surfaced as a warning rather than
// corrupting the run.
func checkGroupsComplete(groups [][]int, n int) {
	seen := make(map[int]int, n)
	for _, g := range groups {
		for _, idx := range g {
			seen[idx]++
		}
	}
	for i := 0; i < n; i++ {
		if seen[i] != 1 {
			slog.Warn("decompose: route grouping not a partition",
				"route", i, "occurrences", seen[i])
		}
	}
}

// partialIndividual builds one partition's individual: only the group's
// routes (deep-copied), a registry sliced to exactly their actors, the
// subset of locked jobs present in the group, and empty required/
// ignored/unassigned/state.
func partialIndividual(seed *core.Individual, group []int) *core.Individual {
	actors := make(map[*core.Actor]bool, len(group))
	routes := make([]*core.RouteContext, 0, len(group))
	locked := make(map[*core.Job]bool)

	for _, idx := range group {
		rc := seed.Solution.Routes[idx].DeepCopy()
		routes = append(routes, rc)
		actors[rc.Actor()] = true
		for _, job := range rc.Route.Tour.Jobs() {
			if seed.Solution.Locked[job] {
				locked[job] = true
			}
		}
	}

	return &core.Individual{
		ID:      seed.ID,
		Problem: seed.Problem,
		Solution: &core.SolutionContext{
			Routes:     routes,
			Unassigned: make(map[*core.Job]core.UnassignedCode),
			Locked:     locked,
			Registry:   seed.Solution.Registry.DeepSlice(func(a *core.Actor) bool { return actors[a] }),
			State:      core.NewStateBag(),
		},
		Random: core.NewRandom(int64(seed.Random.Intn(1 << 62))),
	}
}

// carrierIndividual builds the empty carrier partial: no routes, but
// it carries the source's required and unassigned jobs forward (plus a
// deep-copied registry) so no job is lost during partitioning. It is
// refined like any other partition — an inner mutation is free to place
// its jobs onto fresh actors.
func carrierIndividual(seed *core.Individual) *core.Individual {
	required := append([]*core.Job(nil), seed.Solution.Required...)
	unassigned := make(map[*core.Job]core.UnassignedCode, len(seed.Solution.Unassigned))
	for j, c := range seed.Solution.Unassigned {
		unassigned[j] = c
	}

	return &core.Individual{
		ID:      seed.ID,
		Problem: seed.Problem,
		Solution: &core.SolutionContext{
			Required:   required,
			Unassigned: unassigned,
			Locked:     make(map[*core.Job]bool),
			Registry:   seed.Solution.Registry.DeepCopy(),
			State:      core.NewStateBag(),
		},
		Random: core.NewRandom(int64(seed.Random.Intn(1 << 62))),
	}
}

// mergeIndividuals reassembles the partitions' best individuals into one,
// walking partitions in stable order: extend routes/
// ignored/required/locked/unassigned, register every added route's actor,
// then recompute all derived state through the pipeline.
func mergeIndividuals(problem *core.Problem, seed *core.Individual, parts []*core.Individual) *core.Individual {
	merged := &core.Individual{
		ID:      seed.ID,
		Problem: problem,
		Solution: &core.SolutionContext{
			Unassigned: make(map[*core.Job]core.UnassignedCode),
			Locked:     make(map[*core.Job]bool),
			Registry:   core.NewRegistry(problem.Fleet.Actors()),
			State:      core.NewStateBag(),
		},
		Random: core.NewRandom(int64(seed.Random.Intn(1 << 62))),
	}

	for _, part := range parts {
		if part == nil {
			continue
		}
		sol := part.Solution
		for _, rc := range sol.Routes {
			nrc := rc.DeepCopy()
			merged.Solution.Routes = append(merged.Solution.Routes, nrc)
			merged.Solution.Registry.UseRoute(nrc)
		}
		merged.Solution.Ignored = append(merged.Solution.Ignored, sol.Ignored...)
		merged.Solution.Required = append(merged.Solution.Required, sol.Required...)
		for j := range sol.Locked {
			merged.Solution.Locked[j] = true
		}
		for j, c := range sol.Unassigned {
			merged.Solution.Unassigned[j] = c
		}
	}

	for _, rc := range merged.Solution.Routes {
		problem.Constraint.AcceptRouteState(rc)
	}
	problem.Constraint.AcceptSolutionState(merged.Solution)

	return merged
}
