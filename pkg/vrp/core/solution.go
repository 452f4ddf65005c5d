package core

import "github.com/gofrs/uuid"

// UnassignedCode explains why a job could not be placed. Negative by
// convention; the magnitude is module-local beyond a handful of reserved
// codes.
type UnassignedCode int

// Reserved unassigned codes shared across modules that every consumer can
// recognize without needing to know which module produced them.
const (
	CodeUnknown        UnassignedCode = -1
	CodeSkillMismatch  UnassignedCode = -2
	CodeTimeWindow     UnassignedCode = -3
	CodeCapacity       UnassignedCode = -4
	CodeUnreachable    UnassignedCode = -5
	CodeTravelLimit    UnassignedCode = -6
	CodeLockViolation  UnassignedCode = -7
	CodeBreakUnassigned UnassignedCode = -100
)

// SolutionContext is the mutable working state a mutation operates on.
// Jobs partition into exactly one of {served in some route, Required,
// Ignored, Unassigned.keys} at all times.
type SolutionContext struct {
	Routes      []*RouteContext
	Required    []*Job
	Ignored     []*Job
	Unassigned  map[*Job]UnassignedCode
	Locked      map[*Job]bool
	Registry    *Registry
	State       *StateBag
}

// NewSolutionContext builds an empty solution context over every job in
// the problem, all Required, none yet routed.
func NewSolutionContext(problem *Problem) *SolutionContext {
	required := make([]*Job, len(problem.Jobs.All()))
	copy(required, problem.Jobs.All())

	return &SolutionContext{
		Required:   required,
		Ignored:    nil,
		Unassigned: make(map[*Job]UnassignedCode),
		Locked:     make(map[*Job]bool),
		Registry:   NewRegistry(problem.Fleet.Actors()),
		State:      NewStateBag(),
	}
}

// DeepCopy produces an independently mutable clone of the whole solution,
// including every route.
func (s *SolutionContext) DeepCopy() *SolutionContext {
	routes := make([]*RouteContext, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.DeepCopy()
	}

	required := append([]*Job(nil), s.Required...)
	ignored := append([]*Job(nil), s.Ignored...)

	unassigned := make(map[*Job]UnassignedCode, len(s.Unassigned))
	for j, c := range s.Unassigned {
		unassigned[j] = c
	}

	locked := make(map[*Job]bool, len(s.Locked))
	for j := range s.Locked {
		locked[j] = true
	}

	return &SolutionContext{
		Routes:     routes,
		Required:   required,
		Ignored:    ignored,
		Unassigned: unassigned,
		Locked:     locked,
		Registry:   s.Registry.DeepCopy(),
		State:      s.State.DeepCopy(nil),
	}
}

// RouteForActor returns the route owned by actor, if one exists in this
// solution.
func (s *SolutionContext) RouteForActor(actor *Actor) *RouteContext {
	for _, r := range s.Routes {
		if r.Actor() == actor {
			return r
		}
	}
	return nil
}

// RemoveRequired drops job from Required (used once a job has been
// successfully inserted into a route).
func (s *SolutionContext) RemoveRequired(job *Job) {
	for i, j := range s.Required {
		if j == job {
			s.Required = append(s.Required[:i], s.Required[i+1:]...)
			return
		}
	}
}

// Individual is one candidate solution in the population, pairing a
// shared, read-only Problem with a mutable SolutionContext and a
// per-individual Random. ID is a diagnostic identifier only — telemetry
// and logs use it to track an individual across generations; no
// algorithm branches on it.
type Individual struct {
	ID       string
	Problem  *Problem
	Solution *SolutionContext
	Random   *Random
}

// NewIndividual seeds a fresh, all-Required individual.
func NewIndividual(problem *Problem, random *Random) *Individual {
	return &Individual{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Problem:  problem,
		Solution: NewSolutionContext(problem),
		Random:   random,
	}
}

// DeepCopy clones the individual. The Problem is shared (immutable,
// read-only across threads); Random is reseeded from a value drawn
// from the source's own generator so the clone's mutation stream diverges
// from the original's instead of replaying it.
func (ind *Individual) DeepCopy() *Individual {
	return &Individual{
		ID:       uuid.Must(uuid.NewV4()).String(),
		Problem:  ind.Problem,
		Solution: ind.Solution.DeepCopy(),
		Random:   NewRandom(int64(ind.Random.Intn(1 << 62))),
	}
}

// Cost estimates this individual's total cost via the problem's
// objective.
func (ind *Individual) Cost() float64 {
	return ind.Problem.Objective.EstimateCost(ind.Solution)
}
