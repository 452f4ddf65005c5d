package solver

import (
	"time"

	"github.com/pkg/errors"

	"github.com/burikinc/vrp/pkg/vrp/builder"
	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/mutation"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// Config is the engine's configuration surface. Variation and at
// least one initial method are mandatory; everything else defaults.
type Config struct {
	// Variation produces the run's fresh population ("population.variation").
	Variation func() population.Population
	// InitialSize is the target initial-population size
	// ("population.initial.size"); defaults to 1.
	InitialSize int
	// InitialMethods lists (builder, weight) pairs
	// ("population.initial.methods").
	InitialMethods []builder.WeightedMethod
	// InitialIndividuals are caller-provided pre-built individuals
	// accepted before any builder runs ("population.initial.individuals").
	InitialIndividuals []*core.Individual
	// Mutation refines selected parents each generation.
	Mutation mutation.Mutation
	// Termination decides when the run stops; defaults to 100 generations.
	Termination termination.Termination
	// Strategy drives the generational loop; defaults to SimpleStrategy.
	Strategy Strategy
	// Telemetry observes the run; defaults to NopTelemetry.
	Telemetry Telemetry
	// Random seeds the run's top-level generator; defaults to a
	// wall-clock seed.
	Random *core.Random
	// Quota is the external cancellation handle; defaults to NoQuota.
	Quota termination.Quota
}

// Simulator is the evolution simulator: it seeds the population
// via the initial builders, then delegates generation-by-generation
// refinement to the configured strategy.
type Simulator struct {
	problem *core.Problem
	cfg     Config
}

// NewSimulator validates cfg against problem, failing fast on
// configuration errors: an empty initial-method set or a missing
// population variation refuses to start.
func NewSimulator(problem *core.Problem, cfg Config) (*Simulator, error) {
	if problem == nil {
		return nil, errors.New("solver: problem is required")
	}
	if len(cfg.InitialMethods) == 0 {
		return nil, errors.New("solver: at least one initial method is required")
	}
	if cfg.Variation == nil {
		return nil, errors.New("solver: population variation is required")
	}
	if cfg.Mutation == nil {
		return nil, errors.New("solver: mutation is required")
	}

	if cfg.InitialSize < 1 {
		cfg.InitialSize = 1
	}
	if cfg.Termination == nil {
		cfg.Termination = termination.MaxGenerations{Limit: 100}
	}
	if cfg.Strategy == nil {
		cfg.Strategy = SimpleStrategy{}
	}
	if cfg.Telemetry == nil {
		cfg.Telemetry = NopTelemetry{}
	}
	if cfg.Random == nil {
		cfg.Random = core.NewRandom(time.Now().UnixNano())
	}
	if cfg.Quota == nil {
		cfg.Quota = termination.NoQuota{}
	}

	return &Simulator{problem: problem, cfg: cfg}, nil
}

// Run executes the full lifecycle: build the refinement context, seed the
// population, emit the post-seeding generation event, delegate to the
// strategy, and return the final population.
func (s *Simulator) Run() (population.Population, error) {
	cfg := s.cfg
	ctx := NewRefinementContext(s.problem, cfg.Variation(), cfg.Quota)

	// Seed already honors the quota between builds, so everything it
	// returns enters the population — re-gating here would drop built
	// work on the floor.
	seeded := builder.Seed(s.problem, cfg.Random, cfg.InitialMethods, cfg.InitialSize, cfg.InitialIndividuals, cfg.Quota)
	for i, ind := range seeded {
		ctx.pop.Add(ind)
		cfg.Telemetry.OnInitial(i, len(seeded), ctx.Elapsed())
	}

	if ctx.pop.Size() > 0 {
		cfg.Telemetry.OnGeneration(ctx, cfg.Termination.Estimate(ctx), ctx.Elapsed(), true)
	}

	cfg.Strategy.Run(ctx, cfg.Mutation, cfg.Termination, cfg.Telemetry)

	return ctx.pop, nil
}
