package solver

import (
	"github.com/burikinc/vrp/internal/floatcmp"
	"github.com/burikinc/vrp/pkg/vrp/mutation"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// Strategy drives the generational loop once the population is seeded.
// The simulator delegates to it with the configured
// mutation, termination and telemetry; alternative strategies (island
// models, restarts) plug in here without touching the simulator.
type Strategy interface {
	Run(ctx *RefinementContext, mut mutation.Mutation, term termination.Termination, tel Telemetry)
}

// SimpleStrategy is the default: check termination → select → mutate →
// add → on-generation, repeated until termination or quota fires.
type SimpleStrategy struct{}

// Run implements Strategy.
func (SimpleStrategy) Run(ctx *RefinementContext, mut mutation.Mutation, term termination.Termination, tel Telemetry) {
	for {
		if ctx.quota.IsReached() || term.IsTerminated(ctx) {
			return
		}

		parent := ctx.pop.Select()
		if parent == nil {
			return
		}

		prevBest, hadBest := ctx.BestCost()

		child := mut.MutateOne(ctx, parent)
		if ShouldAddSolution(ctx) {
			ctx.pop.Add(child)
		}

		ctx.generation++

		improved := !hadBest
		if best, ok := ctx.BestCost(); ok && hadBest {
			improved = floatcmp.Less(best, prevBest)
		}

		best, _ := ctx.BestCost()
		ctx.pop.OnGeneration(population.GenerationStats{
			Generation: ctx.generation,
			IsImproved: improved,
			BestCost:   best,
			PopSize:    ctx.pop.Size(),
		})
		tel.OnGeneration(ctx, term.Estimate(ctx), ctx.Elapsed(), improved)
	}
}
