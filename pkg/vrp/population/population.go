package population

import (
	"sort"

	"github.com/burikinc/vrp/internal/floatcmp"
	"github.com/burikinc/vrp/pkg/vrp/core"
)

// GenerationStats summarizes one refinement generation for
// Population.OnGeneration and, downstream, Telemetry.OnGeneration.
type GenerationStats struct {
	Generation  int
	IsImproved  bool
	BestCost    float64
	PopSize     int
}

// Population is the ranked container of candidate individuals:
// add, select, ranked, size, and a generation hook a Simulator calls
// after every refinement round so the population can adjust its own
// bookkeeping (e.g. decaying an exploration temperature).
type Population interface {
	// Add inserts ind into the population, applying the population's own
	// eviction policy if it is full.
	Add(ind *core.Individual)
	// Select returns the individual the next mutation round should start
	// from — typically the best-ranked one.
	Select() *core.Individual
	// Ranked returns every individual, best first.
	Ranked() []*core.Individual
	// Size returns the number of individuals currently held.
	Size() int
	// OnGeneration is called once per completed generation.
	OnGeneration(stats GenerationStats)
}

// RankedPopulation is the generic multi-individual population: it keeps
// up to MaxSize individuals sorted by ascending cost, evicting the worst
// on overflow — eviction is this population's insertion policy.
type RankedPopulation struct {
	individuals []*core.Individual
	maxSize     int
}

// NewRankedPopulation builds an empty ranked population capped at
// maxSize. maxSize <= 0 means unbounded.
func NewRankedPopulation(maxSize int) *RankedPopulation {
	return &RankedPopulation{maxSize: maxSize}
}

// Add implements Population: inserts ind in cost order, then trims to
// maxSize if the population overflowed.
func (p *RankedPopulation) Add(ind *core.Individual) {
	// Strictly-greater search point: an equal-cost individual lands after
	// the ones already present, keeping ties in insertion order.
	cost := ind.Cost()
	idx := sort.Search(len(p.individuals), func(i int) bool {
		return floatcmp.Less(cost, p.individuals[i].Cost())
	})
	p.individuals = append(p.individuals, nil)
	copy(p.individuals[idx+1:], p.individuals[idx:])
	p.individuals[idx] = ind

	if p.maxSize > 0 && len(p.individuals) > p.maxSize {
		p.individuals = p.individuals[:p.maxSize]
	}
}

// Select implements Population: the best-ranked (lowest cost) individual,
// or nil if the population is empty.
func (p *RankedPopulation) Select() *core.Individual {
	if len(p.individuals) == 0 {
		return nil
	}
	return p.individuals[0]
}

// Ranked implements Population.
func (p *RankedPopulation) Ranked() []*core.Individual {
	return p.individuals
}

// Size implements Population.
func (p *RankedPopulation) Size() int {
	return len(p.individuals)
}

// OnGeneration implements Population; RankedPopulation carries no
// generation-dependent state of its own.
func (p *RankedPopulation) OnGeneration(GenerationStats) {}

// GreedyPopulation holds exactly one individual, the best seen. The
// decomposition mutation uses it to hold per-partition state during its
// refinement loop.
type GreedyPopulation struct {
	best *core.Individual
}

// NewGreedyPopulation builds an empty greedy population.
func NewGreedyPopulation() *GreedyPopulation {
	return &GreedyPopulation{}
}

// Add implements Population: keeps ind only if it is empty or ind costs
// less than the current best.
func (p *GreedyPopulation) Add(ind *core.Individual) {
	if p.best == nil || floatcmp.Less(ind.Cost(), p.best.Cost()) {
		p.best = ind
	}
}

// Select implements Population.
func (p *GreedyPopulation) Select() *core.Individual {
	return p.best
}

// Ranked implements Population: zero or one element.
func (p *GreedyPopulation) Ranked() []*core.Individual {
	if p.best == nil {
		return nil
	}
	return []*core.Individual{p.best}
}

// Size implements Population.
func (p *GreedyPopulation) Size() int {
	if p.best == nil {
		return 0
	}
	return 1
}

// OnGeneration implements Population.
func (p *GreedyPopulation) OnGeneration(GenerationStats) {}
