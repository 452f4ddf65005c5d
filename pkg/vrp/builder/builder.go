// Package builder provides initial-population construction:
// builders that turn an empty individual into a seeded one, and
// the weighted-random method selection the engine drives them with.
package builder

import (
	"golang.org/x/sync/errgroup"

	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// InitialBuilder maps an empty individual to a seeded one by inserting
// all of its Required jobs through the problem's constraint pipeline.
// Implementations here exist to exercise the rest of the engine end to
// end, not to compete with a production insertion heuristic on solution
// quality.
type InitialBuilder interface {
	Build(ind *core.Individual)
}

// WeightedMethod pairs a builder with its selection weight for
// weighted-random method sampling.
type WeightedMethod struct {
	Builder InitialBuilder
	Weight  float64
}

// Seed constructs the initial population's individuals:
//  1. accept every caller-provided pre-built individual, up to size;
//  2. pick which method builds each remaining slot via random.Weighted,
//     sequentially (it shares the caller's Random, which is not
//     concurrency-safe), stopping early once quota reports reached —
//     except the very first individual is always produced even under an
//     already-reached quota, so the caller never walks away
//     empty-handed;
//  3. run the chosen builds concurrently via an errgroup fan-out — each
//     build gets its own Random, reseeded from the caller's, so the
//     parallel builds never share generator state.
func Seed(problem *core.Problem, random *core.Random, methods []WeightedMethod, size int, preseeded []*core.Individual, quota termination.Quota) []*core.Individual {
	out := append([]*core.Individual(nil), preseeded...)
	if len(out) > size {
		out = out[:size]
	}

	if len(methods) == 0 {
		return out
	}

	weights := make([]float64, len(methods))
	for i, m := range methods {
		weights[i] = m.Weight
	}

	type pick struct {
		method int
		random *core.Random
	}
	var picks []pick
	for len(out)+len(picks) < size {
		if len(out)+len(picks) > 0 && quota != nil && quota.IsReached() {
			break
		}
		idx := random.Weighted(weights)
		seed := int64(random.Intn(1 << 62))
		picks = append(picks, pick{method: idx, random: core.NewRandom(seed)})
	}

	built := make([]*core.Individual, len(picks))
	var g errgroup.Group
	for i, p := range picks {
		i, p := i, p
		g.Go(func() error {
			ind := core.NewIndividual(problem, p.random)
			methods[p.method].Builder.Build(ind)
			built[i] = ind
			return nil
		})
	}
	_ = g.Wait()

	return append(out, built...)
}
