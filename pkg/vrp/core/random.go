package core

import "math/rand"

// Random is the per-individual randomness source: a seedable generator
// each mutation borrows for the duration of one call. Keeping randomness
// per-individual rather than module-global is what keeps operators
// thread-local and their results replayable from a recorded seed.
type Random struct {
	rnd *rand.Rand
}

// NewRandom seeds a new generator.
func NewRandom(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a pseudo-random int in [0, n).
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rnd.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0, 1).
func (r *Random) Float64() float64 {
	return r.rnd.Float64()
}

// Weighted picks an index into weights with probability proportional to
// its weight, driving the initial builder's weighted-random method
// selection. Non-positive total weight falls back to a uniform pick over all
// indices so a misconfigured weight list never panics mid-refinement.
func (r *Random) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return r.Intn(len(weights))
	}

	pick := r.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if pick < cum {
			return i
		}
	}
	return len(weights) - 1
}

// Shuffle permutes items in place using the Fisher-Yates algorithm driven
// by this generator.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}

// Seed reseeds the generator. Used when deep-copying an individual whose
// mutation must stay reproducible from a recorded seed.
func (r *Random) Seed(seed int64) {
	r.rnd = rand.New(rand.NewSource(seed))
}
