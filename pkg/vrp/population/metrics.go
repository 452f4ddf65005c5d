// Package population holds the refinement population itself plus the
// per-generation metrics and selection helpers that sit directly on top
// of it.
package population

import (
	"math"

	"github.com/burikinc/vrp/pkg/vrp/core"
)

// Metrics summarizes one solution's shape across its routes: load
// balance, customer-count balance, typical route duration/distance,
// typical waiting time, and how spread out the routes' geographic
// centers are from one another. Grounded on
// `construction/heuristics/metrics.rs`'s route-level statistics. The
// even-distribution module computes and caches them on every
// AcceptSolutionState and exposes them through its Metrics method.
type Metrics struct {
	MaxLoadVariance    float64
	CustomerCountStdev float64
	MeanDistance       float64
	MeanDuration       float64
	MeanWaiting        float64
	// DistanceGravity is the mean distance between every pair of routes'
	// medoids — a rough proxy for how geographically spread apart the
	// fleet's work is.
	DistanceGravity float64
}

// Compute derives Metrics for solution's current routes against
// transport (used for the medoid-to-medoid distances). An empty solution
// reports the zero Metrics.
func Compute(solution *core.SolutionContext, transport core.TransportCost) Metrics {
	routes := solution.Routes
	if len(routes) == 0 {
		return Metrics{}
	}

	loads := make([]float64, len(routes))
	counts := make([]float64, len(routes))
	distances := make([]float64, len(routes))
	durations := make([]float64, len(routes))
	waits := make([]float64, len(routes))
	medoids := make([]core.Location, 0, len(routes))

	for i, r := range routes {
		loads[i], _ = r.State.RouteFloat(core.MaxLoadKey)
		counts[i] = float64(r.Route.Tour.JobCount())
		distances[i], _ = r.State.RouteFloat(core.TotalDistanceKey)
		durations[i], _ = r.State.RouteFloat(core.TotalDurationKey)
		waits[i], _ = r.State.RouteFloat(core.WaitingKey)
		if medoid, ok := core.GetMedoid(r, transport); ok {
			medoids = append(medoids, medoid)
		}
	}

	m := Metrics{
		MaxLoadVariance:    variance(loads),
		CustomerCountStdev: math.Sqrt(variance(counts)),
		MeanDistance:       mean(distances),
		MeanDuration:       mean(durations),
		MeanWaiting:        mean(waits),
	}

	if len(medoids) > 1 {
		profile := routes[0].Actor().Vehicle.Profile
		var sum float64
		var pairs int
		for i := 0; i < len(medoids); i++ {
			for j := i + 1; j < len(medoids); j++ {
				d := transport.Distance(profile, medoids[i], medoids[j], 0)
				if d < 0 {
					continue
				}
				sum += d
				pairs++
			}
		}
		if pairs > 0 {
			m.DistanceGravity = sum / float64(pairs)
		}
	}

	return m
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := mean(xs)
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}
