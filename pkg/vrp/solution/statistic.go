// Package solution renders a refined individual into the adapter-facing
// shape: an overall statistic (cost, distance, duration and a
// driving/serving/waiting/break time breakdown) plus per-tour activity
// stops. It recomputes its totals locally from each tour rather than
// reading the pipeline's state keys, so a renderer never depends on when
// the last Accept* call happened.
package solution

import (
	"github.com/burikinc/vrp/pkg/vrp/core"
)

// Times breaks a solution's total duration down by what the fleet was
// doing.
type Times struct {
	Driving float64
	Serving float64
	Waiting float64
	Break   float64
}

// Statistic is the headline summary of one solution.
type Statistic struct {
	Cost     float64
	Distance float64
	Duration float64
	Times    Times
}

// Stop is one rendered activity along a tour.
type Stop struct {
	Location  core.Location
	Arrival   float64
	Departure float64
	JobID     string
	Kind      core.ActivityKind
}

// TourView is one vehicle's rendered tour: the actor's vehicle ID plus
// its ordered stops, departure through arrival.
type TourView struct {
	VehicleID string
	Stops     []Stop
}

// Calculate walks every route of ind, re-deriving timing from the
// transport/activity oracles, and returns the solution's statistic plus
// its rendered tours.
func Calculate(ind *core.Individual) (Statistic, []TourView) {
	problem := ind.Problem

	var stat Statistic
	tours := make([]TourView, 0, len(ind.Solution.Routes))

	for _, routeCtx := range ind.Solution.Routes {
		actor := routeCtx.Actor()
		profile := actor.Vehicle.Profile
		activities := routeCtx.Route.Tour.Activities()

		view := TourView{VehicleID: actor.Vehicle.ID}

		departure := actor.Shift.TimeSpan.Start
		for i, a := range activities {
			stop := Stop{Location: a.Place.Location, Kind: a.Kind}
			if a.Job != nil {
				stop.JobID = a.Job.ID
			}

			if i == 0 {
				stop.Arrival = departure
				stop.Departure = departure
				view.Stops = append(view.Stops, stop)
				continue
			}

			prev := activities[i-1]
			dist := problem.Transport.Distance(profile, prev.Place.Location, a.Place.Location, departure)
			dur := problem.Transport.Duration(profile, prev.Place.Location, a.Place.Location, departure)
			if dist < 0 || dur < 0 {
				stop.Arrival = departure
				stop.Departure = departure
				view.Stops = append(view.Stops, stop)
				continue
			}

			stat.Distance += dist
			stat.Times.Driving += dur

			arrival := departure + dur
			start := arrival
			for _, w := range a.Place.TimeWindows {
				if arrival <= w.End {
					if arrival < w.Start {
						start = w.Start
					}
					break
				}
			}
			if wait := start - arrival; wait > 0 {
				stat.Times.Waiting += wait
			}

			service := problem.Activity.Estimate(a.Place, arrival)
			switch a.Kind {
			case core.Break:
				stat.Times.Break += service
			case core.Service, core.Reload:
				stat.Times.Serving += service
			}

			stop.Arrival = arrival
			stop.Departure = start + service
			departure = stop.Departure
			view.Stops = append(view.Stops, stop)
		}

		tours = append(tours, view)
	}

	stat.Duration = stat.Times.Driving + stat.Times.Serving + stat.Times.Waiting + stat.Times.Break
	stat.Cost = problem.Objective.EstimateCost(ind.Solution)

	return stat, tours
}
