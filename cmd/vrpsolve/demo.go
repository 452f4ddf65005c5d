package main

import (
	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/modules"
)

// demoProblem builds a small delivery scenario on a 10-location line: two
// vehicles at a shared depot, eight single-delivery jobs sharing one
// [0, 500] time window, one driver break per shift.
func demoProblem() *core.Problem {
	const n = 10
	durations := make([]float64, n*n)
	distances := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := float64(i - j)
			if d < 0 {
				d = -d
			}
			durations[i*n+j] = d
			distances[i*n+j] = d
		}
	}
	matrix, err := core.NewMatrix(n, durations, distances, nil)
	if err != nil {
		panic(err)
	}
	transport := core.NewMatrixTransportCost(map[int]*core.Matrix{0: matrix})

	depot := core.Place{Location: 0}
	shift := core.Shift{
		Start:    depot,
		End:      depot,
		TimeSpan: core.TimeWindow{Start: 0, End: 1000},
		Breaks: []core.BreakOption{
			{Place: core.Place{Location: 5, Duration: 2, TimeWindows: []core.TimeWindow{{Start: 0, End: 1000}}}},
		},
	}

	vehicles := []*core.Vehicle{
		{
			ID: "truck-1", Profile: 0, Capacity: core.Capacity{10},
			Shifts: []core.Shift{shift}, FixedCost: 10, CostPerDistance: 1, CostPerTime: 1,
		},
		{
			ID: "truck-2", Profile: 0, Capacity: core.Capacity{10},
			Shifts: []core.Shift{shift}, FixedCost: 10, CostPerDistance: 1, CostPerTime: 1,
		},
	}
	fleet := core.NewFleet([]*core.Driver{{ID: "driver-1"}}, vehicles)

	jobs := make([]*core.Job, 0, 8)
	for i := 0; i < 8; i++ {
		loc := core.Location(1 + i%9)
		jobs = append(jobs, &core.Job{
			ID:   jobID(i),
			Kind: core.KindSingle,
			Places: []core.Place{{
				Location:    loc,
				Duration:    1,
				TimeWindows: []core.TimeWindow{{Start: 0, End: 500}},
			}},
			Demand: core.Demand{Delivery: core.Capacity{1}},
		})
	}
	corpus := core.NewJobCorpus(jobs)

	pipeline := core.NewPipeline(
		modules.NewTransportModule(transport, core.DefaultActivityCost{}),
		modules.NewCapacityModule(),
		modules.NewReloadModule(),
		modules.NewBreaksModule(transport),
		modules.NewSkillsModule(),
		modules.NewReachableModule(transport),
		modules.NewTravelLimitModule(transport),
		modules.NewFixedCostModule(),
		modules.NewEvenDistributionModule(transport),
	)

	objective := core.NewWeightedObjective(1000)

	return core.NewProblem(fleet, corpus, transport, pipeline, objective, nil)
}

func jobID(i int) string {
	return "job" + string(rune('1'+i))
}
