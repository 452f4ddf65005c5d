package modules

import (
	"testing"

	"github.com/burikinc/vrp/pkg/vrp/core"
)

// lineTransport is a transport oracle over n locations laid out on a
// line, distance and duration |i-j|.
func lineTransport(t *testing.T, n int) core.TransportCost {
	t.Helper()
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
	m, err := core.NewMatrix(n, durations, distances, nil)
	if err != nil {
		t.Fatalf("building line matrix: %v", err)
	}
	return core.NewMatrixTransportCost(map[int]*core.Matrix{0: m})
}

func depotActor(vehicleID string) *core.Actor {
	depot := core.Place{Location: 0}
	return &core.Actor{
		Driver: &core.Driver{ID: "d1"},
		Vehicle: &core.Vehicle{
			ID: vehicleID, Profile: 0, Capacity: core.Capacity{10},
			CostPerDistance: 1, CostPerTime: 1,
		},
		Shift: core.Shift{Start: depot, End: depot, TimeSpan: core.TimeWindow{Start: 0, End: 1000}},
	}
}

func deliveryJob(id string, loc core.Location, demand float64) *core.Job {
	return &core.Job{
		ID:     id,
		Kind:   core.KindSingle,
		Places: []core.Place{{Location: loc, Duration: 1}},
		Demand: core.Demand{Delivery: core.Capacity{demand}},
	}
}

// shuttleJob is a pickup-then-delivery Multi job: pick demand up at from,
// drop it off at to.
func shuttleJob(id string, from, to core.Location, demand float64) *core.Job {
	return &core.Job{
		ID:   id,
		Kind: core.KindMulti,
		Places: []core.Place{
			{Location: from, Duration: 1},
			{Location: to, Duration: 1},
		},
		Demand: core.Demand{Pickup: core.Capacity{demand}, Delivery: core.Capacity{demand}},
	}
}

func pickupJob(id string, loc core.Location, demand float64) *core.Job {
	return &core.Job{
		ID:     id,
		Kind:   core.KindSingle,
		Places: []core.Place{{Location: loc, Duration: 1}},
		Demand: core.Demand{Pickup: core.Capacity{demand}},
	}
}

func insertService(routeCtx *core.RouteContext, idx int, job *core.Job) {
	routeCtx.Route.Tour.InsertAt(idx, &core.Activity{
		Kind: core.Service, Job: job, PlaceIdx: 0, Place: job.Places[0],
	})
}

func activityCtxAt(routeCtx *core.RouteContext, idx int, target *core.Activity) *core.ActivityContext {
	activities := routeCtx.Route.Tour.Activities()
	return &core.ActivityContext{
		Previous: activities[idx-1],
		Target:   target,
		Next:     activities[idx],
	}
}
