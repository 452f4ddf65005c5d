package core

import "testing"

// lineMatrix builds an n-location matrix where distance and duration
// between i and j are |i-j|, the shape most tests in this package and
// its consumers share.
func lineMatrix(t *testing.T, n int) *Matrix {
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
	m, err := NewMatrix(n, durations, distances, nil)
	if err != nil {
		t.Fatalf("building line matrix: %v", err)
	}
	return m
}

func testActor(vehicleID string) *Actor {
	depot := Place{Location: 0}
	return &Actor{
		Driver: &Driver{ID: "d1"},
		Vehicle: &Vehicle{
			ID: vehicleID, Profile: 0, Capacity: Capacity{10},
			CostPerDistance: 1, CostPerTime: 1,
		},
		Shift: Shift{Start: depot, End: depot, TimeSpan: TimeWindow{Start: 0, End: 1000}},
	}
}

func serviceActivity(job *Job) *Activity {
	return &Activity{Kind: Service, Job: job, PlaceIdx: 0, Place: job.Places[0]}
}

func singleJob(id string, loc Location) *Job {
	return &Job{
		ID:     id,
		Kind:   KindSingle,
		Places: []Place{{Location: loc, Duration: 1}},
		Demand: Demand{Delivery: Capacity{1}},
	}
}
