package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/burikinc/vrp/pkg/vrp/core"
)

func TestCapacityModule_RejectsOversizedJobAtRouteLevel(t *testing.T) {
	module := NewCapacityModule()
	actor := depotActor("v1")
	actor.Vehicle.Capacity = core.Capacity{5}
	routeCtx := core.NewRouteContext(actor)

	ok, code := module.HardRoute(routeCtx, pickupJob("big", 1, 6))
	assert.False(t, ok)
	assert.Equal(t, core.CodeCapacity, code)

	ok, _ = module.HardRoute(routeCtx, pickupJob("fits", 1, 5))
	assert.True(t, ok)
}

func TestCapacityModule_RejectsRunningOverload(t *testing.T) {
	module := NewCapacityModule()
	actor := depotActor("v1")
	actor.Vehicle.Capacity = core.Capacity{3}
	routeCtx := core.NewRouteContext(actor)

	insertService(routeCtx, 1, pickupJob("p1", 1, 2))

	target := &core.Activity{Kind: core.Service, Job: pickupJob("p2", 2, 2), PlaceIdx: 0}
	target.Place = target.Job.Places[0]
	ok, code := module.HardActivity(routeCtx, activityCtxAt(routeCtx, 2, target))

	assert.False(t, ok)
	assert.Equal(t, core.CodeCapacity, code)
}

func TestCapacityModule_MultiJobCarriesLoadBetweenLegs(t *testing.T) {
	module := NewCapacityModule()
	actor := depotActor("v1")
	actor.Vehicle.Capacity = core.Capacity{3}
	routeCtx := core.NewRouteContext(actor)

	shuttle := shuttleJob("m1", 1, 2, 3)
	routeCtx.Route.Tour.InsertAt(1, &core.Activity{
		Kind: core.Service, Job: shuttle, PlaceIdx: 0, Place: shuttle.Places[0],
	})
	routeCtx.Route.Tour.InsertAt(2, &core.Activity{
		Kind: core.Service, Job: shuttle, PlaceIdx: 1, Place: shuttle.Places[1],
	})

	// Between pickup and delivery the vehicle is full: another pickup
	// there overloads it.
	extra := &core.Activity{Kind: core.Service, Job: pickupJob("p1", 3, 3), PlaceIdx: 0}
	extra.Place = extra.Job.Places[0]
	ok, code := module.HardActivity(routeCtx, activityCtxAt(routeCtx, 2, extra))
	assert.False(t, ok)
	assert.Equal(t, core.CodeCapacity, code)

	// After the delivery leg the load is back to zero, so it fits.
	ok, _ = module.HardActivity(routeCtx, activityCtxAt(routeCtx, 3, extra))
	assert.True(t, ok)
}

func TestCapacityModule_MultiJobRouteLevelPeak(t *testing.T) {
	module := NewCapacityModule()
	actor := depotActor("v1")
	actor.Vehicle.Capacity = core.Capacity{3}
	routeCtx := core.NewRouteContext(actor)

	ok, _ := module.HardRoute(routeCtx, shuttleJob("fits", 1, 2, 3))
	assert.True(t, ok)

	// The pickup side alone exceeds capacity even though net demand is
	// zero across both legs.
	ok, code := module.HardRoute(routeCtx, shuttleJob("big", 1, 2, 4))
	assert.False(t, ok)
	assert.Equal(t, core.CodeCapacity, code)
}

func TestCapacityModule_MultiJobMaxLoad(t *testing.T) {
	module := NewCapacityModule()
	actor := depotActor("v1")
	routeCtx := core.NewRouteContext(actor)

	shuttle := shuttleJob("m1", 1, 2, 4)
	routeCtx.Route.Tour.InsertAt(1, &core.Activity{
		Kind: core.Service, Job: shuttle, PlaceIdx: 0, Place: shuttle.Places[0],
	})
	routeCtx.Route.Tour.InsertAt(2, &core.Activity{
		Kind: core.Service, Job: shuttle, PlaceIdx: 1, Place: shuttle.Places[1],
	})

	module.AcceptRouteState(routeCtx)

	maxLoad, ok := routeCtx.State.RouteFloat(core.MaxLoadKey)
	assert.True(t, ok)
	assert.InDelta(t, 4.0, maxLoad, 1e-9, "peak is the in-transit pickup, not the zero net")
}

func TestCapacityModule_WritesMaxLoad(t *testing.T) {
	module := NewCapacityModule()
	actor := depotActor("v1")
	routeCtx := core.NewRouteContext(actor)

	insertService(routeCtx, 1, pickupJob("p1", 1, 2))
	insertService(routeCtx, 2, pickupJob("p2", 2, 3))

	module.AcceptRouteState(routeCtx)

	maxLoad, ok := routeCtx.State.RouteFloat(core.MaxLoadKey)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, maxLoad, 1e-9)
}

func TestReloadModule_ResetsLoadAtReloadStop(t *testing.T) {
	module := NewReloadModule()
	actor := depotActor("v1")
	actor.Vehicle.Capacity = core.Capacity{3}
	actor.Vehicle.Reloads = []core.Place{{Location: 0}}
	routeCtx := core.NewRouteContext(actor)

	insertService(routeCtx, 1, pickupJob("p1", 1, 3))
	routeCtx.Route.Tour.InsertAt(2, &core.Activity{Kind: core.Reload, Place: core.Place{Location: 0}})

	// After the reload the running load is back to zero, so a full
	// 3-unit pickup fits again.
	target := &core.Activity{Kind: core.Service, Job: pickupJob("p2", 2, 3), PlaceIdx: 0}
	target.Place = target.Job.Places[0]
	ok, _ := module.HardActivity(routeCtx, activityCtxAt(routeCtx, 3, target))
	assert.True(t, ok)

	// Without crossing the reload, the same pickup is rejected.
	ok, code := module.HardActivity(routeCtx, activityCtxAt(routeCtx, 2, target))
	assert.False(t, ok)
	assert.Equal(t, core.CodeCapacity, code)
}

func TestReloadModule_SoftCostNudgesNearFullLoads(t *testing.T) {
	module := NewReloadModule()
	actor := depotActor("v1")
	actor.Vehicle.Capacity = core.Capacity{10}
	actor.Vehicle.Reloads = []core.Place{{Location: 0}}
	routeCtx := core.NewRouteContext(actor)

	insertService(routeCtx, 1, pickupJob("p1", 1, 8))

	target := &core.Activity{Kind: core.Service, Job: pickupJob("p2", 2, 2), PlaceIdx: 0}
	target.Place = target.Job.Places[0]
	cost := module.SoftCost(routeCtx, activityCtxAt(routeCtx, 2, target))

	// Load would hit 10/10, past the 0.9 threshold.
	assert.Greater(t, cost, 0.0)

	light := &core.Activity{Kind: core.Service, Job: pickupJob("p3", 2, 1), PlaceIdx: 0}
	light.Place = light.Job.Places[0]
	assert.Equal(t, 0.0, module.SoftCost(routeCtx, activityCtxAt(routeCtx, 2, light)))
}
