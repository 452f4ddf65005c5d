package modules

import "github.com/burikinc/vrp/pkg/vrp/core"

// lockEntry is the resolved view of one job's membership in a lock detail:
// which actor it is pinned to, its position within the detail's declared
// order, how many jobs that detail pins in total, and how strictly the
// detail enforces that order.
type lockEntry struct {
	detail   *core.LockDetail
	actorID  string
	order    int
	total    int
	position core.LockPosition
}

// LockingModule enforces lock pinning: a locked job may only be served by
// its pinned actor, and must respect its declared order relative to every
// other job locked under the same detail. LockStrict additionally
// requires contiguity with its immediate neighbors in the lock; LockAny
// only requires relative order. LockDeparture/LockArrival pin the first
// or last locked job of a detail to the route's first/last real
// activity.
//
// Actor pinning matches LockDetail.ActorID against the route's vehicle
// ID — this engine has no separate driver-targeting lock field, so a
// lock always follows the vehicle.
type LockingModule struct {
	byJob map[*core.Job]lockEntry
}

// NewLockingModule resolves locks against jobs, indexing every locked job
// by its pointer for O(1) lookup during HardRoute/HardActivity.
func NewLockingModule(jobs *core.JobCorpus, locks []core.Lock) *LockingModule {
	byJob := make(map[*core.Job]lockEntry)
	for li := range locks {
		for di := range locks[li].Details {
			detail := &locks[li].Details[di]
			for order, id := range detail.JobIDs {
				job, ok := jobs.ByID(id)
				if !ok {
					continue
				}
				byJob[job] = lockEntry{
					detail:   detail,
					actorID:  detail.ActorID,
					order:    order,
					total:    len(detail.JobIDs),
					position: detail.Position,
				}
			}
		}
	}
	return &LockingModule{byJob: byJob}
}

// Name implements core.Module.
func (m *LockingModule) Name() string { return "locking" }

// Priority implements core.Module. Runs alongside skills, before the
// timing/capacity checks that a wrong-actor assignment would waste work
// evaluating.
func (m *LockingModule) Priority() int { return 1 }

// HardRoute implements core.Module: a locked job may only be routed onto
// its pinned actor.
func (m *LockingModule) HardRoute(routeCtx *core.RouteContext, job *core.Job) (bool, core.UnassignedCode) {
	entry, ok := m.byJob[job]
	if !ok {
		return true, 0
	}
	if routeCtx.Actor().Vehicle.ID != entry.actorID {
		return false, core.CodeLockViolation
	}
	return true, 0
}

// HardActivity implements core.Module: validates the candidate insertion
// point against every other locked job sharing the same detail.
func (m *LockingModule) HardActivity(routeCtx *core.RouteContext, activityCtx *core.ActivityContext) (bool, core.UnassignedCode) {
	if activityCtx.Target.Job == nil {
		return true, 0
	}
	entry, ok := m.byJob[activityCtx.Target.Job]
	if !ok {
		return true, 0
	}

	activities := routeCtx.Route.Tour.Activities()

	prevIdx := -1
	if activityCtx.Previous != nil {
		prevIdx = indexOfActivity(activities, activityCtx.Previous)
	}
	nextIdx := len(activities)
	if activityCtx.Next != nil {
		if idx := indexOfActivity(activities, activityCtx.Next); idx >= 0 {
			nextIdx = idx
		}
	}

	if entry.position == core.LockDeparture && entry.order == 0 && prevIdx > 0 {
		return false, core.CodeLockViolation
	}
	if entry.position == core.LockArrival && entry.order == entry.total-1 && nextIdx < len(activities)-1 {
		return false, core.CodeLockViolation
	}

	for _, a := range activities {
		if a.Job == nil || a.Job == activityCtx.Target.Job {
			continue
		}
		other, ok := m.byJob[a.Job]
		if !ok || other.detail != entry.detail {
			continue
		}

		aIdx := indexOfActivity(activities, a)

		if other.order < entry.order && aIdx >= nextIdx {
			return false, core.CodeLockViolation
		}
		if other.order > entry.order && aIdx <= prevIdx {
			return false, core.CodeLockViolation
		}

		if entry.position == core.LockStrict {
			if other.order == entry.order-1 && aIdx != prevIdx {
				return false, core.CodeLockViolation
			}
			if other.order == entry.order+1 && aIdx != nextIdx {
				return false, core.CodeLockViolation
			}
		}
	}

	return true, 0
}

// SoftCost implements core.Module: locking only ever hard-rejects.
func (m *LockingModule) SoftCost(*core.RouteContext, *core.ActivityContext) float64 { return 0 }

// AcceptRouteState implements core.Module; locking derives no state.
func (m *LockingModule) AcceptRouteState(*core.RouteContext) {}

// AcceptSolutionState implements core.Module.
func (m *LockingModule) AcceptSolutionState(*core.SolutionContext) {}

func indexOfActivity(activities []*core.Activity, target *core.Activity) int {
	for i, a := range activities {
		if a == target {
			return i
		}
	}
	return -1
}
