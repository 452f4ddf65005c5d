// Package termination holds the refinement-loop stopping predicates and
// the external cancellation quota the engine polls between units of
// work.
package termination

import "time"

// Quota is an external cancellation signal polled between units of work
// — typically wall-clock, but
// anything satisfying the interface works (a remaining-budget counter, a
// context.Context wrapper, a test double that flips after N polls).
type Quota interface {
	// IsReached reports whether the quota has been exhausted. Once true,
	// it must stay true — quotas never un-expire.
	IsReached() bool
}

// NoQuota never reaches, for problems that run until Termination alone
// says stop.
type NoQuota struct{}

// IsReached implements Quota.
func (NoQuota) IsReached() bool { return false }

// CountQuota reaches after a fixed number of IsReached polls:
// deterministic, no wall-clock dependency, easy to drive from a test.
type CountQuota struct {
	limit int
	polls int
}

// NewCountQuota builds a quota that reaches once IsReached has been
// called limit times.
func NewCountQuota(limit int) *CountQuota {
	return &CountQuota{limit: limit}
}

// IsReached implements Quota: the first limit calls return false; every
// call after that returns true.
func (q *CountQuota) IsReached() bool {
	if q.polls >= q.limit {
		return true
	}
	q.polls++
	return false
}

// TimeQuota reaches once the wall-clock deadline elapses, the typical
// production cancellation handle.
type TimeQuota struct {
	deadline time.Time
}

// NewTimeQuota builds a quota that reaches after d elapses from now.
func NewTimeQuota(d time.Duration) *TimeQuota {
	return &TimeQuota{deadline: time.Now().Add(d)}
}

// IsReached implements Quota.
func (q *TimeQuota) IsReached() bool {
	return !time.Now().Before(q.deadline)
}
