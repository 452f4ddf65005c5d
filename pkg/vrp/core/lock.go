package core

// LockPosition constrains where, within a locked sequence, a job must
// land relative to the rest of the route.
type LockPosition int

const (
	// LockAny lets the locked jobs appear anywhere in the route, as long
	// as they stay in the declared relative order.
	LockAny LockPosition = iota
	// LockStrict requires the locked jobs to be contiguous and in the
	// declared order, with nothing else interleaved.
	LockStrict
	// LockDeparture requires the first locked job to be the route's first
	// activity after departure.
	LockDeparture
	// LockArrival requires the last locked job to be the route's last
	// activity before arrival.
	LockArrival
)

// LockDetail names the actor a set of jobs is pinned to, the order they
// must be served in, and how strictly that order is enforced.
type LockDetail struct {
	ActorID  string
	JobIDs   []string
	Position LockPosition
}

// Lock is the top-level pin: a job, or set of jobs, that must be served by
// a specific actor in a specific order and position.
type Lock struct {
	Details []LockDetail
}

// JobIDs returns every job ID referenced by this lock, across all of its
// details.
func (l Lock) JobIDs() []string {
	var ids []string
	for _, d := range l.Details {
		ids = append(ids, d.JobIDs...)
	}
	return ids
}
