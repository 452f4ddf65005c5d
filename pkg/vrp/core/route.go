package core

// ActivityKind distinguishes a tour's structural endpoints from the job
// visits in between.
type ActivityKind int

const (
	// Departure is the tour's first activity: leaving the actor's start
	// place at the beginning of its shift.
	Departure ActivityKind = iota
	// Service is an ordinary job visit.
	Service
	// Break is a vehicle break inserted like any other activity but with
	// no associated Job.
	Break
	// Reload resets the vehicle's accumulated load mid-tour.
	Reload
	// Arrival is the tour's last activity: returning to the actor's end
	// place.
	Arrival
)

// Activity is one stop along a tour. Job is nil for Departure, Arrival,
// and Break activities. Arrival/Departure time are derived state, written
// by the transport module's AcceptRouteState and valid only between that
// call and the next structural edit.
type Activity struct {
	Kind     ActivityKind
	Job      *Job
	PlaceIdx int
	Place    Place

	ArrivalTime   float64
	DepartureTime float64
}

// Tour is the ordered sequence of activities an actor performs.
type Tour struct {
	activities []*Activity
}

// NewTour creates a tour bracketed by a Departure and an Arrival
// activity at the actor's shift start/end places.
func NewTour(start, end Place) *Tour {
	return &Tour{activities: []*Activity{
		{Kind: Departure, Place: start},
		{Kind: Arrival, Place: end},
	}}
}

// Activities returns the full ordered activity list, departure through
// arrival inclusive.
func (t *Tour) Activities() []*Activity {
	return t.activities
}

// Count returns the number of activities, including departure/arrival.
func (t *Tour) Count() int {
	return len(t.activities)
}

// Get returns the activity at index i, or nil if out of range.
func (t *Tour) Get(i int) *Activity {
	if i < 0 || i >= len(t.activities) {
		return nil
	}
	return t.activities[i]
}

// Jobs returns the distinct set of jobs served by this tour, in the order
// their first activity appears.
func (t *Tour) Jobs() []*Job {
	seen := make(map[*Job]bool)
	var jobs []*Job
	for _, a := range t.activities {
		if a.Job != nil && !seen[a.Job] {
			seen[a.Job] = true
			jobs = append(jobs, a.Job)
		}
	}
	return jobs
}

// JobCount returns the number of distinct jobs served.
func (t *Tour) JobCount() int {
	return len(t.Jobs())
}

// InsertAt inserts activity at position idx, shifting everything from idx
// onward one place later. idx must be in [1, Count()-1] (between
// departure and arrival, inclusive of landing right before arrival).
func (t *Tour) InsertAt(idx int, activity *Activity) {
	t.activities = append(t.activities, nil)
	copy(t.activities[idx+1:], t.activities[idx:])
	t.activities[idx] = activity
}

// RemoveJob removes every activity belonging to job and reports whether
// anything was removed.
func (t *Tour) RemoveJob(job *Job) bool {
	removed := false
	out := t.activities[:0:0]
	for _, a := range t.activities {
		if a.Job == job {
			removed = true
			continue
		}
		out = append(out, a)
	}
	t.activities = out
	return removed
}

// DeepCopy clones the tour. It also returns the activity-pointer remap
// (old → new) so owning RouteContext.DeepCopy can rekey activity-level
// state.
func (t *Tour) DeepCopy() (*Tour, map[*Activity]*Activity) {
	remap := make(map[*Activity]*Activity, len(t.activities))
	out := &Tour{activities: make([]*Activity, len(t.activities))}
	for i, a := range t.activities {
		na := *a
		out.activities[i] = &na
		remap[a] = &na
	}
	return out, remap
}

// Route pairs an immutable Actor with its mutable Tour.
type Route struct {
	Actor *Actor
	Tour  *Tour
}

// RouteContext is one vehicle tour plus its derived state.
type RouteContext struct {
	Route *Route
	State *StateBag
}

// Actor returns the actor operating this route.
func (r *RouteContext) Actor() *Actor {
	return r.Route.Actor
}

// NewRouteContext creates a fresh RouteContext for actor, with an empty
// departure/arrival tour and empty state.
func NewRouteContext(actor *Actor) *RouteContext {
	return &RouteContext{
		Route: &Route{
			Actor: actor,
			Tour:  NewTour(actor.Shift.Start, actor.Shift.End),
		},
		State: NewStateBag(),
	}
}

// DeepCopy produces an independently mutable clone. The Actor
// pointer is shared (actors have identity semantics and are never
// copied).
func (r *RouteContext) DeepCopy() *RouteContext {
	tour, remap := r.Route.Tour.DeepCopy()
	return &RouteContext{
		Route: &Route{Actor: r.Route.Actor, Tour: tour},
		State: r.State.DeepCopy(remap),
	}
}
