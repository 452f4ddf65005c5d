package core

// Problem is the immutable description shared by all workers:
// fleet, job corpus, transport/activity cost oracles, constraint
// pipeline, objective and locks. It is constructed once by an adapter
// (the JSON reader, a test fixture, …) and never mutated afterward, which
// is what makes sharing it read-only across goroutines safe.
type Problem struct {
	Fleet        *Fleet
	Jobs         *JobCorpus
	Transport    TransportCost
	Activity     ActivityCost
	Constraint   *Pipeline
	Objective    Objective
	Locks        []Lock
	// Extras carries adapter-specific opaque data the core never
	// interprets.
	Extras map[string]any
}

// NewProblem assembles a Problem, defaulting Activity to
// DefaultActivityCost and Extras to an empty map when omitted.
func NewProblem(fleet *Fleet, jobs *JobCorpus, transport TransportCost, constraint *Pipeline, objective Objective, locks []Lock) *Problem {
	return &Problem{
		Fleet:      fleet,
		Jobs:       jobs,
		Transport:  transport,
		Activity:   DefaultActivityCost{},
		Constraint: constraint,
		Objective:  objective,
		Locks:      locks,
		Extras:     make(map[string]any),
	}
}

// LockedJobIDs returns the set of job IDs pinned by any lock, used to
// seed SolutionContext.Locked when a problem has locks configured.
func (p *Problem) LockedJobIDs() map[string]bool {
	ids := make(map[string]bool)
	for _, lock := range p.Locks {
		for _, id := range lock.JobIDs() {
			ids[id] = true
		}
	}
	return ids
}
