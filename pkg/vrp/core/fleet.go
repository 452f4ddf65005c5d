package core

// Driver is the human half of an Actor. Drivers carry no routing-relevant
// fields of their own in this engine — they exist so an Actor can express
// "this driver, this vehicle, this shift" as a distinct identity even when
// the same vehicle is available across several shifts.
type Driver struct {
	ID string
}

// Shift describes one operating window for a vehicle: when it may start
// and must end, where it starts/ends from, and the breaks the driver may
// take during it.
type Shift struct {
	Start    Place
	End      Place
	TimeSpan TimeWindow
	Breaks   []BreakOption
}

// BreakOption is an optional rest stop within a shift: a candidate place
// (whose own Duration/TimeWindows govern when and how long it takes) the
// driver may take once during the shift. A break may
// be skipped (its cost is CodeBreakUnassigned) rather than failing the
// whole route.
type BreakOption struct {
	Place Place
}

// Capacity is a multi-dimensional load limit. A single-dimension problem
// simply uses a length-1 slice.
type Capacity []float64

// Exceeds reports whether load exceeds capacity in any dimension.
func (c Capacity) Exceeds(load Capacity) bool {
	for i := range c {
		var l float64
		if i < len(load) {
			l = load[i]
		}
		if l > c[i] {
			return true
		}
	}
	return false
}

// Sub returns c - other, dimension-wise, padding the shorter operand with
// zeros.
func (c Capacity) Sub(other Capacity) Capacity {
	n := len(c)
	if len(other) > n {
		n = len(other)
	}
	out := make(Capacity, n)
	for i := 0; i < n; i++ {
		var a, b float64
		if i < len(c) {
			a = c[i]
		}
		if i < len(other) {
			b = other[i]
		}
		out[i] = a - b
	}
	return out
}

// Add returns c + other, dimension-wise.
func (c Capacity) Add(other Capacity) Capacity {
	n := len(c)
	if len(other) > n {
		n = len(other)
	}
	out := make(Capacity, n)
	for i := 0; i < n; i++ {
		var a, b float64
		if i < len(c) {
			a = c[i]
		}
		if i < len(other) {
			b = other[i]
		}
		out[i] = a + b
	}
	return out
}

// Vehicle describes one physical vehicle: its capacity, the skills it
// carries, the transport profile it uses for cost lookups, its shifts and
// an optional reload capability.
type Vehicle struct {
	ID       string
	Profile  int
	Capacity Capacity
	Skills   []string
	Shifts   []Shift
	// Reloads lists places the vehicle can visit to reset its accumulated
	// load back toward zero (e.g. returning to a depot mid-tour).
	Reloads []Place
	// FixedCost is charged once if the vehicle is used at all.
	FixedCost float64
	// CostPerDistance and CostPerTime scale the transport oracle's raw
	// distance/duration into the objective's cost units.
	CostPerDistance float64
	CostPerTime     float64
	// MaxDistance and MaxDuration cap the vehicle's total travel per
	// shift; zero means unlimited.
	MaxDistance float64
	MaxDuration float64
}

// Actor is the smallest unit capable of operating a tour: one driver
// paired with one vehicle for one of that vehicle's shifts. Actors have
// identity semantics: two *Actor values are the same actor iff they are
// the same pointer, never by deep equality.
type Actor struct {
	Driver *Driver
	Vehicle *Vehicle
	Shift   Shift
}

// Fleet is the immutable description of all drivers, vehicles and their
// legal pairings.
type Fleet struct {
	Drivers  []*Driver
	Vehicles []*Vehicle
	actors   []*Actor
}

// NewFleet builds the driver×vehicle×shift actor permutation once, at
// construction time, so repeated Actors() calls never recompute it.
func NewFleet(drivers []*Driver, vehicles []*Vehicle) *Fleet {
	f := &Fleet{Drivers: drivers, Vehicles: vehicles}
	for _, d := range drivers {
		for _, v := range vehicles {
			for _, s := range v.Shifts {
				f.actors = append(f.actors, &Actor{Driver: d, Vehicle: v, Shift: s})
			}
		}
	}
	return f
}

// Actors returns every legal (driver, vehicle, shift) permutation.
func (f *Fleet) Actors() []*Actor {
	return f.actors
}
