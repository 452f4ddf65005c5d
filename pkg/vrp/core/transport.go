package core

// TransportCost answers "how far/long from A to B, under this profile, if
// departing at this time." A negative distance means the pair is
// unreachable; every consumer must treat that as an infeasible-insertion
// signal, never as an error.
type TransportCost interface {
	Distance(profile int, from, to Location, departure float64) float64
	Duration(profile int, from, to Location, departure float64) float64
}

// ActivityCost answers "how long does serving this place take" — service
// duration is modeled separately from travel duration so that breaks,
// reloads and ordinary stops can each carry their own service-time rule.
type ActivityCost interface {
	Estimate(place Place, arrival float64) float64
}

// DefaultActivityCost estimates service duration as simply the place's
// declared Duration, independent of arrival time. Profiles needing
// time-of-day dependent service times (e.g. slower loading at night)
// provide their own ActivityCost.
type DefaultActivityCost struct{}

// Estimate implements ActivityCost.
func (DefaultActivityCost) Estimate(place Place, _ float64) float64 {
	return place.Duration
}

// Matrix is the wire-adjacent transport oracle: a square grid of
// travel times and distances per profile, with an optional parallel grid
// of error codes. A non-zero error code or a negative distance marks the
// (from, to) pair unreachable.
type Matrix struct {
	Size         int
	Durations    []float64
	Distances    []float64
	ErrorCodes   []int
}

// NewMatrix validates that the supplied grids are square and consistently
// sized.
func NewMatrix(size int, durations, distances []float64, errorCodes []int) (*Matrix, error) {
	if len(durations) != size*size || len(distances) != size*size {
		return nil, errMatrixShape
	}
	if errorCodes != nil && len(errorCodes) != size*size {
		return nil, errMatrixShape
	}
	return &Matrix{Size: size, Durations: durations, Distances: distances, ErrorCodes: errorCodes}, nil
}

func (m *Matrix) index(from, to Location) int {
	return int(from)*m.Size + int(to)
}

// Unreachable reports whether the (from, to) pair is unroutable: either
// the distance grid carries a negative value there, or the error-code
// grid (if present) carries a non-zero code.
func (m *Matrix) Unreachable(from, to Location) bool {
	idx := m.index(from, to)
	if idx < 0 || idx >= len(m.Distances) {
		return true
	}
	if m.Distances[idx] < 0 {
		return true
	}
	if m.ErrorCodes != nil && m.ErrorCodes[idx] != 0 {
		return true
	}
	return false
}

// MatrixTransportCost is a TransportCost backed by one Matrix per
// profile. Departure time is accepted for interface symmetry with
// time-dependent oracles but ignored — the matrices here are static.
type MatrixTransportCost struct {
	profiles map[int]*Matrix
}

// NewMatrixTransportCost builds a transport oracle from a profile-index
// to Matrix mapping.
func NewMatrixTransportCost(profiles map[int]*Matrix) *MatrixTransportCost {
	return &MatrixTransportCost{profiles: profiles}
}

// Distance implements TransportCost. Returns -1 for an unroutable pair or
// an unknown profile.
func (m *MatrixTransportCost) Distance(profile int, from, to Location, _ float64) float64 {
	mx, ok := m.profiles[profile]
	if !ok {
		return -1
	}
	if mx.Unreachable(from, to) {
		return -1
	}
	return mx.Distances[mx.index(from, to)]
}

// Duration implements TransportCost. Returns -1 for an unroutable pair or
// an unknown profile, mirroring Distance's sentinel.
func (m *MatrixTransportCost) Duration(profile int, from, to Location, _ float64) float64 {
	mx, ok := m.profiles[profile]
	if !ok {
		return -1
	}
	if mx.Unreachable(from, to) {
		return -1
	}
	return mx.Durations[mx.index(from, to)]
}
