package core

// Registry is the bookkeeping structure recording which actors are in use
// by an Individual. Actor equality is pointer identity throughout, never
// deep equality.
// Iteration order over available actors follows the fleet's declaration
// order, so two runs with the same seed walk candidates identically —
// builders and mutations rely on that for replay determinism.
type Registry struct {
	order     []*Actor
	available map[*Actor]bool
	used      map[*Actor]bool
}

// NewRegistry seeds a registry where every actor in the fleet starts out
// available.
func NewRegistry(actors []*Actor) *Registry {
	r := &Registry{
		order:     append([]*Actor(nil), actors...),
		available: make(map[*Actor]bool, len(actors)),
		used:      make(map[*Actor]bool),
	}
	for _, a := range actors {
		r.available[a] = true
	}
	return r
}

// UseRoute marks routeCtx's actor as in-use, moving it out of the
// available pool.
func (r *Registry) UseRoute(routeCtx *RouteContext) {
	a := routeCtx.Actor()
	delete(r.available, a)
	r.used[a] = true
}

// Free returns actor to the available pool (used when a route is torn
// down without being replaced).
func (r *Registry) Free(actor *Actor) {
	delete(r.used, actor)
	r.available[actor] = true
}

// Available returns every actor not currently in use, in fleet
// declaration order.
func (r *Registry) Available() []*Actor {
	out := make([]*Actor, 0, len(r.available))
	for _, a := range r.order {
		if r.available[a] {
			out = append(out, a)
		}
	}
	return out
}

// IsUsed reports whether actor is currently assigned to a route.
func (r *Registry) IsUsed(actor *Actor) bool {
	return r.used[actor]
}

// DeepCopy clones the registry's bookkeeping. Actor pointers are shared.
func (r *Registry) DeepCopy() *Registry {
	out := &Registry{
		order:     append([]*Actor(nil), r.order...),
		available: make(map[*Actor]bool, len(r.available)),
		used:      make(map[*Actor]bool, len(r.used)),
	}
	for a := range r.available {
		out.available[a] = true
	}
	for a := range r.used {
		out.used[a] = true
	}
	return out
}

// DeepSlice clones the registry retaining only actors satisfying
// predicate — used by the decomposition mutation to scope a partition's
// registry down to exactly the actors its routes use.
func (r *Registry) DeepSlice(predicate func(*Actor) bool) *Registry {
	out := &Registry{available: make(map[*Actor]bool), used: make(map[*Actor]bool)}
	for _, a := range r.order {
		if predicate(a) {
			out.order = append(out.order, a)
		}
	}
	for a := range r.available {
		if predicate(a) {
			out.available[a] = true
		}
	}
	for a := range r.used {
		if predicate(a) {
			out.used[a] = true
		}
	}
	return out
}
