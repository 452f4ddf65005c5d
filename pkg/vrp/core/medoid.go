package core

// GetMedoid returns the activity location in routeCtx's tour minimizing
// the sum of distances (under the actor's transport profile) to every
// other activity location in the same route. Negative (unreachable)
// distances are clamped to 0 before summing, tolerating
// partially-unroutable tours. Returns (0, false) when the route has no
// activities, or when every pairwise distance is unreachable — a fully
// disconnected route has no meaningful center and must not pass for a
// medoid-valid one during proximity grouping.
//
// A single-activity route's medoid is that activity's location, since
// the sum-of-distances over an empty "others" set is trivially 0 for
// every candidate, and the first candidate wins ties.
func GetMedoid(routeCtx *RouteContext, transport TransportCost) (Location, bool) {
	activities := routeCtx.Route.Tour.Activities()
	if len(activities) == 0 {
		return 0, false
	}

	profile := routeCtx.Actor().Vehicle.Profile

	var best Location
	bestSum := -1.0
	found := false
	anyReachable := false

	for _, a := range activities {
		sum := 0.0
		for _, other := range activities {
			if other == a {
				continue
			}
			d := transport.Distance(profile, a.Place.Location, other.Place.Location, 0)
			if d < 0 {
				d = 0
			} else {
				anyReachable = true
			}
			sum += d
		}
		if !found || sum < bestSum {
			best = a.Place.Location
			bestSum = sum
			found = true
		}
	}

	if len(activities) > 1 && !anyReachable {
		return 0, false
	}

	return best, found
}
