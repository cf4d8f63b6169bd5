package models

// Route is the published corridor a trip runs over. Stops are the
// intermediate points between Origin and Destination, in travel order.
type Route struct {
	ID          int64    `json:"id"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Stops       []string `json:"stops"`
	CompanyID   string   `json:"companyId"`
}

// RoutePair is one sellable origin/destination combination on a route,
// used for per-pair pricing.
type RoutePair struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Points returns origin + stops + destination in travel order.
func (r Route) Points() []string {
	pts := make([]string, 0, len(r.Stops)+2)
	pts = append(pts, r.Origin)
	pts = append(pts, r.Stops...)
	pts = append(pts, r.Destination)
	return pts
}

// SegmentPairs generates every forward origin->destination combination
// over the route's points: n*(n-1)/2 pairs for n points.
func (r Route) SegmentPairs() []RoutePair {
	pts := r.Points()
	pairs := make([]RoutePair, 0, len(pts)*(len(pts)-1)/2)
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			pairs = append(pairs, RoutePair{Origin: pts[i], Destination: pts[j]})
		}
	}
	return pairs
}
