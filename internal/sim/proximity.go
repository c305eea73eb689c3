package sim

import "math"

type Point struct {
	X float64
	Y float64
}

func (p Point) Distance(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// ProximityResolver measures center-to-center distance between the player
// and machines.
type ProximityResolver struct {
	Range float64
}

func NewProximityResolver() ProximityResolver {
	return ProximityResolver{Range: InteractionRange}
}

// InRange is inclusive of the range boundary.
func (r ProximityResolver) InRange(p Player, m Machine) bool {
	return p.Center().Distance(m.Center()) <= r.Range
}

// NearestInRange returns the closest machine within range. Ties keep the
// first machine in list order.
func (r ProximityResolver) NearestInRange(p Player, machines []Machine) (Machine, bool) {
	var (
		nearest Machine
		found   bool
		best    = math.Inf(1)
	)
	pc := p.Center()
	for _, m := range machines {
		d := pc.Distance(m.Center())
		if d <= r.Range && d < best {
			nearest, best, found = m, d, true
		}
	}
	return nearest, found
}

// HitTest returns the first machine whose bounds contain pt.
func HitTest(pt Point, machines []Machine) (Machine, bool) {
	for _, m := range machines {
		if m.Contains(pt) {
			return m, true
		}
	}
	return Machine{}, false
}
