package vmath

// Orientation classes for an ordered point triple
const (
	Collinear        = 0
	Clockwise        = 1
	CounterClockwise = 2
)

// Orientation returns the turn direction of p -> q -> r
func Orientation(p, q, r Point) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if val == 0 {
		return Collinear
	}
	if val > 0 {
		return Clockwise
	}
	return CounterClockwise
}

// OnSegment reports whether q lies inside the bounding box of p-r
// Only meaningful when p, q, r are collinear
func OnSegment(p, q, r Point) bool {
	return q.X <= max(p.X, r.X) && q.X >= min(p.X, r.X) &&
		q.Y <= max(p.Y, r.Y) && q.Y >= min(p.Y, r.Y)
}

// Intersects reports whether segment a0-a1 crosses or touches segment b0-b1
func Intersects(a0, a1, b0, b1 Point) bool {
	o1 := Orientation(a0, a1, b0)
	o2 := Orientation(a0, a1, b1)
	o3 := Orientation(b0, b1, a0)
	o4 := Orientation(b0, b1, a1)

	if o1 != o2 && o3 != o4 {
		return true
	}

	// Collinear fallbacks
	return (o1 == Collinear && OnSegment(a0, b0, a1)) ||
		(o2 == Collinear && OnSegment(a0, b1, a1)) ||
		(o3 == Collinear && OnSegment(b0, a0, b1)) ||
		(o4 == Collinear && OnSegment(b0, a1, b1))
}

// IntersectionPoint solves the two line equations A·x + B·y = C
// Caller must gate with Intersects; parallel lines panic
func IntersectionPoint(a0, a1, b0, b1 Point) Point {
	pa, pb, pc := lineCoefficients(a0, a1)
	qa, qb, qc := lineCoefficients(b0, b1)

	det := pa*qb - qa*pb
	if det == 0 {
		panic("vmath: IntersectionPoint called on parallel segments")
	}

	return Point{
		X: (qb*pc - pb*qc) / det,
		Y: (pa*qc - qa*pc) / det,
	}
}

// ContactPoint returns where a0-a1 first meets b0-b1, walking from a0
// Handles collinear overlap, where IntersectionPoint is undefined
// Caller must gate with Intersects
func ContactPoint(a0, a1, b0, b1 Point) Point {
	pa, pb, _ := lineCoefficients(a0, a1)
	qa, qb, _ := lineCoefficients(b0, b1)
	if pa*qb-qa*pb != 0 {
		return IntersectionPoint(a0, a1, b0, b1)
	}

	// Overlap endpoints lie on both segments; take the one nearest a0
	best := a1
	bestDist := -1.0
	for _, p := range [...]Point{a0, a1, b0, b1} {
		if !OnSegment(a0, p, a1) || !OnSegment(b0, p, b1) {
			continue
		}
		if d := a0.DistanceSq(p); bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

// SegmentLength returns |b - a|
func SegmentLength(a, b Point) float64 {
	return a.Distance(b)
}

func lineCoefficients(p0, p1 Point) (a, b, c float64) {
	a = p1.Y - p0.Y
	b = p0.X - p1.X
	c = a*p0.X + b*p0.Y
	return a, b, c
}
