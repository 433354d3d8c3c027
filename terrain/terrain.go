// Package terrain models the lunar surface polyline and its landing zone
package terrain

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/vmath"
)

var (
	ErrTooFewPoints         = errors.New("terrain needs at least 2 points")
	ErrNoLandingZone        = errors.New("terrain has no flat landing zone")
	ErrMultipleLandingZones = errors.New("terrain has more than one flat landing zone")
)

// LandingZone is the single flat segment where touchdown can succeed
type LandingZone struct {
	Index      int // Segment index, points Index and Index+1
	XMin, XMax float64
	Y          float64
}

// Contact is a point on a terrain segment
type Contact struct {
	Segment int
	Point   vmath.Point
}

// Terrain is an ordered polyline with exactly one flat segment
type Terrain struct {
	Points []vmath.Point
	Zone   LandingZone
	Length float64 // Total arc length

	// cumulative[i] is the arc length from Points[0] to Points[i]
	cumulative []float64
}

// New validates the polyline and locates its landing zone
func New(points []vmath.Point) (*Terrain, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}

	t := &Terrain{
		Points:     append([]vmath.Point(nil), points...),
		cumulative: make([]float64, len(points)),
	}

	zones := 0
	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		if a.Y == b.Y && a.X != b.X {
			zones++
			t.Zone = LandingZone{
				Index: i,
				XMin:  min(a.X, b.X),
				XMax:  max(a.X, b.X),
				Y:     a.Y,
			}
		}
		t.cumulative[i+1] = t.cumulative[i] + vmath.SegmentLength(a, b)
	}
	t.Length = t.cumulative[len(points)-1]

	switch {
	case zones == 0:
		return nil, ErrNoLandingZone
	case zones > 1:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleLandingZones, zones)
	}

	return t, nil
}

// Segments returns the number of segments in the polyline
func (t *Terrain) Segments() int {
	return len(t.Points) - 1
}

// Segment returns the endpoints of segment i
func (t *Terrain) Segment(i int) (vmath.Point, vmath.Point) {
	return t.Points[i], t.Points[i+1]
}

// Crossing returns the first segment, in terrain order, crossed by the move from -> to
// Linear scan; terrain vertex counts are small
func (t *Terrain) Crossing(from, to vmath.Point) (Contact, bool) {
	for i := 0; i < len(t.Points)-1; i++ {
		a, b := t.Points[i], t.Points[i+1]
		if vmath.Intersects(from, to, a, b) {
			return Contact{Segment: i, Point: vmath.ContactPoint(from, to, a, b)}, true
		}
	}
	return Contact{}, false
}

// SurfaceAt returns the terrain point vertically aligned with x
func (t *Terrain) SurfaceAt(x float64) (Contact, bool) {
	for i := 0; i < len(t.Points)-1; i++ {
		a, b := t.Points[i], t.Points[i+1]
		lo, hi := min(a.X, b.X), max(a.X, b.X)
		if x < lo || x > hi || a.X == b.X {
			continue
		}
		y := vmath.Scale(x, a.X, b.X, a.Y, b.Y)
		return Contact{Segment: i, Point: vmath.Pt(x, y)}, true
	}
	return Contact{}, false
}

// DistanceToZone walks the polyline from p, lying on segment, to the nearer zone edge
// Returns 0 on the zone itself
func (t *Terrain) DistanceToZone(p vmath.Point, segment int) float64 {
	zone := t.Zone.Index
	if segment == zone {
		return 0
	}

	arc := t.cumulative[segment] + t.Points[segment].Distance(p)
	if segment < zone {
		return max(t.cumulative[zone]-arc, 0)
	}
	return max(arc-t.cumulative[zone+1], 0)
}

// InBounds reports whether p lies inside the map
func InBounds(p vmath.Point) bool {
	return p.X >= 0 && p.X < parameter.MapWidth && p.Y >= 0 && p.Y < parameter.MapHeight
}
