package lander

import (
	"math"

	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/physics"
	"github.com/lixenwraith/mars-lander/terrain"
	"github.com/lixenwraith/mars-lander/vmath"
)

// Trajectory is the mutable simulation state rebuilt every generation
type Trajectory struct {
	State  physics.Lander
	Path   []vmath.Point
	Status Status
	Turn   int

	// Crash and CrashSegment are valid only with Crashed set
	Crash        vmath.Point
	CrashSegment int
}

// Candidate pairs an immutable genome with its trajectory and score
type Candidate struct {
	Genome     Genome
	Trajectory Trajectory
	Fitness    float64
}

// NewCandidate creates a candidate ready to fly from initial
func NewCandidate(genome Genome, initial physics.Lander) *Candidate {
	c := &Candidate{Genome: genome}
	c.Reset(initial)
	return c
}

// Reset discards the trajectory and restarts from initial
// The path is freshly allocated so earlier snapshots stay valid
func (c *Candidate) Reset(initial physics.Lander) {
	path := make([]vmath.Point, 1, len(c.Genome)+1)
	path[0] = initial.Pos
	c.Trajectory = Trajectory{
		State:        initial,
		Path:         path,
		Status:       Alive,
		CrashSegment: -1,
	}
	if initial.Fuel <= 0 {
		c.Trajectory.Status |= FuelExhausted
	}
	c.Fitness = 0
}

// Alive reports whether the candidate is still flying
func (c *Candidate) Alive() bool {
	return c.Trajectory.Status&Alive != 0
}

// Advance applies the next gene and resolves termination
// Crossing the terrain takes precedence over leaving the map on the same turn
func (c *Candidate) Advance(t *terrain.Terrain, gravity float64) Status {
	tr := &c.Trajectory
	if tr.Status.Terminal() {
		return tr.Status
	}
	if tr.Turn >= len(c.Genome) {
		tr.Status = tr.Status&^Alive | Expired
		return tr.Status
	}

	prev := tr.State.Pos
	gene := c.Genome[tr.Turn]
	physics.Step(&tr.State, float64(gene.Angle), float64(gene.Power), gravity)
	tr.Turn++
	tr.Path = append(tr.Path, tr.State.Pos)

	if tr.State.Fuel <= 0 {
		tr.Status |= FuelExhausted
	}

	if contact, ok := t.Crossing(prev, tr.State.Pos); ok {
		tr.Status = tr.Status&^Alive | Crashed
		tr.Crash = contact.Point
		tr.CrashSegment = contact.Segment
		if IsSolution(contact.Segment, t.Zone.Index, &tr.State) {
			tr.Status |= Solution
		}
		return tr.Status
	}

	if !terrain.InBounds(tr.State.Pos) {
		tr.Status = tr.Status&^Alive | OutOfBounds
		return tr.Status
	}

	if tr.Turn >= len(c.Genome) {
		tr.Status = tr.Status&^Alive | Expired
	}
	return tr.Status
}

// Simulate advances until the trajectory terminates
func (c *Candidate) Simulate(t *terrain.Terrain, gravity float64) Status {
	for c.Alive() {
		c.Advance(t, gravity)
	}
	return c.Trajectory.Status
}

// IsSolution reports whether the candidate touched down safely
func (c *Candidate) IsSolution() bool {
	return c.Trajectory.Status.Has(Solution)
}

// IsSolution is the landing predicate for a crash on segment with final state l
func IsSolution(segment, zone int, l *physics.Lander) bool {
	return segment == zone &&
		l.Angle == 0 &&
		l.VSpeed >= parameter.LandingMaxVSpeed &&
		math.Abs(l.HSpeed) <= parameter.LandingMaxHSpeed
}

// Trace re-simulates genome and returns the state after every applied turn
// Used to recover full per-turn state for a recorded best candidate
func Trace(genome Genome, initial physics.Lander, t *terrain.Terrain, gravity float64) []physics.Lander {
	c := NewCandidate(genome, initial)
	states := make([]physics.Lander, 0, len(genome))
	for c.Alive() && c.Trajectory.Turn < len(genome) {
		c.Advance(t, gravity)
		states = append(states, c.Trajectory.State)
	}
	return states
}
