package search

import (
	"slices"
	"time"

	"github.com/lixenwraith/mars-lander/genetic/persistence"
	"github.com/lixenwraith/mars-lander/genetic/tracking"
	"github.com/lixenwraith/mars-lander/lander"
	"github.com/lixenwraith/mars-lander/physics"
	"github.com/lixenwraith/mars-lander/vmath"
)

// Record is a deep copy of one candidate's flight
type Record struct {
	Genome     lander.Genome
	Controls   []lander.Gene
	Path       []vmath.Point
	States     []physics.Lander
	Status     lander.Status
	Crash      vmath.Point
	Fitness    float64
	Generation int
}

// IsSolution reports whether the recorded flight landed safely
func (r *Record) IsSolution() bool {
	return r != nil && r.Status.Has(lander.Solution)
}

// Turns is the number of applied controls
func (r *Record) Turns() int {
	return len(r.Controls)
}

// Replay converts the record to its file form
func (r *Record) Replay(levelName string, seed uint64, initial physics.Lander) persistence.ReplayDTO {
	dto := persistence.ReplayDTO{
		Level:      levelName,
		Seed:       persistence.SeedFromUint(seed),
		Generation: r.Generation,
		Fitness:    r.Fitness,
		Solution:   r.IsSolution(),
		Initial:    stateDTO(initial),
		Turns:      make([]persistence.TurnDTO, len(r.States)),
	}
	if r.Status.Has(lander.Crashed) {
		dto.Crash = &persistence.PointDTO{X: r.Crash.X, Y: r.Crash.Y}
	}
	for i, s := range r.States {
		dto.Turns[i] = persistence.TurnDTO{
			Turn:       i,
			AngleDelta: r.Controls[i].Angle,
			PowerDelta: r.Controls[i].Power,
			State:      stateDTO(s),
		}
	}
	return dto
}

func stateDTO(s physics.Lander) persistence.StateDTO {
	return persistence.StateDTO{
		X:      s.Pos.X,
		Y:      s.Pos.Y,
		Angle:  s.Angle,
		Power:  s.Power,
		HSpeed: s.HSpeed,
		VSpeed: s.VSpeed,
		Fuel:   s.Fuel,
	}
}

// Result is the outcome of a finished search
type Result struct {
	// Solution is the best safe landing, nil if none was found
	Solution *Record
	// Best is the highest-scoring flight of any kind
	Best        *Record
	Generations int
	Elapsed     time.Duration
	Seed        uint64
	History     []tracking.Report
}

// newRecord snapshots c; states are rebuilt by re-simulating the genome
func (s *Search) newRecord(c *lander.Candidate, generation int) *Record {
	tr := &c.Trajectory
	return &Record{
		Genome:     c.Genome.Clone(),
		Controls:   slices.Clone(c.Genome[:tr.Turn]),
		Path:       slices.Clone(tr.Path),
		States:     lander.Trace(c.Genome, s.level.Initial, s.terrain, s.gravity),
		Status:     tr.Status,
		Crash:      tr.Crash,
		Fitness:    c.Fitness,
		Generation: generation,
	}
}
