package search

import (
	"time"

	"github.com/lixenwraith/mars-lander/genetic"
	"github.com/lixenwraith/mars-lander/lander"
	"github.com/lixenwraith/mars-lander/vmath"
)

// CandidateView is the renderer's read-only view of one candidate
// Path aliases the live trajectory; it is never mutated in place, only appended to
type CandidateView struct {
	Pos     vmath.Point
	Angle   float64
	Power   float64
	Fuel    float64
	Path    []vmath.Point
	Status  lander.Status
	Fitness float64
}

// Frame is a snapshot of the loop for one tick
type Frame struct {
	Generation int
	Turn       int
	State      State
	Candidates []CandidateView
	Stats      genetic.PoolStats[float64]
	Solution   *Record
	Best       *Record
	Elapsed    time.Duration
	Budget     time.Duration
}

// Frame snapshots the generation in flight
func (s *Search) Frame() Frame {
	views := make([]CandidateView, len(s.candidates))
	for i, c := range s.candidates {
		tr := &c.Trajectory
		views[i] = CandidateView{
			Pos:     tr.State.Pos,
			Angle:   tr.State.Angle,
			Power:   tr.State.Power,
			Fuel:    tr.State.Fuel,
			Path:    tr.Path[:len(tr.Path):len(tr.Path)],
			Status:  tr.Status,
			Fitness: c.Fitness,
		}
	}

	return Frame{
		Generation: s.pool.Generation,
		Turn:       s.turn,
		State:      s.state,
		Candidates: views,
		Stats:      s.pool.Stats,
		Solution:   s.solution,
		Best:       s.best,
		Elapsed:    s.Elapsed(),
		Budget:     s.cfg.Search.Budget,
	}
}
