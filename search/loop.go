package search

import (
	"context"
	"fmt"

	"github.com/lixenwraith/mars-lander/genetic"
	"github.com/lixenwraith/mars-lander/genetic/tracking"
	"github.com/lixenwraith/mars-lander/lander"
)

// Tick advances the loop by one step and returns the resulting state
// Simulating moves every live candidate one turn; once none are left the
// next tick scores the generation and the one after reproduces or freezes
func (s *Search) Tick() State {
	switch s.state {
	case StateSimulating:
		alive := 0
		for _, c := range s.candidates {
			if c.Alive() {
				c.Advance(s.terrain, s.gravity)
				if c.Alive() {
					alive++
				}
			}
		}
		s.turn++
		if alive == 0 {
			s.state = StateEvaluating
		}
	case StateEvaluating:
		s.evaluate()
	case StateReproducing:
		s.advance(context.Background())
	}
	return s.state
}

// RunGeneration completes the generation in flight and returns the resulting state
func (s *Search) RunGeneration() State {
	return s.runGeneration(context.Background())
}

func (s *Search) runGeneration(ctx context.Context) State {
	if s.state == StateSimulating || s.state == StateEvaluating {
		s.evaluate()
	}
	if s.state == StateReproducing {
		s.advance(ctx)
	}
	return s.state
}

// Run completes generations until the budget runs out or ctx is cancelled
// The returned error is non-nil only when reproduction failed
func (s *Search) Run(ctx context.Context) (Result, error) {
	for s.state != StateFrozen {
		s.runGeneration(ctx)
	}
	return s.Result(), s.err
}

// Stop freezes the loop at the current point
func (s *Search) Stop() {
	s.freeze("stopped")
}

// beginGeneration rebuilds a fresh trajectory for every genome in the pool
func (s *Search) beginGeneration() {
	members := s.pool.Members
	s.candidates = make([]*lander.Candidate, len(members))
	for i, m := range members {
		s.candidates[i] = lander.NewCandidate(m.Data, s.level.Initial)
		if m.Elite {
			s.candidates[i].Trajectory.Status |= lander.Elite
		}
	}
	s.outcomes = make([]tracking.MetricBundle, len(members))
	s.bestIdx = -1
	s.turn = 0
	s.state = StateSimulating
}

// evaluate finishes every flight and scores it, fanning out across candidates
// Each worker touches only its own candidate, outcome slot and pool member
func (s *Search) evaluate() {
	genetic.Evaluate(s.pool, s.cfg.Search.Parallelism, func(idx int, m *genetic.Candidate[lander.Genome, float64]) {
		c := s.candidates[idx]
		c.Simulate(s.terrain, s.gravity)
		s.outcomes[idx] = s.evaluator.Evaluate(c)
		m.Score = c.Fitness
	})
	s.pool.Stats = genetic.CalculateStats(s.pool.Members)

	s.collector.Reset()
	s.bestIdx = 0
	for i, c := range s.candidates {
		s.collector.Collect(s.outcomes[i])
		if c.Fitness > s.candidates[s.bestIdx].Fitness {
			s.bestIdx = i
		}
	}

	generation := s.pool.Generation
	leader := s.candidates[s.bestIdx]
	leader.Trajectory.Status |= lander.Best

	var rec *Record
	if s.best == nil || leader.Fitness > s.best.Fitness {
		rec = s.newRecord(leader, generation)
		s.best = rec
	}
	if leader.IsSolution() && (s.solution == nil || leader.Fitness > s.solution.Fitness) {
		if rec == nil {
			rec = s.newRecord(leader, generation)
		}
		s.solution = rec
		s.logger.Info().
			Int("gen", generation).
			Float64("fitness", leader.Fitness).
			Float64("fuel", leader.Trajectory.State.Fuel).
			Int("turns", leader.Trajectory.Turn).
			Msg("new best solution")
	}

	report := tracking.NewReport(generation, s.collector.Finalize(), s.best.Fitness, s.Elapsed())
	s.history = append(s.history, report)
	s.metrics.generation(context.Background(), len(s.candidates), report.Solutions, s.best.Fitness)
	s.logger.Debug().EmbedObject(report).Msg("generation evaluated")
	if s.reporter != nil {
		s.reporter(report)
	}

	s.state = StateReproducing
}

// advance checks budget and cancellation, then breeds the next generation
func (s *Search) advance(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		s.freeze("cancelled")
		return
	}
	if s.Elapsed() >= s.cfg.Search.Budget {
		s.freeze("budget exhausted")
		return
	}

	next, err := s.engine.Reproduce(s.pool)
	if err != nil {
		s.err = fmt.Errorf("reproduce: %w", err)
		s.logger.Error().Err(err).Int("gen", s.pool.Generation).Msg("reproduction failed")
		s.freeze("error")
		return
	}

	s.pool = next
	s.beginGeneration()
}

func (s *Search) freeze(reason string) {
	if s.state == StateFrozen {
		return
	}
	s.stopped = s.clock.Now()
	s.state = StateFrozen

	event := s.logger.Info().
		Str("reason", reason).
		Int("generations", len(s.history)).
		Dur("elapsed", s.stopped.Sub(s.start))
	if s.solution != nil {
		event = event.Float64("fitness", s.solution.Fitness).Int("found_gen", s.solution.Generation)
	}
	event.Msg("search frozen")
}
