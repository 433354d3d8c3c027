// Package search drives the generational loop under a wall-clock budget
//
// One goroutine owns a Search. Tick advances the flight one turn at a time for
// renderers; RunGeneration and Run complete whole generations with parallel
// evaluation. Budget and cancellation are only checked between generations.
package search

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/lixenwraith/mars-lander/clock"
	"github.com/lixenwraith/mars-lander/config"
	"github.com/lixenwraith/mars-lander/genetic"
	"github.com/lixenwraith/mars-lander/genetic/tracking"
	"github.com/lixenwraith/mars-lander/lander"
	"github.com/lixenwraith/mars-lander/level"
	"github.com/lixenwraith/mars-lander/terrain"
)

// State is the loop phase
type State int

const (
	StateSimulating State = iota
	StateEvaluating
	StateReproducing
	StateFrozen
)

func (s State) String() string {
	switch s {
	case StateSimulating:
		return "simulating"
	case StateEvaluating:
		return "evaluating"
	case StateReproducing:
		return "reproducing"
	case StateFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Option configures a Search
type Option func(*Search)

// WithLogger sets the structured logger, default is a no-op logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Search) { s.logger = logger }
}

// WithMeter sets the metrics meter, default is the global otel meter
func WithMeter(m metric.Meter) Option {
	return func(s *Search) { s.meter = m }
}

// WithClock sets the budget clock, default is the monotonic system clock
func WithClock(p clock.Provider) Option {
	return func(s *Search) { s.clock = p }
}

// WithReporter registers a callback invoked on the owner goroutine after each evaluated generation
func WithReporter(fn func(tracking.Report)) Option {
	return func(s *Search) { s.reporter = fn }
}

// Search is a time-budgeted genetic search over control sequences
type Search struct {
	level   *level.Level
	terrain *terrain.Terrain
	cfg     config.Config
	seed    uint64
	gravity float64

	engine    *genetic.Engine[lander.Genome, float64]
	evaluator *lander.Evaluator
	collector *tracking.StandardCollector

	pool       *genetic.Pool[lander.Genome, float64]
	candidates []*lander.Candidate
	outcomes   []tracking.MetricBundle
	bestIdx    int
	turn       int

	state    State
	err      error
	solution *Record
	best     *Record
	history  []tracking.Report

	clock    clock.Provider
	start    time.Time
	stopped  time.Time
	logger   zerolog.Logger
	meter    metric.Meter
	reporter func(tracking.Report)
	metrics  *instruments
}

// New validates cfg, seeds the first generation and starts the budget clock
func New(lvl *level.Level, cfg config.Config, opts ...Option) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t, err := lvl.Terrain()
	if err != nil {
		return nil, err
	}

	sampler, err := lander.SamplerFor(cfg.Population.Sampling)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	s := &Search{
		level:     lvl,
		terrain:   t,
		cfg:       cfg,
		gravity:   cfg.Physics.Gravity,
		evaluator: lander.NewEvaluator(t, lvl.Initial.Fuel),
		collector: tracking.NewStandardCollector(),
		bestIdx:   -1,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = clock.NewMonotonic()
	}
	if s.meter == nil {
		s.meter = meter()
	}

	s.metrics, err = newInstruments(s.meter, lvl.Name)
	if err != nil {
		return nil, err
	}

	// resolve a random seed up front so the run can be replayed
	s.seed = cfg.Search.Seed
	for s.seed == 0 {
		s.seed = rand.Uint64()
	}
	engineCfg := cfg.Engine()
	engineCfg.Seed = s.seed

	s.engine, err = genetic.NewEngine[lander.Genome, float64](
		lander.Initializer(cfg.Population.MaxTurns, sampler),
		&genetic.RouletteSelector[lander.Genome, float64]{},
		lander.BlendCrossover{},
		lander.ResampleMutation{Sampler: sampler},
		engineCfg,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalid, err)
	}

	s.pool = s.engine.Seed()
	s.beginGeneration()
	s.start = s.clock.Now()

	s.logger.Info().
		Str("level", lvl.Name).
		Uint64("seed", s.seed).
		Int("population", cfg.Population.Size).
		Int("turns", cfg.Population.MaxTurns).
		Dur("budget", cfg.Search.Budget).
		Msg("search started")

	return s, nil
}

// State returns the current loop phase
func (s *Search) State() State {
	return s.state
}

// Generation returns the index of the generation in flight
func (s *Search) Generation() int {
	return s.pool.Generation
}

// Seed returns the effective random seed
func (s *Search) Seed() uint64 {
	return s.seed
}

// Err returns the error that froze the search, if any
func (s *Search) Err() error {
	return s.err
}

// Record returns the best safe landing found so far, nil until one exists
func (s *Search) Record() *Record {
	return s.solution
}

// Best returns the best-scoring flight of any kind, nil before the first evaluation
func (s *Search) Best() *Record {
	return s.best
}

// History returns the per-generation reports collected so far
func (s *Search) History() []tracking.Report {
	return s.history
}

// Terrain returns the terrain being searched over
func (s *Search) Terrain() *terrain.Terrain {
	return s.terrain
}

// Level returns the level being searched
func (s *Search) Level() *level.Level {
	return s.level
}

// Elapsed is the budget clock time since start, fixed once frozen
func (s *Search) Elapsed() time.Duration {
	if s.state == StateFrozen {
		return s.stopped.Sub(s.start)
	}
	return clock.Since(s.clock, s.start)
}

// Result summarises the search so far
func (s *Search) Result() Result {
	return Result{
		Solution:    s.solution,
		Best:        s.best,
		Generations: len(s.history),
		Elapsed:     s.Elapsed(),
		Seed:        s.seed,
		History:     s.history,
	}
}
