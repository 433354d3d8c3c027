package genetic

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/mars-lander/parameter"
)

// --- Algorithm Engine ---

// Engine owns the reproduction operators and the random source
// Evaluation is driven by the caller between Seed/Reproduce calls
type Engine[S Solution, F Numeric] struct {
	initializer InitializerFunc[S]
	selector    Selector[S, F]
	combiner    Combiner[S, F]
	perturbator Perturbator[S]

	config EngineConfig
	rng    *rand.Rand
}

// EngineConfig holds configuration parameters for the algorithm
type EngineConfig struct {
	// PoolSize is the number of candidates maintained in each generation
	PoolSize int
	// ElitePercentage is the fraction of best candidates cloned unchanged (0-1)
	ElitePercentage float64
	// MutationRate is the per-gene probability of perturbation (0-1)
	MutationRate float64
	// Parallelism controls the number of concurrent evaluations
	Parallelism int
	// Seed for random number generation (0 for random seed)
	Seed uint64
}

// DefaultConfig returns a reasonable default configuration.
func DefaultConfig() EngineConfig {
	return EngineConfig{
		PoolSize:        parameter.GAPoolSize,
		ElitePercentage: parameter.GAElitePercentage,
		MutationRate:    parameter.GAMutationRate,
		Parallelism:     parameter.GAParallelism,
		Seed:            0,
	}
}

// EliteCount is ceil(PoolSize * ElitePercentage), capped at PoolSize
func (c EngineConfig) EliteCount() int {
	k := int(math.Ceil(float64(c.PoolSize) * c.ElitePercentage))
	return max(0, min(k, c.PoolSize))
}

// Validate checks the configuration can drive reproduction
func (c EngineConfig) Validate() error {
	var errs []error
	if c.PoolSize < 2 {
		errs = append(errs, fmt.Errorf("pool size %d: need at least 2 for distinct parents", c.PoolSize))
	}
	if c.ElitePercentage < 0 || c.ElitePercentage > 1 {
		errs = append(errs, fmt.Errorf("elite percentage %v outside [0,1]", c.ElitePercentage))
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		errs = append(errs, fmt.Errorf("mutation rate %v outside [0,1]", c.MutationRate))
	}
	return errors.Join(errs...)
}

// NewRand builds the PCG source used by the engine, random when seed is 0
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// NewEngine creates a new genetic algorithm engine with the specified operators
func NewEngine[S Solution, F Numeric](
	initializer InitializerFunc[S],
	selector Selector[S, F],
	combiner Combiner[S, F],
	perturbator Perturbator[S],
	config EngineConfig,
) (*Engine[S, F], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine[S, F]{
		initializer: initializer,
		selector:    selector,
		combiner:    combiner,
		perturbator: perturbator,
		config:      config,
		rng:         NewRand(config.Seed),
	}, nil
}

// Config returns the engine configuration
func (e *Engine[S, F]) Config() EngineConfig {
	return e.config
}

// Seed creates the initial population of unevaluated candidates
func (e *Engine[S, F]) Seed() *Pool[S, F] {
	candidates := make([]Candidate[S, F], e.config.PoolSize)
	for i := range candidates {
		candidates[i] = Candidate[S, F]{Data: e.initializer(e.rng)}
	}

	return &Pool[S, F]{
		Members:    candidates,
		Generation: 0,
	}
}

// Reproduce builds the next generation from an evaluated pool
// Offspring fill the pool pairwise, then elites overwrite the leading slots
func (e *Engine[S, F]) Reproduce(current *Pool[S, F]) (*Pool[S, F], error) {
	size := e.config.PoolSize
	nextGen := make([]Candidate[S, F], 0, size)

	for len(nextGen) < size {
		a, b, err := Pair(e.selector, current, e.rng)
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", current.Generation, err)
		}

		offspring := e.combiner.Combine([]Candidate[S, F]{a, b}, e.rng)
		for i := range offspring {
			e.perturbator.Perturb(&offspring[i], e.config.MutationRate, e.rng)
			nextGen = append(nextGen, Candidate[S, F]{Data: offspring[i]})
			if len(nextGen) >= size {
				break
			}
		}
	}

	elite := SelectElite(current, e.config.EliteCount())
	copy(nextGen, elite)

	return &Pool[S, F]{
		Members:    nextGen,
		Generation: current.Generation + 1,
	}, nil
}
