package genetic

import (
	"errors"
	"math/rand/v2"
)

// --- Core Type Constraints ---

// Solution represents any type that can be used as a solution encoding
type Solution any

// Numeric constrains types to numeric values for fitness scores
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ErrInvalidFitness reports a pool whose scores cannot serve as selection weights
// Scores are required to be strictly positive and finite; seeing this is a broken invariant
var ErrInvalidFitness = errors.New("genetic: fitness sum is not positive and finite")

// --- Core Data Structures ---

// Candidate represents a potential solution with its evaluated quality score
// S is the solution type, F is the fitness/quality score type
type Candidate[S Solution, F Numeric] struct {
	// Data holds the encoded solution, treated as immutable once in a pool
	Data S
	// Score represents the quality/fitness of this solution (higher = better)
	Score F
	// Elite marks a verbatim copy carried over from the previous generation
	Elite bool
}

// Pool represents a collection of solution candidates
// This is the working set of solutions at any given iteration
type Pool[S Solution, F Numeric] struct {
	// Members contains all candidates in this pool
	Members []Candidate[S, F]
	// Generation tracks the iteration number this pool represents
	Generation int
	// Stats holds statistical information about this pool, valid after evaluation
	Stats PoolStats[F]
}

// PoolStats contains statistical information about a candidate pool
type PoolStats[F Numeric] struct {
	BestScore    F
	WorstScore   F
	AverageScore F
}

// --- Function Types for Flexibility ---

// InitializerFunc creates an initial solution candidate
type InitializerFunc[S Solution] func(rng *rand.Rand) S

// --- Core Operators as Interfaces ---

// Selector defines the selection operator for choosing candidates for reproduction
type Selector[S Solution, F Numeric] interface {
	// Select chooses size distinct candidates from the pool for reproduction
	Select(pool *Pool[S, F], size int, rng *rand.Rand) ([]Candidate[S, F], error)
}

// Combiner defines the recombination operator for creating new solutions
type Combiner[S Solution, F Numeric] interface {
	// Combine creates offspring from parent solutions
	// Returned solutions must not alias parent data
	Combine(parents []Candidate[S, F], rng *rand.Rand) []S
}

// Perturbator defines the mutation operator for introducing variation
type Perturbator[S Solution] interface {
	// Perturb modifies a solution in-place
	// The rate parameter is the per-element mutation probability (0-1)
	Perturb(solution *S, rate float64, rng *rand.Rand)
}
