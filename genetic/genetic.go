// Package genetic provides a generic genetic algorithm framework
// 1. Has zero knowledge of lander-specific types
// 2. Every stochastic operator draws from an explicitly passed *rand.Rand
// 3. Evaluation is a fan-out over independent candidates, reproduction stays on the caller goroutine
package genetic

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/sourcegraph/conc/pool"
)

// --- Concrete Operator Implementations ---

// RouletteSelector implements fitness-proportionate selection
// Candidates are selected with probability proportional to their fitness
type RouletteSelector[S Solution, F Numeric] struct{}

// Select implements roulette wheel selection without repeats inside one draw
// Each pick is redrawn until its index differs from every earlier pick
func (rs *RouletteSelector[S, F]) Select(p *Pool[S, F], size int, rng *rand.Rand) ([]Candidate[S, F], error) {
	cumulative, err := CumulativeProbabilities(p)
	if err != nil {
		return nil, err
	}
	size = min(size, weighted(p))

	selected := make([]Candidate[S, F], 0, size)
	picked := make([]int, 0, size)

	for len(selected) < size {
		idx := Spin(cumulative, rng.Float64())
		if containsIndex(picked, idx) {
			continue
		}
		picked = append(picked, idx)
		selected = append(selected, p.Members[idx])
	}

	return selected, nil
}

// Pair draws two distinct parents through any selector
// A pool with a single weighted member cannot supply a pair
func Pair[S Solution, F Numeric](sel Selector[S, F], p *Pool[S, F], rng *rand.Rand) (Candidate[S, F], Candidate[S, F], error) {
	parents, err := sel.Select(p, 2, rng)
	if err != nil {
		return Candidate[S, F]{}, Candidate[S, F]{}, err
	}
	if len(parents) < 2 {
		return Candidate[S, F]{}, Candidate[S, F]{}, ErrInvalidFitness
	}
	return parents[0], parents[1], nil
}

// CumulativeProbabilities normalises scores by their sum into a running total
// The last entry is 1 up to rounding
func CumulativeProbabilities[S Solution, F Numeric](p *Pool[S, F]) ([]float64, error) {
	var sum float64
	for _, c := range p.Members {
		sum += float64(c.Score)
	}
	if len(p.Members) == 0 || sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, ErrInvalidFitness
	}

	cumulative := make([]float64, len(p.Members))
	running := 0.0
	for i, c := range p.Members {
		running += float64(c.Score) / sum
		cumulative[i] = running
	}
	return cumulative, nil
}

// Spin returns the first index whose cumulative probability exceeds threshold
// Rounding can leave the total just under 1; the last weighted slot absorbs it
func Spin(cumulative []float64, threshold float64) int {
	for i, cum := range cumulative {
		if cum > threshold {
			return i
		}
	}
	last := len(cumulative) - 1
	for last > 0 && cumulative[last] == cumulative[last-1] {
		last--
	}
	return last
}

// weighted counts members able to win a spin
func weighted[S Solution, F Numeric](p *Pool[S, F]) int {
	n := 0
	for _, c := range p.Members {
		if c.Score > 0 {
			n++
		}
	}
	return n
}

func containsIndex(indices []int, idx int) bool {
	for _, i := range indices {
		if i == idx {
			return true
		}
	}
	return false
}

// SelectElite returns the k best candidates, highest score first
// Ties keep pool order
func SelectElite[S Solution, F Numeric](p *Pool[S, F], k int) []Candidate[S, F] {
	if k <= 0 {
		return []Candidate[S, F]{}
	}
	k = min(k, len(p.Members))

	sorted := make([]Candidate[S, F], len(p.Members))
	copy(sorted, p.Members)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	elite := sorted[:k]
	for i := range elite {
		elite[i].Elite = true
	}
	return elite
}

// Evaluate runs fn over every member, fanning out to at most parallelism goroutines
// fn must only touch the member it is given
func Evaluate[S Solution, F Numeric](p *Pool[S, F], parallelism int, fn func(idx int, c *Candidate[S, F])) {
	if parallelism <= 1 {
		for i := range p.Members {
			fn(i, &p.Members[i])
		}
		return
	}

	wp := pool.New().WithMaxGoroutines(parallelism)
	for i := range p.Members {
		wp.Go(func() {
			fn(i, &p.Members[i])
		})
	}
	wp.Wait()
}

// CalculateStats computes statistical measures for a candidate pool
func CalculateStats[S Solution, F Numeric](candidates []Candidate[S, F]) PoolStats[F] {
	if len(candidates) == 0 {
		return PoolStats[F]{}
	}

	stats := PoolStats[F]{
		BestScore:  candidates[0].Score,
		WorstScore: candidates[0].Score,
	}

	total := F(0)
	for _, c := range candidates {
		if c.Score > stats.BestScore {
			stats.BestScore = c.Score
		}
		if c.Score < stats.WorstScore {
			stats.WorstScore = c.Score
		}
		total += c.Score
	}

	stats.AverageScore = total / F(len(candidates))
	return stats
}
