package lander

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/mars-lander/genetic"
)

// BlendCrossover mixes two parents gene by gene with a fresh weight per turn
// Both children are convex combinations, so they stay inside the gene ranges
type BlendCrossover struct{}

func (BlendCrossover) Combine(parents []genetic.Candidate[Genome, float64], rng *rand.Rand) []Genome {
	a, b := parents[0].Data, parents[1].Data
	n := min(len(a), len(b))

	c0 := make(Genome, n)
	c1 := make(Genome, n)
	for i := range n {
		r := rng.Float64()
		c0[i] = Gene{
			Angle: blend(r, a[i].Angle, b[i].Angle),
			Power: blend(r, a[i].Power, b[i].Power),
		}
		c1[i] = Gene{
			Angle: blend(1-r, a[i].Angle, b[i].Angle),
			Power: blend(1-r, a[i].Power, b[i].Power),
		}
	}
	return []Genome{c0, c1}
}

func blend(r float64, a, b int) int {
	return int(math.Round(r*float64(a) + (1-r)*float64(b)))
}

// ResampleMutation replaces whole genes with fresh samples
type ResampleMutation struct {
	Sampler GeneSampler
}

func (m ResampleMutation) Perturb(g *Genome, rate float64, rng *rand.Rand) {
	sampler := m.Sampler
	if sampler == nil {
		sampler = RandomGene
	}

	genome := *g
	for i := range genome {
		if rng.Float64() >= rate {
			continue
		}
		prev := Gene{}
		if i > 0 {
			prev = genome[i-1]
		}
		genome[i] = sampler(rng, prev)
	}
}
