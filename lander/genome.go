// Package lander binds the generic genetic engine to the landing problem
// A genome is a fixed-length list of per-turn control deltas; simulating it
// against the terrain produces a trajectory that the evaluator scores
package lander

import (
	"fmt"
	"math/rand/v2"

	"github.com/lixenwraith/mars-lander/genetic"
	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/vmath"
)

// Gene is the control requested for one turn
// Angle is a rotation delta in [-15,15] degrees, Power a throttle delta in {-1,0,1}
type Gene struct {
	Angle int
	Power int
}

// Genome is the full control sequence, one gene per turn
type Genome []Gene

// Clone returns an independent copy
func (g Genome) Clone() Genome {
	out := make(Genome, len(g))
	copy(out, g)
	return out
}

// GeneSampler draws a gene; prev is the gene of the preceding turn (zero for turn 0)
type GeneSampler func(rng *rand.Rand, prev Gene) Gene

// RandomGene samples angle and power deltas independently and uniformly
func RandomGene(rng *rand.Rand, _ Gene) Gene {
	return Gene{
		Angle: rng.IntN(2*parameter.MaxAngleStep+1) - parameter.MaxAngleStep,
		Power: rng.IntN(2*parameter.MaxPowerStep+1) - parameter.MaxPowerStep,
	}
}

// WalkGene perturbs the previous gene by a small bounded step
// Consecutive turns stay correlated, giving smoother initial trajectories
func WalkGene(rng *rand.Rand, prev Gene) Gene {
	angle := prev.Angle + rng.IntN(11) - 5
	power := prev.Power + rng.IntN(3) - 1
	return Gene{
		Angle: int(vmath.Clamp(float64(angle), -parameter.MaxAngleStep, parameter.MaxAngleStep)),
		Power: int(vmath.Clamp(float64(power), -parameter.MaxPowerStep, parameter.MaxPowerStep)),
	}
}

// SamplerFor resolves a sampling mode name
func SamplerFor(mode string) (GeneSampler, error) {
	switch mode {
	case "", parameter.GASamplingIndependent:
		return RandomGene, nil
	case parameter.GASamplingWalk:
		return WalkGene, nil
	default:
		return nil, fmt.Errorf("unknown sampling mode %q", mode)
	}
}

// Initializer builds genomes of the given length with sampler
func Initializer(turns int, sampler GeneSampler) genetic.InitializerFunc[Genome] {
	return func(rng *rand.Rand) Genome {
		g := make(Genome, turns)
		prev := Gene{}
		for i := range g {
			g[i] = sampler(rng, prev)
			prev = g[i]
		}
		return g
	}
}
