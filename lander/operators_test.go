package lander

import (
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/mars-lander/genetic"
	"github.com/lixenwraith/mars-lander/parameter"
)

func inRange(g Gene) bool {
	return g.Angle >= -parameter.MaxAngleStep && g.Angle <= parameter.MaxAngleStep &&
		g.Power >= -parameter.MaxPowerStep && g.Power <= parameter.MaxPowerStep
}

func TestInitializer(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	for _, mode := range []string{parameter.GASamplingIndependent, parameter.GASamplingWalk} {
		sampler, err := SamplerFor(mode)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", mode, err)
		}
		g := Initializer(40, sampler)(rng)
		if len(g) != 40 {
			t.Errorf("%s: expected 40 genes, got %d", mode, len(g))
		}
		for i, gene := range g {
			if !inRange(gene) {
				t.Errorf("%s: gene %d out of range: %+v", mode, i, gene)
			}
		}
	}

	if _, err := SamplerFor("gaussian"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestWalkGene_BoundedStep(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 2))
	prev := Gene{}
	for range 1000 {
		next := WalkGene(rng, prev)
		if d := next.Angle - prev.Angle; d < -5 || d > 5 {
			t.Fatalf("expected angle step within 5, got %d", d)
		}
		if !inRange(next) {
			t.Fatalf("gene out of range: %+v", next)
		}
		prev = next
	}
}

func TestBlendCrossover(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	a := constantGenome(50, Gene{Angle: 15, Power: 1})
	b := constantGenome(50, Gene{Angle: -15, Power: -1})
	parents := []genetic.Candidate[Genome, float64]{{Data: a}, {Data: b}}

	children := BlendCrossover{}.Combine(parents, rng)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}

	for i := range a {
		c0, c1 := children[0][i], children[1][i]
		if !inRange(c0) || !inRange(c1) {
			t.Fatalf("gene %d out of range: %+v %+v", i, c0, c1)
		}
		// complementary weights keep the pair centred on the parents
		if sum := c0.Angle + c1.Angle; sum < -1 || sum > 1 {
			t.Errorf("gene %d: expected mirrored angles, got %d and %d", i, c0.Angle, c1.Angle)
		}
	}

	children[0][0].Angle = 0
	if a[0].Angle != 15 {
		t.Errorf("expected children not to alias parents")
	}
}

func TestBlendCrossover_IdenticalParents(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 4))
	g := Initializer(30, RandomGene)(rng)
	parents := []genetic.Candidate[Genome, float64]{{Data: g}, {Data: g.Clone()}}

	children := BlendCrossover{}.Combine(parents, rng)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	for _, child := range children {
		for i := range g {
			if child[i] != g[i] {
				t.Fatalf("gene %d: expected %+v, got %+v", i, g[i], child[i])
			}
		}
	}
}

func TestResampleMutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	original := constantGenome(200, Gene{Angle: 99, Power: 99})

	g := original.Clone()
	ResampleMutation{}.Perturb(&g, 0, rng)
	for i := range g {
		if g[i] != original[i] {
			t.Fatalf("expected no change at rate 0, gene %d", i)
		}
	}

	ResampleMutation{Sampler: RandomGene}.Perturb(&g, 1, rng)
	for i := range g {
		if !inRange(g[i]) {
			t.Fatalf("expected every gene resampled at rate 1, gene %d is %+v", i, g[i])
		}
	}
}
