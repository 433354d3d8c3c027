package lander

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lixenwraith/mars-lander/genetic/tracking"
	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/physics"
	"github.com/lixenwraith/mars-lander/terrain"
	"github.com/lixenwraith/mars-lander/vmath"
)

func testTerrain(t *testing.T) *terrain.Terrain {
	t.Helper()
	tr, err := terrain.New([]vmath.Point{
		vmath.Pt(0, 100),
		vmath.Pt(1000, 500),
		vmath.Pt(1500, 1500),
		vmath.Pt(3000, 1000),
		vmath.Pt(4000, 150),
		vmath.Pt(5500, 150),
		vmath.Pt(6999, 800),
	})
	if err != nil {
		t.Fatalf("unexpected terrain error: %v", err)
	}
	return tr
}

func constantGenome(turns int, g Gene) Genome {
	genome := make(Genome, turns)
	for i := range genome {
		genome[i] = g
	}
	return genome
}

func hoverGenome() Genome {
	genome := constantGenome(parameter.GAMaxTurns, Gene{})
	for i := range 3 {
		genome[i] = Gene{Angle: 0, Power: 1}
	}
	return genome
}

func fly(t *testing.T, tr *terrain.Terrain, genome Genome, initial physics.Lander) (*Candidate, tracking.MetricBundle) {
	t.Helper()
	c := NewCandidate(genome, initial)
	c.Simulate(tr, parameter.MarsGravity)
	metrics := NewEvaluator(tr, initial.Fuel).Evaluate(c)
	return c, metrics
}

func TestHoverLanding_Solution(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(4500, 250), Fuel: 500}

	c, metrics := fly(t, tr, hoverGenome(), initial)

	if !c.Trajectory.Status.Has(Crashed | Solution) {
		t.Fatalf("expected solution, got status %v", c.Trajectory.Status)
	}
	if c.Trajectory.CrashSegment != tr.Zone.Index {
		t.Errorf("expected crash on zone segment %d, got %d", tr.Zone.Index, c.Trajectory.CrashSegment)
	}
	if c.Trajectory.Crash.Distance(vmath.Pt(4500, 150)) > 1e-6 {
		t.Errorf("expected contact at (4500,150), got %+v", c.Trajectory.Crash)
	}
	if c.Fitness <= 200 || c.Fitness > 300 {
		t.Errorf("expected solution tier (200,300], got %v", c.Fitness)
	}

	expected := 200 + 100*c.Trajectory.State.Fuel/500
	if math.Abs(c.Fitness-expected) > 1e-9 {
		t.Errorf("expected fuel-ranked score %v, got %v", expected, c.Fitness)
	}
	if metrics[tracking.MetricSolution] != 1 || metrics[tracking.MetricFitness] != c.Fitness {
		t.Errorf("unexpected metrics %v", metrics)
	}
	if len(c.Trajectory.Path) != c.Trajectory.Turn+1 {
		t.Errorf("expected path of %d points, got %d", c.Trajectory.Turn+1, len(c.Trajectory.Path))
	}
}

func TestEscape_FloorFitness(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(6900, 2500), Fuel: 1000}

	c, metrics := fly(t, tr, constantGenome(parameter.GAMaxTurns, Gene{Angle: -15, Power: 1}), initial)

	if !c.Trajectory.Status.Has(OutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", c.Trajectory.Status)
	}
	if c.Trajectory.Status.Has(Crashed) {
		t.Errorf("expected no crash point for escape")
	}
	if c.Fitness != parameter.FitnessEscape {
		t.Errorf("expected floor fitness %v, got %v", parameter.FitnessEscape, c.Fitness)
	}
	if metrics[tracking.MetricEscaped] != 1 {
		t.Errorf("expected escaped metric set")
	}
}

func TestOffZoneCrash_DistanceScore(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(1200, 2000), Fuel: 0}

	c, metrics := fly(t, tr, constantGenome(parameter.GAMaxTurns, Gene{}), initial)

	if !c.Trajectory.Status.Has(Crashed) || c.IsSolution() {
		t.Fatalf("expected plain crash, got %v", c.Trajectory.Status)
	}
	if c.Trajectory.CrashSegment != 1 {
		t.Errorf("expected crash on segment 1, got %d", c.Trajectory.CrashSegment)
	}
	if c.Trajectory.State.Speed() > parameter.FitnessCrashSpeedLimit {
		t.Fatalf("test setup: impact speed %v above penalty limit", c.Trajectory.State.Speed())
	}

	dist := tr.DistanceToZone(c.Trajectory.Crash, c.Trajectory.CrashSegment)
	expected := 1 + 99*(1-dist/tr.Length)
	if math.Abs(c.Fitness-expected) > 1e-9 {
		t.Errorf("expected %v, got %v", expected, c.Fitness)
	}
	if metrics[tracking.MetricDistance] != dist {
		t.Errorf("expected distance metric %v, got %v", dist, metrics[tracking.MetricDistance])
	}
	if !c.Trajectory.Status.Has(FuelExhausted) {
		t.Errorf("expected fuel exhausted flag with empty tank")
	}
}

func TestZoneCrash_TooFast(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(4500, 2900), Fuel: 0}

	c, _ := fly(t, tr, constantGenome(parameter.GAMaxTurns, Gene{}), initial)

	if !c.Trajectory.Status.Has(Crashed) || c.IsSolution() {
		t.Fatalf("expected failed landing, got %v", c.Trajectory.Status)
	}
	if c.Trajectory.CrashSegment != tr.Zone.Index {
		t.Fatalf("expected zone crash, got segment %d", c.Trajectory.CrashSegment)
	}
	if !TierZone.Contains(c.Fitness) {
		t.Errorf("expected zone tier (100,200], got %v", c.Fitness)
	}

	excess := parameter.LandingMaxVSpeed - c.Trajectory.State.VSpeed
	expected := 100 + 50 + 50*(1-excess/(parameter.FitnessSpeedWorst+parameter.LandingMaxVSpeed))
	if math.Abs(c.Fitness-expected) > 1e-9 {
		t.Errorf("expected %v, got %v", expected, c.Fitness)
	}
}

func TestExpired_ScoredAgainstGroundBelow(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(4500, 2500), Fuel: 100}

	c, metrics := fly(t, tr, constantGenome(3, Gene{}), initial)

	if !c.Trajectory.Status.Has(Expired) || c.Alive() {
		t.Fatalf("expected expired, got %v", c.Trajectory.Status)
	}
	if c.Trajectory.Turn != 3 {
		t.Errorf("expected 3 turns flown, got %d", c.Trajectory.Turn)
	}
	if c.Fitness != parameter.FitnessCrashCeil {
		t.Errorf("expected top of crash tier over the zone, got %v", c.Fitness)
	}
	if metrics[tracking.MetricExpired] != 1 {
		t.Errorf("expected expired metric")
	}
}

func TestTierSeparation(t *testing.T) {
	tr := testTerrain(t)

	_, escape := fly(t, tr, constantGenome(parameter.GAMaxTurns, Gene{Angle: -15, Power: 1}), physics.Lander{Pos: vmath.Pt(6900, 2500), Fuel: 1000})
	_, miss := fly(t, tr, constantGenome(parameter.GAMaxTurns, Gene{}), physics.Lander{Pos: vmath.Pt(1200, 2000)})
	_, zone := fly(t, tr, constantGenome(parameter.GAMaxTurns, Gene{}), physics.Lander{Pos: vmath.Pt(4500, 2900)})
	_, landed := fly(t, tr, hoverGenome(), physics.Lander{Pos: vmath.Pt(4500, 250), Fuel: 500})

	scores := []float64{
		escape[tracking.MetricFitness],
		miss[tracking.MetricFitness],
		zone[tracking.MetricFitness],
		landed[tracking.MetricFitness],
	}
	for i := 1; i < len(scores); i++ {
		if scores[i] <= scores[i-1] {
			t.Errorf("expected strictly increasing tiers, got %v", scores)
		}
	}
}

func TestSolutionSoundness(t *testing.T) {
	tr := testTerrain(t)
	rng := rand.New(rand.NewPCG(11, 12))
	init := Initializer(parameter.GAMaxTurns, RandomGene)
	initial := physics.Lander{Pos: vmath.Pt(2500, 2700), Fuel: 550}

	for range 300 {
		c := NewCandidate(init(rng), initial)
		c.Simulate(tr, parameter.MarsGravity)
		if !c.IsSolution() {
			continue
		}
		s := c.Trajectory.State
		if c.Trajectory.CrashSegment != tr.Zone.Index || s.Angle != 0 ||
			s.VSpeed < parameter.LandingMaxVSpeed || math.Abs(s.HSpeed) > parameter.LandingMaxHSpeed {
			t.Fatalf("solution flag on unsafe landing %+v", s)
		}
	}
}

func TestEvaluate_EqualGenomesEqualScores(t *testing.T) {
	tr := testTerrain(t)
	rng := rand.New(rand.NewPCG(5, 6))
	genome := Initializer(parameter.GAMaxTurns, RandomGene)(rng)
	initial := physics.Lander{Pos: vmath.Pt(2500, 2700), Fuel: 550}

	a, _ := fly(t, tr, genome, initial)
	b, _ := fly(t, tr, genome.Clone(), initial)

	if a.Fitness != b.Fitness {
		t.Errorf("expected identical scores, got %v and %v", a.Fitness, b.Fitness)
	}
	if a.Fitness <= 0 || math.IsInf(a.Fitness, 0) || math.IsNaN(a.Fitness) {
		t.Errorf("expected positive finite fitness, got %v", a.Fitness)
	}
}

func TestReset_RebuildsTrajectory(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(4500, 250), Fuel: 500}
	c := NewCandidate(hoverGenome(), initial)
	c.Simulate(tr, parameter.MarsGravity)
	oldPath := c.Trajectory.Path

	c.Reset(initial)

	if !c.Alive() || c.Trajectory.Turn != 0 || len(c.Trajectory.Path) != 1 {
		t.Errorf("expected fresh trajectory, got %+v", c.Trajectory)
	}
	if c.Trajectory.CrashSegment != -1 {
		t.Errorf("expected no crash segment, got %d", c.Trajectory.CrashSegment)
	}
	if len(oldPath) < 2 {
		t.Errorf("expected earlier path untouched by reset")
	}
}

func TestTrace(t *testing.T) {
	tr := testTerrain(t)
	initial := physics.Lander{Pos: vmath.Pt(4500, 250), Fuel: 500}
	c := NewCandidate(hoverGenome(), initial)
	c.Simulate(tr, parameter.MarsGravity)

	states := Trace(c.Genome, initial, tr, parameter.MarsGravity)

	if len(states) != c.Trajectory.Turn {
		t.Fatalf("expected %d states, got %d", c.Trajectory.Turn, len(states))
	}
	for i, s := range states {
		if s.Pos != c.Trajectory.Path[i+1] {
			t.Errorf("turn %d: expected %v, got %v", i, c.Trajectory.Path[i+1], s.Pos)
		}
	}
}

func TestStatus_String(t *testing.T) {
	if s := (Crashed | Solution).String(); s != "crashed|solution" {
		t.Errorf("expected crashed|solution, got %s", s)
	}
	if s := Status(0).String(); s != "none" {
		t.Errorf("expected none, got %s", s)
	}
	if !(Alive | Elite).Has(Elite) || (Crashed).Terminal() != true {
		t.Errorf("unexpected flag helpers")
	}
}
