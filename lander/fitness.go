package lander

import (
	"math"

	"github.com/lixenwraith/mars-lander/genetic/fitness"
	"github.com/lixenwraith/mars-lander/genetic/tracking"
	"github.com/lixenwraith/mars-lander/parameter"
	"github.com/lixenwraith/mars-lander/terrain"
)

// Score bands, stacked so every solution beats every zone crash beats every miss
var (
	TierCrash    = fitness.Tier{Floor: parameter.FitnessCrashFloor, Ceil: parameter.FitnessCrashCeil}
	TierZone     = fitness.Tier{Floor: parameter.FitnessZoneFloor, Ceil: parameter.FitnessZoneCeil}
	TierSolution = fitness.Tier{Floor: parameter.FitnessSolutionFloor, Ceil: parameter.FitnessSolutionCeil}
)

// Evaluator scores terminated candidates against one terrain
// Safe for concurrent use once built
type Evaluator struct {
	terrain     *terrain.Terrain
	initialFuel float64
	touchdown   *fitness.WeightedAggregator
}

// NewEvaluator creates an evaluator for the given terrain and starting fuel
func NewEvaluator(t *terrain.Terrain, initialFuel float64) *Evaluator {
	return &Evaluator{
		terrain:     t,
		initialFuel: initialFuel,
		touchdown: &fitness.WeightedAggregator{
			Weights: map[string]float64{
				tracking.MetricHSpeedExcess: 0.5,
				tracking.MetricVSpeedExcess: 0.5,
			},
			Normalizers: map[string]fitness.NormalizeFunc{
				tracking.MetricHSpeedExcess: fitness.NormalizeDecay(parameter.FitnessSpeedWorst - parameter.LandingMaxHSpeed),
				tracking.MetricVSpeedExcess: fitness.NormalizeDecay(parameter.FitnessSpeedWorst + parameter.LandingMaxVSpeed),
			},
		},
	}
}

// Evaluate scores c, stores the score on it and returns its outcome metrics
// The returned bundle always carries MetricFitness
func (e *Evaluator) Evaluate(c *Candidate) tracking.MetricBundle {
	tr := &c.Trajectory
	metrics := e.outcome(c)

	var score float64
	switch {
	case tr.Status.Has(OutOfBounds):
		score = parameter.FitnessEscape

	case tr.Status.Has(Solution):
		share := 1.0
		if e.initialFuel > 0 {
			share = tr.State.Fuel / e.initialFuel
		}
		score = TierSolution.Lerp(share)

	case tr.Status.Has(Crashed) && tr.CrashSegment == e.terrain.Zone.Index:
		score = TierZone.Lerp(e.touchdown.Calculate(metrics) / e.touchdown.TotalWeight())

	default:
		// off-zone crash, or expired in the air scored against the ground below
		dist := e.terrain.Length
		if tr.Status.Has(Crashed) {
			dist = e.terrain.DistanceToZone(tr.Crash, tr.CrashSegment)
		} else if below, ok := e.terrain.SurfaceAt(tr.State.Pos.X); ok {
			dist = e.terrain.DistanceToZone(below.Point, below.Segment)
		}
		metrics[tracking.MetricDistance] = dist
		score = TierCrash.Score(e.missOffset(dist, tr.State.Speed()))
	}

	c.Fitness = score
	metrics[tracking.MetricFitness] = score
	return metrics
}

// missOffset maps distance to the zone onto the crash band, minus a speed penalty
func (e *Evaluator) missOffset(dist, speed float64) float64 {
	closeness := 1.0
	if e.terrain.Length > 0 {
		closeness = 1 - math.Min(dist/e.terrain.Length, 1)
	}
	offset := parameter.FitnessEscape + (parameter.FitnessCrashCeil-parameter.FitnessEscape)*closeness
	if speed > parameter.FitnessCrashSpeedLimit {
		offset -= parameter.FitnessCrashSpeedPenalty * (speed - parameter.FitnessCrashSpeedLimit)
	}
	return offset
}

func (e *Evaluator) outcome(c *Candidate) tracking.MetricBundle {
	tr := &c.Trajectory
	return tracking.MetricBundle{
		tracking.MetricFuel:         tr.State.Fuel,
		tracking.MetricSpeed:        tr.State.Speed(),
		tracking.MetricHSpeedExcess: math.Max(math.Abs(tr.State.HSpeed)-parameter.LandingMaxHSpeed, 0),
		tracking.MetricVSpeedExcess: math.Max(parameter.LandingMaxVSpeed-tr.State.VSpeed, 0),
		tracking.MetricTurns:        float64(tr.Turn),
		tracking.MetricCrashed:      tracking.Flag(tr.Status.Has(Crashed)),
		tracking.MetricEscaped:      tracking.Flag(tr.Status.Has(OutOfBounds)),
		tracking.MetricExpired:      tracking.Flag(tr.Status.Has(Expired)),
		tracking.MetricSolution:     tracking.Flag(tr.Status.Has(Solution)),
	}
}
