package fitness

import (
	"testing"

	"github.com/lixenwraith/mars-lander/genetic/tracking"
)

func TestWeightedAggregator_Calculate(t *testing.T) {
	agg := &WeightedAggregator{
		Weights: map[string]float64{
			"hspeed": 0.5,
			"vspeed": 0.5,
		},
	}

	metrics := tracking.MetricBundle{
		"hspeed": 0.8,
		"vspeed": 0.6,
	}

	fitness := agg.Calculate(metrics)
	expected := 0.5*0.6 + 0.5*0.8

	if fitness != expected {
		t.Errorf("expected %v, got %v", expected, fitness)
	}
}

func TestWeightedAggregator_WithNormalizers(t *testing.T) {
	agg := &WeightedAggregator{
		Weights: map[string]float64{
			tracking.MetricFuel: 1.0,
		},
		Normalizers: map[string]NormalizeFunc{
			tracking.MetricFuel: NormalizeCap(100),
		},
	}

	metrics := tracking.MetricBundle{
		tracking.MetricFuel: 50,
	}

	if fitness := agg.Calculate(metrics); fitness != 0.5 {
		t.Errorf("expected 0.5, got %v", fitness)
	}

	metrics[tracking.MetricFuel] = 150
	if fitness := agg.Calculate(metrics); fitness != 1.0 {
		t.Errorf("expected 1.0 (capped), got %v", fitness)
	}
}

func TestWeightedAggregator_MissingMetric(t *testing.T) {
	agg := &WeightedAggregator{
		Weights: map[string]float64{"a": 1, "b": 1},
	}
	if fitness := agg.Calculate(tracking.MetricBundle{"a": 0.25}); fitness != 0.25 {
		t.Errorf("expected 0.25, got %v", fitness)
	}
	if total := agg.TotalWeight(); total != 2 {
		t.Errorf("expected total weight 2, got %v", total)
	}
}

func TestWeightedAggregator_Deterministic(t *testing.T) {
	agg := &WeightedAggregator{
		Weights: map[string]float64{"a": 0.1, "b": 0.2, "c": 0.3, "d": 0.7, "e": 0.11},
	}
	metrics := tracking.MetricBundle{"a": 0.3, "b": 0.7, "c": 0.1, "d": 0.9, "e": 0.13}

	first := agg.Calculate(metrics)
	for range 100 {
		if got := agg.Calculate(metrics); got != first {
			t.Fatalf("expected stable sum %v, got %v", first, got)
		}
	}
}

func TestNormalizeLinear(t *testing.T) {
	norm := NormalizeLinear(10, 20)

	if v := norm(10); v != 0.0 {
		t.Errorf("expected 0.0 at min, got %v", v)
	}
	if v := norm(20); v != 1.0 {
		t.Errorf("expected 1.0 at max, got %v", v)
	}
	if v := norm(15); v != 0.5 {
		t.Errorf("expected 0.5 at midpoint, got %v", v)
	}
	if v := norm(5); v != 0.0 {
		t.Errorf("expected 0.0 below min, got %v", v)
	}
	if v := norm(25); v != 1.0 {
		t.Errorf("expected 1.0 above max, got %v", v)
	}
}

func TestNormalizeDecay(t *testing.T) {
	norm := NormalizeDecay(500)

	if v := norm(0); v != 1.0 {
		t.Errorf("expected 1.0 at limit, got %v", v)
	}
	if v := norm(-3); v != 1.0 {
		t.Errorf("expected 1.0 under limit, got %v", v)
	}
	if v := norm(250); v != 0.5 {
		t.Errorf("expected 0.5 halfway, got %v", v)
	}
	if v := norm(900); v != 0.0 {
		t.Errorf("expected 0.0 past max, got %v", v)
	}
}

func TestTier(t *testing.T) {
	tier := Tier{Floor: 100, Ceil: 200}

	if v := tier.Score(0); v <= 100 || !tier.Contains(v) {
		t.Errorf("expected score strictly above floor, got %v", v)
	}
	if v := tier.Score(250); v != 200 {
		t.Errorf("expected clamp to ceil 200, got %v", v)
	}
	if v := tier.Score(42); v != 142 {
		t.Errorf("expected 142, got %v", v)
	}
	if v := tier.Lerp(0.5); v != 150 {
		t.Errorf("expected 150, got %v", v)
	}
	if v := tier.Lerp(2); v != 200 {
		t.Errorf("expected 200 for quality above 1, got %v", v)
	}
	if tier.Contains(100) {
		t.Errorf("expected floor excluded")
	}
}
