package fitness

import "github.com/lixenwraith/mars-lander/genetic/tracking"

// Aggregator calculates fitness score from collected metrics
type Aggregator interface {
	Calculate(metrics tracking.MetricBundle) float64
}

// NormalizeFunc converts a raw metric to a 0-1 score
type NormalizeFunc func(raw float64) float64

// NormalizeLinear creates a linear normalizer
func NormalizeLinear(min, max float64) NormalizeFunc {
	rangeVal := max - min
	if rangeVal <= 0 {
		return func(raw float64) float64 { return 0 }
	}
	return func(raw float64) float64 {
		return clamp01((raw - min) / rangeVal)
	}
}

// NormalizeCap creates a capped normalizer: min(raw/max, 1.0)
func NormalizeCap(max float64) NormalizeFunc {
	if max <= 0 {
		return func(raw float64) float64 { return 0 }
	}
	return func(raw float64) float64 {
		return clamp01(raw / max)
	}
}

// NormalizeDecay creates a falling normalizer: 1 at raw <= 0, 0 at raw >= max
// Used for excess-over-limit metrics where smaller is better
func NormalizeDecay(max float64) NormalizeFunc {
	if max <= 0 {
		return func(raw float64) float64 {
			if raw <= 0 {
				return 1
			}
			return 0
		}
	}
	return func(raw float64) float64 {
		return 1 - clamp01(raw/max)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
