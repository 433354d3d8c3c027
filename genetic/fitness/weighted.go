package fitness

import (
	"slices"

	"github.com/lixenwraith/mars-lander/genetic/tracking"
)

// WeightedAggregator calculates fitness as weighted sum of metric scores
// Keys are summed in sorted order so equal bundles give bit-identical scores
type WeightedAggregator struct {
	Weights     map[string]float64
	Normalizers map[string]NormalizeFunc
}

func (a *WeightedAggregator) Calculate(metrics tracking.MetricBundle) float64 {
	keys := make([]string, 0, len(a.Weights))
	for key := range a.Weights {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var fitness float64
	for _, key := range keys {
		raw, ok := metrics[key]
		if !ok {
			continue
		}

		normalized := raw
		if normalizer, ok := a.Normalizers[key]; ok && normalizer != nil {
			normalized = normalizer(raw)
		}

		fitness += a.Weights[key] * normalized
	}

	return fitness
}

// TotalWeight sums the configured weights
func (a *WeightedAggregator) TotalWeight() float64 {
	var total float64
	for _, w := range a.Weights {
		total += w
	}
	return total
}
