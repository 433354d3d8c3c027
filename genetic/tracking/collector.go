package tracking

// StandardCollector implements Collector for a generation of candidates
// Finalize emits avg_/min_/max_/sum_ per key plus the sample count
type StandardCollector struct {
	samples int
	sums    map[string]float64
	counts  map[string]int
	mins    map[string]float64
	maxs    map[string]float64
	minSet  map[string]bool
	maxSet  map[string]bool
}

// MetricSamples is the key holding the number of collected bundles
const MetricSamples = "samples"

// NewStandardCollector creates a reusable collector
func NewStandardCollector() *StandardCollector {
	return &StandardCollector{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
		mins:   make(map[string]float64),
		maxs:   make(map[string]float64),
		minSet: make(map[string]bool),
		maxSet: make(map[string]bool),
	}
}

func (c *StandardCollector) Collect(metrics MetricBundle) {
	c.samples++

	for key, value := range metrics {
		c.sums[key] += value
		c.counts[key]++

		if !c.minSet[key] || value < c.mins[key] {
			c.mins[key] = value
			c.minSet[key] = true
		}
		if !c.maxSet[key] || value > c.maxs[key] {
			c.maxs[key] = value
			c.maxSet[key] = true
		}
	}
}

func (c *StandardCollector) Finalize() MetricBundle {
	result := make(MetricBundle)

	result[MetricSamples] = float64(c.samples)

	for key, sum := range c.sums {
		result["sum_"+key] = sum
		if count := c.counts[key]; count > 0 {
			result["avg_"+key] = sum / float64(count)
		}
	}

	for key, val := range c.mins {
		result["min_"+key] = val
	}
	for key, val := range c.maxs {
		result["max_"+key] = val
	}

	return result
}

func (c *StandardCollector) Reset() {
	c.samples = 0
	clear(c.sums)
	clear(c.counts)
	clear(c.mins)
	clear(c.maxs)
	clear(c.minSet)
	clear(c.maxSet)
}
