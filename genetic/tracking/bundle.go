package tracking

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricFitness      = "fitness"
	MetricFuel         = "fuel"
	MetricSpeed        = "speed"
	MetricHSpeedExcess = "hspeed_excess"
	MetricVSpeedExcess = "vspeed_excess"
	MetricDistance     = "distance"
	MetricTurns        = "turns"
	MetricCrashed      = "crashed"
	MetricEscaped      = "escaped"
	MetricExpired      = "expired"
	MetricSolution     = "solution"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Clone creates a deep copy
func (b MetricBundle) Clone() MetricBundle {
	result := make(MetricBundle, len(b))
	for k, v := range b {
		result[k] = v
	}
	return result
}

// Flag converts a predicate into a 0/1 metric
func Flag(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// Collector accumulates metrics over one generation
type Collector interface {
	// Collect records the outcome bundle of a single candidate
	Collect(metrics MetricBundle)

	// Finalize returns accumulated metrics
	Finalize() MetricBundle

	// Reset clears accumulated state for reuse
	Reset()
}
