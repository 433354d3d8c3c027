package tracking

import (
	"time"

	"github.com/rs/zerolog"
)

// Report summarises one evaluated generation
type Report struct {
	Generation int
	Best       float64
	Average    float64
	Worst      float64
	BestEver   float64
	Solutions  int
	Crashed    int
	Escaped    int
	Expired    int
	AvgFuel    float64
	Elapsed    time.Duration
}

// NewReport builds a report from a finalized generation bundle
func NewReport(generation int, summary MetricBundle, bestEver float64, elapsed time.Duration) Report {
	return Report{
		Generation: generation,
		Best:       summary.Get("max_"+MetricFitness, 0),
		Average:    summary.Get("avg_"+MetricFitness, 0),
		Worst:      summary.Get("min_"+MetricFitness, 0),
		BestEver:   bestEver,
		Solutions:  int(summary.Get("sum_"+MetricSolution, 0)),
		Crashed:    int(summary.Get("sum_"+MetricCrashed, 0)),
		Escaped:    int(summary.Get("sum_"+MetricEscaped, 0)),
		Expired:    int(summary.Get("sum_"+MetricExpired, 0)),
		AvgFuel:    summary.Get("avg_"+MetricFuel, 0),
		Elapsed:    elapsed,
	}
}

// MarshalZerologObject lets a report be logged as an embedded object
func (r Report) MarshalZerologObject(e *zerolog.Event) {
	e.Int("gen", r.Generation).
		Float64("avg", r.Average).
		Float64("max", r.Best).
		Float64("min", r.Worst).
		Float64("best_ever", r.BestEver).
		Int("solutions", r.Solutions).
		Int("crashed", r.Crashed).
		Int("escaped", r.Escaped).
		Int("expired", r.Expired).
		Dur("elapsed", r.Elapsed)
}
