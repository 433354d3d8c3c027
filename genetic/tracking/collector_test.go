package tracking

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestStandardCollector_Accumulation(t *testing.T) {
	c := NewStandardCollector()

	c.Collect(MetricBundle{MetricFitness: 10.0, MetricCrashed: 1.0})
	c.Collect(MetricBundle{MetricFitness: 20.0, MetricCrashed: 0.0})
	c.Collect(MetricBundle{MetricFitness: 30.0, MetricCrashed: 1.0})

	result := c.Finalize()

	if result[MetricSamples] != 3 {
		t.Errorf("expected 3 samples, got %v", result[MetricSamples])
	}
	if result["avg_fitness"] != 20.0 {
		t.Errorf("expected avg_fitness 20.0, got %v", result["avg_fitness"])
	}
	if result["sum_crashed"] != 2.0 {
		t.Errorf("expected sum_crashed 2.0, got %v", result["sum_crashed"])
	}
}

func TestStandardCollector_MinMax(t *testing.T) {
	c := NewStandardCollector()

	c.Collect(MetricBundle{"value": -5.0})
	c.Collect(MetricBundle{"value": -2.0})
	c.Collect(MetricBundle{"value": -8.0})

	result := c.Finalize()

	if result["min_value"] != -8.0 {
		t.Errorf("expected min -8.0, got %v", result["min_value"])
	}
	// all-negative series must not report the zero value as max
	if result["max_value"] != -2.0 {
		t.Errorf("expected max -2.0, got %v", result["max_value"])
	}
}

func TestStandardCollector_Reset(t *testing.T) {
	c := NewStandardCollector()

	c.Collect(MetricBundle{"x": 10.0})
	c.Reset()
	c.Collect(MetricBundle{"x": 5.0})

	result := c.Finalize()

	if result[MetricSamples] != 1 {
		t.Errorf("expected 1 sample after reset, got %v", result[MetricSamples])
	}
	if result["avg_x"] != 5.0 {
		t.Errorf("expected avg_x 5.0 after reset, got %v", result["avg_x"])
	}
}

func TestNewReport(t *testing.T) {
	c := NewStandardCollector()
	c.Collect(MetricBundle{MetricFitness: 1, MetricEscaped: 1, MetricFuel: 100})
	c.Collect(MetricBundle{MetricFitness: 250, MetricSolution: 1, MetricCrashed: 1, MetricFuel: 300})

	r := NewReport(7, c.Finalize(), 260, 3*time.Millisecond)

	if r.Generation != 7 {
		t.Errorf("expected generation 7, got %d", r.Generation)
	}
	if r.Best != 250 || r.Worst != 1 {
		t.Errorf("expected best 250 worst 1, got %v %v", r.Best, r.Worst)
	}
	if r.Average != 125.5 {
		t.Errorf("expected average 125.5, got %v", r.Average)
	}
	if r.Solutions != 1 || r.Crashed != 1 || r.Escaped != 1 || r.Expired != 0 {
		t.Errorf("unexpected outcome counts: %+v", r)
	}
	if r.AvgFuel != 200 {
		t.Errorf("expected avg fuel 200, got %v", r.AvgFuel)
	}
	if r.BestEver != 260 {
		t.Errorf("expected best ever 260, got %v", r.BestEver)
	}
}

func TestReport_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	logger.Info().EmbedObject(Report{Generation: 3, Best: 42}).Msg("generation")

	out := buf.String()
	if !strings.Contains(out, `"gen":3`) || !strings.Contains(out, `"max":42`) {
		t.Errorf("expected gen and max fields, got %s", out)
	}
}
