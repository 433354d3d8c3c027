package search

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/mars-lander/search"

// meter returns the global meter, a no-op unless a provider is installed
func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// instruments are the search counters and the best-fitness gauge
type instruments struct {
	generations metric.Int64Counter
	evaluations metric.Int64Counter
	solutions   metric.Int64Counter
	bestFitness metric.Float64ObservableGauge
	level       attribute.KeyValue

	mu   sync.Mutex
	best float64
}

func newInstruments(m metric.Meter, levelName string) (*instruments, error) {
	in := &instruments{level: attribute.String("level", levelName)}

	var err error
	in.generations, err = m.Int64Counter(
		"lander.search.generations",
		metric.WithDescription("Generations evaluated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating generations counter: %w", err)
	}

	in.evaluations, err = m.Int64Counter(
		"lander.search.evaluations",
		metric.WithDescription("Candidates simulated and scored"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluations counter: %w", err)
	}

	in.solutions, err = m.Int64Counter(
		"lander.search.solutions",
		metric.WithDescription("Candidates satisfying the landing conditions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating solutions counter: %w", err)
	}

	in.bestFitness, err = m.Float64ObservableGauge(
		"lander.search.best_fitness",
		metric.WithDescription("Best fitness seen so far"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating best fitness gauge: %w", err)
	}

	_, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			in.mu.Lock()
			defer in.mu.Unlock()
			o.ObserveFloat64(in.bestFitness, in.best, metric.WithAttributes(in.level))
			return nil
		},
		in.bestFitness,
	)
	if err != nil {
		return nil, fmt.Errorf("registering best fitness callback: %w", err)
	}

	return in, nil
}

func (in *instruments) generation(ctx context.Context, evaluated, solutions int, bestEver float64) {
	attrs := metric.WithAttributes(in.level)
	in.generations.Add(ctx, 1, attrs)
	in.evaluations.Add(ctx, int64(evaluated), attrs)
	if solutions > 0 {
		in.solutions.Add(ctx, int64(solutions), attrs)
	}

	in.mu.Lock()
	in.best = bestEver
	in.mu.Unlock()
}
