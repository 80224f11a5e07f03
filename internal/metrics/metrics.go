// Package metrics exports Prometheus metrics for generation runs.
// All metrics use the querygen_ prefix.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	events "github.com/yahelnachum/graphql-query-generator/internal/events"
	generator "github.com/yahelnachum/graphql-query-generator/internal/generator"
)

// Collector holds the generation metrics registered with one registry.
type Collector struct {
	Runs         *prometheus.CounterVec
	Failures     *prometheus.CounterVec
	SlicingBinds prometheus.Counter
	Variables    prometheus.Histogram
	Fields       prometheus.Histogram
	Duration     *prometheus.HistogramVec
}

// Register creates the collector's metrics and registers them with reg.
func Register(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querygen_runs_total",
				Help: "Total number of generation runs",
			},
			[]string{"operation", "status"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querygen_failures_total",
				Help: "Failed generation runs by cause",
			},
			[]string{"reason"},
		),
		SlicingBinds: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "querygen_slicing_arguments_bound_total",
				Help: "Optional arguments bound through @listSize slicing paths",
			},
		),
		Variables: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "querygen_variables_per_query",
				Help:    "Variables declared per generated operation",
				Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64},
			},
		),
		Fields: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "querygen_fields_per_query",
				Help:    "Fields selected per generated operation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "querygen_generate_duration_seconds",
				Help:    "Generation duration in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"operation"},
		),
	}
	for _, m := range []prometheus.Collector{c.Runs, c.Failures, c.SlicingBinds, c.Variables, c.Fields, c.Duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Attach subscribes the collector to the global bus.
func (c *Collector) Attach() (detach func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(_ context.Context, e events.VariableBound) {
			if e.Optional {
				c.SlicingBinds.Inc()
			}
		}),
		eventbus.Subscribe(func(_ context.Context, e events.GenerateFinish) {
			c.Duration.WithLabelValues(e.Operation).Observe(e.Duration.Seconds())
			if e.Err != nil {
				c.Runs.WithLabelValues(e.Operation, "error").Inc()
				c.Failures.WithLabelValues(failureReason(e.Err)).Inc()
				return
			}
			c.Runs.WithLabelValues(e.Operation, "ok").Inc()
			c.Variables.Observe(float64(e.Variables))
			c.Fields.Observe(float64(e.Fields))
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, generator.ErrEmptySchema):
		return "empty_schema"
	case errors.Is(err, generator.ErrUnsatisfiableInput):
		return "unsatisfiable_input"
	case errors.Is(err, generator.ErrSchema):
		return "schema"
	}
	return "other"
}
