// Package logging writes generation events to a zerolog logger.
package logging

import (
	"context"

	"github.com/rs/zerolog"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	events "github.com/yahelnachum/graphql-query-generator/internal/events"
	runid "github.com/yahelnachum/graphql-query-generator/internal/runid"
)

// Attach subscribes logger to the global bus. Per-field and per-variable
// events are logged at debug level; the run summary at info, or error when
// generation failed.
func Attach(logger zerolog.Logger) (detach func()) {
	logger = logger.With().Str("component", "generator").Logger()

	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.GenerateStart) {
			logger.Debug().
				Str("run_id", runID(ctx)).
				Int64("seed", e.Seed).
				Str("operation", e.Operation).
				Str("root_type", e.RootType).
				Msg("generation started")
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.FieldVisited) {
			logger.Debug().
				Str("run_id", runID(ctx)).
				Str("path", e.Path).
				Str("type", e.Type).
				Int("depth", e.Depth).
				Msg("field selected")
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.VariableBound) {
			logger.Debug().
				Str("run_id", runID(ctx)).
				Str("variable", e.Name).
				Str("type", e.Type).
				Bool("slicing", e.Optional).
				Msg("variable bound")
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GenerateFinish) {
			if e.Err != nil {
				logger.Error().
					Err(e.Err).
					Str("run_id", runID(ctx)).
					Int64("seed", e.Seed).
					Str("operation", e.Operation).
					Msg("generation failed")
				return
			}
			logger.Info().
				Str("run_id", runID(ctx)).
				Int64("seed", e.Seed).
				Str("operation", e.Operation).
				Str("root_field", e.RootField).
				Int("fields", e.Fields).
				Int("variables", e.Variables).
				Dur("duration", e.Duration).
				Msg("generated query")
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func runID(ctx context.Context) string {
	id, _ := runid.FromContext(ctx)
	return id
}
