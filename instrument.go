package querygen

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	eventbus "github.com/yahelnachum/graphql-query-generator/internal/eventbus"
	logging "github.com/yahelnachum/graphql-query-generator/internal/logging"
	metrics "github.com/yahelnachum/graphql-query-generator/internal/metrics"
	otel "github.com/yahelnachum/graphql-query-generator/internal/otel"
)

// Instrumentation selects the subscribers Instrument attaches. Zero fields
// are skipped.
type Instrumentation struct {
	Logger       *zerolog.Logger
	Registerer   prometheus.Registerer
	OTLPEndpoint string
	ServiceName  string
}

// Instrument installs the process-wide event bus if none is set and attaches
// the requested subscribers. The returned shutdown detaches them and flushes
// pending spans.
func Instrument(cfg Instrumentation) (shutdown func(context.Context) error, err error) {
	if eventbus.Current() == nil {
		eventbus.Use(eventbus.New())
	}

	var detach []func()
	cleanup := func() {
		for _, d := range detach {
			d()
		}
	}

	if cfg.Logger != nil {
		detach = append(detach, logging.Attach(*cfg.Logger))
	}
	if cfg.Registerer != nil {
		c, err := metrics.Register(cfg.Registerer)
		if err != nil {
			cleanup()
			return nil, err
		}
		detach = append(detach, c.Attach())
	}

	service := cfg.ServiceName
	if service == "" {
		service = "querygen"
	}
	otelShutdown, err := otel.Setup(cfg.OTLPEndpoint, service)
	if err != nil {
		cleanup()
		return nil, err
	}

	return func(ctx context.Context) error {
		cleanup()
		return otelShutdown(ctx)
	}, nil
}
