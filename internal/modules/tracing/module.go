package tracing

import (
	"context"

	"live_trader/internal/modules/config"
	"live_trader/pkg/logger"
	"live_trader/pkg/tracing"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/fx"
)

// NewTracer: Jaeger при tracing.enabled, иначе NoopTracer.
func NewTracer(lc fx.Lifecycle, cfg *config.Config) (opentracing.Tracer, error) {
	if !cfg.Tracing.Enabled {
		return opentracing.NoopTracer{}, nil
	}

	tracer, closer, err := tracing.InitTracer(tracing.Config{
		ServiceName: cfg.Service.Name,
		Host:        cfg.Tracing.Host,
		Port:        cfg.Tracing.Port,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("[TRACING] jaeger agent %s:%d", cfg.Tracing.Host, cfg.Tracing.Port)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closer()
			return nil
		},
	})
	return tracer, nil
}

func Module() fx.Option {
	return fx.Module("tracing",
		fx.Provide(NewTracer),
		// трейсер должен стать глобальным до первого ордера
		fx.Invoke(func(opentracing.Tracer) {}),
	)
}
