package fyers_websocket

import (
	"context"

	"live_trader/internal/models"
	"live_trader/internal/modules/config"
	"live_trader/internal/modules/fyers_websocket/service"
	healthsvc "live_trader/internal/modules/health/service"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

func NewClient(cfg *config.Config, st *healthsvc.State) *service.Client {
	return service.NewClient(cfg, st)
}

// Module поднимает фид тиков Fyers и кладёт их в общий канал.
func Module() fx.Option {
	return fx.Module("fyers_websocket",
		fx.Provide(
			NewClient,
			func() chan models.Tick {
				return make(chan models.Tick, 1024)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, c *service.Client, out chan models.Tick) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					go Forward(ctx, c.StreamTicks(ctx, []string{cfg.Trading.Symbol}), out)
					return nil
				},
			})
		}),
	)
}

// Forward перекладывает тики фида в общий буфер. out не закрывается: писателей может быть несколько.
func Forward(ctx context.Context, in <-chan models.Tick, out chan<- models.Tick) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-in:
			if !ok {
				logger.Info("[WS] tick stream closed")
				return
			}
			select {
			case out <- t:
			case <-ctx.Done():
				return
			}
		}
	}
}
