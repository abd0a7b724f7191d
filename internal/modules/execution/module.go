package execution

import (
	"context"
	"fmt"

	"live_trader/internal/metrics"
	"live_trader/internal/models"
	"live_trader/internal/modules/config"
	"live_trader/internal/modules/execution/service"
	"live_trader/internal/modules/health"
	healthsvc "live_trader/internal/modules/health/service"
	"live_trader/internal/notify"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

func NewTrader(
	cfg *config.Config,
	ev service.Evaluator,
	gw service.Gateway,
	n notify.Notifier,
	rec service.Recorder,
) *service.Trader {
	return service.New(service.Params{
		Symbol:       cfg.Trading.Symbol,
		LotSize:      cfg.Trading.LotSize,
		ProductType:  cfg.Trading.ProductType,
		OrderTag:     cfg.Trading.OrderTag,
		OfflineOrder: cfg.Trading.OfflineOrder,
		Evaluator:    ev,
		Gateway:      gw,
		Notifier:     n,
		Journal:      rec,
	})
}

func Module() fx.Option {
	return fx.Module("execution",
		fx.Provide(
			NewTrader, // *service.Trader
			func(t *service.Trader) health.TraderStatus { return t },
		),
		fx.Invoke(func(
			lc fx.Lifecycle,
			ctx context.Context,
			t *service.Trader,
			ticks chan models.Tick,
			st *healthsvc.State,
		) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					if err := t.Start(); err != nil {
						if service.IsConfigurationError(err) {
							return fmt.Errorf("trader configuration: %w", err)
						}
						return err
					}
					st.SetReady(true)
					go Dispatch(ctx, t, ticks, st)
					return nil
				},
				OnStop: func(_ context.Context) error {
					st.SetReady(false)
					return nil
				},
			})
		}),
	)
}

// Dispatch: единственный поток обработки тиков: следующий тик не начнётся,
// пока не закончится evaluate -> submit -> reconcile предыдущего.
func Dispatch(ctx context.Context, t *service.Trader, ticks <-chan models.Tick, st *healthsvc.State) {
	logger.Info("[EXEC] dispatch loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("[EXEC] dispatch loop stopped")
			return
		case tick, ok := <-ticks:
			if !ok {
				logger.Warn("[EXEC] ticks channel closed")
				return
			}
			st.TouchTick(tick.At)
			metrics.TicksTotal.WithLabelValues(tick.Symbol).Inc()
			t.OnMarketTick(ctx, tick)
		}
	}
}
