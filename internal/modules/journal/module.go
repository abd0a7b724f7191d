package journal

import (
	"context"

	"live_trader/internal/modules/config"
	execsvc "live_trader/internal/modules/execution/service"
	"live_trader/internal/modules/journal/service"
	"live_trader/pkg/db"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

// NewRecorder: журнал в Postgres, если он поднят, иначе no-op.
func NewRecorder(lc fx.Lifecycle, cfg *config.Config, tm *db.PgTxManager) execsvc.Recorder {
	if tm == nil {
		return service.Nop{}
	}

	j := service.New(tm)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := j.Migrate(ctx); err != nil {
				return err
			}
			last, err := j.Recent(ctx, cfg.Trading.Symbol, 1)
			if err != nil {
				logger.Warn("[JOURNAL] recent: %v", err)
				return nil
			}
			if len(last) > 0 {
				logger.Info("[JOURNAL] last order %s %s qty=%d position_after=%d at %s",
					last[0].Symbol, last[0].Status, last[0].Qty, last[0].PositionAfter, last[0].CreatedAt)
			}
			return nil
		},
	})
	return j
}

func Module() fx.Option {
	return fx.Module("journal",
		fx.Provide(
			NewRecorder,
		),
	)
}
