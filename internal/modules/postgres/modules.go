package postgres

import (
	"context"
	"fmt"

	"live_trader/internal/modules/config"
	"live_trader/pkg/db"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

// NewTxManager: nil, если DSN не задан: журнал тогда работает в no-op режиме.
func NewTxManager(lc fx.Lifecycle, ctx context.Context, cfg *config.Config) (*db.PgTxManager, error) {
	if cfg.DB == "" {
		logger.Info("[DB] DATABASE_DSN is empty, postgres disabled")
		return nil, nil
	}

	pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB, MaxConns: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	tm := db.NewPgTxManager(pool)
	if err := tm.Ping(ctx); err != nil {
		tm.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			tm.Close()
			return nil
		},
	})
	return tm, nil
}

func Module() fx.Option {
	return fx.Module("postgres",
		fx.Provide(
			NewTxManager,
		),
	)
}
