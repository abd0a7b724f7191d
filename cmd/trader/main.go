package main

import (
	"context"
	"log"
	"os"

	"live_trader/internal/modules/config"
	"live_trader/internal/modules/execution"
	"live_trader/internal/modules/fyers_client"
	"live_trader/internal/modules/fyers_websocket"
	"live_trader/internal/modules/health"
	"live_trader/internal/modules/journal"
	"live_trader/internal/modules/postgres"
	"live_trader/internal/modules/strategy"
	"live_trader/internal/modules/tracing"
	"live_trader/internal/notify"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// appContext живёт от старта до OnStop: его отмена гасит фид и цикл исполнения.
func appContext(lc fx.Lifecycle) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return ctx
}

func main() {
	if err := logger.Init("live_trader", os.Getenv("LOG_LEVEL")); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.InfoLogger}
		}),
		fx.Provide(appContext),
		config.Module(),
		tracing.Module(),
		postgres.Module(),
		journal.Module(),
		notify.Module(),
		fyers_client.Module(),
		health.Module(),
		fyers_websocket.Module(),
		strategy.Module(),
		execution.Module(),
	)
	app.Run()
}
