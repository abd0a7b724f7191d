package fyers_client

import (
	"live_trader/internal/modules/config"
	execsvc "live_trader/internal/modules/execution/service"
	"live_trader/internal/modules/fyers_client/service"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

// NewGateway: live шлёт в Fyers, paper подтверждает локально.
func NewGateway(cfg *config.Config) execsvc.Gateway {
	if cfg.Fyers.Mode == config.ModeLive {
		logger.Info("[FYERS] live gateway %s", cfg.Fyers.BaseURL)
		return service.NewClient(cfg)
	}
	logger.Info("[FYERS] paper gateway, orders are not sent")
	return service.NewPaper()
}

func Module() fx.Option {
	return fx.Module("fyers_client",
		fx.Provide(
			NewGateway,
		),
	)
}
