package strategy

import (
	"live_trader/internal/modules/config"
	execsvc "live_trader/internal/modules/execution/service"
	"live_trader/internal/modules/strategy/service"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

func NewEvaluator(cfg *config.Config) *service.EMACross {
	s := service.NewEMACross(cfg.Trading.Symbol, cfg.Strategy.EMAShort, cfg.Strategy.EMALong)
	logger.Info("[STRAT] %s %s fast=%d slow=%d", s.Name(), cfg.Trading.Symbol, cfg.Strategy.EMAShort, cfg.Strategy.EMALong)
	return s
}

func Module() fx.Option {
	return fx.Module("strategy",
		fx.Provide(
			NewEvaluator, // *service.EMACross
			func(s *service.EMACross) execsvc.Evaluator { return s },
		),
	)
}
