package notify

import (
	"live_trader/internal/modules/config"
	"live_trader/pkg/logger"

	"go.uber.org/fx"
)

// New: если TELEGRAM_* нет или бот не поднялся: используем stdout.
func New(cfg *config.Config) Notifier {
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tg, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err == nil {
			return tg
		}
		logger.Error("[NOTIFY] telegram disabled: %v", err)
	}
	return NewStdout()
}

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(New),
	)
}
