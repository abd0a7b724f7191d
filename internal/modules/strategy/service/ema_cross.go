package service

import (
	"sync"

	"live_trader/internal/models"
	"live_trader/pkg/logger"
)

// EMACross: пересечение быстрой и медленной EMA по ltp одного символа.
// Сигнал защёлкивается на пересечении и отдаётся Process ровно один раз.
type EMACross struct {
	symbol     string
	fastPeriod int
	slowPeriod int

	mu       sync.Mutex
	fast     ema
	slow     ema
	prevDiff float64
	hasPrev  bool
	pending  models.Signal
}

func NewEMACross(symbol string, fast, slow int) *EMACross {
	return &EMACross{
		symbol:     symbol,
		fastPeriod: fast,
		slowPeriod: slow,
		fast:       newEMA(fast),
		slow:       newEMA(slow),
	}
}

func (s *EMACross) Name() string { return "ema_cross" }

func (s *EMACross) IsValid() bool {
	return s.symbol != "" &&
		s.fastPeriod > 0 &&
		s.slowPeriod > 0 &&
		s.fastPeriod < s.slowPeriod
}

func (s *EMACross) Observe(t models.Tick) {
	if t.Symbol != s.symbol || t.LTP <= 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fast.Update(t.LTP)
	s.slow.Update(t.LTP)
	if !s.slow.Ready() {
		return
	}

	diff := s.fast.Value() - s.slow.Value()
	if s.hasPrev {
		switch {
		case s.prevDiff <= 0 && diff > 0:
			s.pending = models.SignalBuy
			logger.Debug("[STRAT] %s cross up fast=%.4f slow=%.4f", s.symbol, s.fast.Value(), s.slow.Value())
		case s.prevDiff >= 0 && diff < 0:
			s.pending = models.SignalSell
			logger.Debug("[STRAT] %s cross down fast=%.4f slow=%.4f", s.symbol, s.fast.Value(), s.slow.Value())
		}
	}
	s.prevDiff = diff
	s.hasPrev = true
}

func (s *EMACross) Process() models.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()

	sig := s.pending
	s.pending = models.SignalNone
	return sig
}
