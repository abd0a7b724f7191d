package service

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"live_trader/internal/models"
	"live_trader/pkg/logger"

	"github.com/oklog/ulid/v2"
)

// Paper: бумажный брокер: ничего не отправляет, подтверждает всё подряд.
type Paper struct {
	mu      sync.Mutex
	orders  []models.OrderIntent
	reject  bool
	entropy *ulid.MonotonicEntropy
}

func NewPaper() *Paper {
	return &Paper{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// SetReject переключает бумажный брокер в режим отказов.
func (p *Paper) SetReject(v bool) {
	p.mu.Lock()
	p.reject = v
	p.mu.Unlock()
}

func (p *Paper) SubmitOrder(_ context.Context, intent models.OrderIntent) (models.OrderResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.reject {
		raw := `{"s":"error","code":-99,"message":"paper broker rejects orders"}`
		return models.OrderResult{Status: "error", Code: -99, Message: "paper broker rejects orders", Raw: raw}, nil
	}

	id := ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
	p.orders = append(p.orders, intent)
	logger.Info("[PAPER] %s side=%d qty=%d tag=%s id=%s", intent.Symbol, intent.Side, intent.Qty, intent.OrderTag, id)

	return models.OrderResult{
		Status:  models.StatusOK,
		Code:    1101,
		Message: "Order submitted successfully (paper)",
		ID:      id,
		Raw:     `{"s":"ok","code":1101,"id":"` + id + `"}`,
	}, nil
}

func (p *Paper) Orders() []models.OrderIntent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.OrderIntent(nil), p.orders...)
}
