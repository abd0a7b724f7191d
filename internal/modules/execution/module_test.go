package execution

import (
	"context"
	"sync"
	"testing"
	"time"

	"live_trader/internal/models"
	"live_trader/internal/modules/config"
	"live_trader/internal/modules/execution/service"
	healthsvc "live_trader/internal/modules/health/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted отдаёт BUY на первом тике, дальше NONE.
type scripted struct {
	mu    sync.Mutex
	seen  []models.Tick
	fired bool
}

func (s *scripted) IsValid() bool { return true }

func (s *scripted) Observe(t models.Tick) {
	s.mu.Lock()
	s.seen = append(s.seen, t)
	s.mu.Unlock()
}

func (s *scripted) Process() models.Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fired {
		return models.SignalNone
	}
	s.fired = true
	return models.SignalBuy
}

type okGateway struct {
	mu     sync.Mutex
	orders []models.OrderIntent
}

func (g *okGateway) SubmitOrder(_ context.Context, in models.OrderIntent) (models.OrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders = append(g.orders, in)
	return models.OrderResult{Status: models.StatusOK, ID: "1"}, nil
}

func (g *okGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.orders)
}

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Trading.Symbol = "NSE:SBIN-EQ"
	cfg.Trading.LotSize = 5
	cfg.Trading.OrderTag = "TEST"
	return cfg
}

func TestDispatchDrivesTrader(t *testing.T) {
	ev := &scripted{}
	gw := &okGateway{}
	tr := NewTrader(newConfig(), ev, gw, nil, nil)
	require.NoError(t, tr.Start())

	st := healthsvc.NewState()
	ticks := make(chan models.Tick, 3)
	at := time.Unix(1700000000, 0)
	ticks <- models.Tick{Symbol: "NSE:SBIN-EQ", LTP: 600, At: at}
	ticks <- models.Tick{Symbol: "NSE:SBIN-EQ", LTP: 601, At: at.Add(time.Second)}
	close(ticks)

	Dispatch(context.Background(), tr, ticks, st)

	assert.Equal(t, 1, gw.count())
	assert.Equal(t, int64(5), tr.Position())
	assert.Equal(t, int64(2), st.Ticks())
	assert.Equal(t, at.Add(time.Second).Unix(), st.LastTick().Unix())
	assert.Len(t, ev.seen, 2)
}

func TestDispatchStopsOnCancel(t *testing.T) {
	tr := NewTrader(newConfig(), &scripted{}, &okGateway{}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Dispatch(ctx, tr, make(chan models.Tick), healthsvc.NewState())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch loop did not stop")
	}
}

func TestNewTraderRejectsBadLot(t *testing.T) {
	cfg := newConfig()
	cfg.Trading.LotSize = 0
	err := NewTrader(cfg, &scripted{}, &okGateway{}, nil, nil).Start()
	assert.ErrorIs(t, err, service.ErrInvalidLotSize)
}
