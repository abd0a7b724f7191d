package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"live_trader/internal/metrics"
	"live_trader/internal/models"
	"live_trader/internal/notify"
	"live_trader/pkg/logger"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

type Evaluator interface {
	Process() models.Signal
	IsValid() bool
}

// TickObserver: стратегия хочет видеть сам тик до вызова Process.
type TickObserver interface {
	Observe(t models.Tick)
}

type Gateway interface {
	SubmitOrder(ctx context.Context, intent models.OrderIntent) (models.OrderResult, error)
}

type Recorder interface {
	Record(ctx context.Context, e models.JournalEntry) error
}

type Params struct {
	Symbol       string
	LotSize      int64
	ProductType  string
	OrderTag     string
	OfflineOrder bool

	// стартовая позиция; в проде всегда 0
	Position int64

	Evaluator Evaluator
	Gateway   Gateway
	Notifier  notify.Notifier
	Journal   Recorder
}

// Trader переводит сигналы стратегии в рыночные ордера на неттинг позиции.
//
// Позиция меняется только в одной точке (reconcile) и только после ok от брокера.
// Любой ok считается полным мгновенным исполнением: частичные и отложенные
// исполнения не отслеживаются, и в этом случае внутренняя позиция разойдётся
// с реальной позицией у брокера.
type Trader struct {
	symbol       string
	lotSize      int64
	productType  string
	orderTag     string
	offlineOrder bool

	evaluator Evaluator
	gateway   Gateway
	n         notify.Notifier
	journal   Recorder
	now       func() time.Time

	// mu держится на всю цепочку evaluate -> submit -> reconcile
	mu       sync.Mutex
	position int64
	started  bool
}

func New(p Params) *Trader {
	n := p.Notifier
	if n == nil {
		n = notify.NewStdout()
	}
	j := p.Journal
	if j == nil {
		j = nopRecorder{}
	}
	productType := p.ProductType
	if productType == "" {
		productType = models.ProductMargin
	}
	return &Trader{
		symbol:       p.Symbol,
		lotSize:      p.LotSize,
		productType:  productType,
		orderTag:     p.OrderTag,
		offlineOrder: p.OfflineOrder,
		evaluator:    p.Evaluator,
		gateway:      p.Gateway,
		n:            n,
		journal:      j,
		now:          time.Now,
		position:     p.Position,
	}
}

// Start: проверка перед активацией. Пока Start не вернул nil, сигналы игнорируются.
func (t *Trader) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	logger.Info("[TRADER] Starting Live Trader %s lot=%d", t.symbol, t.lotSize)
	if t.started {
		return nil
	}

	if err := t.validate(); err != nil {
		logger.Error("[TRADER] %v", err)
		logger.Info("[TRADER] Stopping Live Trader")
		return err
	}

	t.started = true
	metrics.NetPosition.WithLabelValues(t.symbol).Set(float64(t.position))
	return nil
}

func (t *Trader) validate() error {
	if t.evaluator == nil {
		return ErrNoEvaluator
	}
	if !t.evaluator.IsValid() {
		return ErrEvaluatorInvalid
	}
	if t.gateway == nil {
		return ErrNoGateway
	}
	if t.lotSize <= 0 {
		return ErrInvalidLotSize
	}
	return nil
}

func (t *Trader) Started() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}

func (t *Trader) Position() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position
}

// OnMarketTick: колбэк фида: тик в стратегию, затем Process и обработка сигнала.
func (t *Trader) OnMarketTick(ctx context.Context, tick models.Tick) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		logger.Debug("[TRADER] tick %s ignored: not started", tick.Symbol)
		return
	}

	if obs, ok := t.evaluator.(TickObserver); ok {
		obs.Observe(tick)
	}
	sig := t.evaluator.Process()
	logger.Info("[TRADER] TRADE_SIGNAL: %s", sig)

	t.dispatch(ctx, sig)
}

func (t *Trader) OnSignal(ctx context.Context, sig models.Signal) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		logger.Warn("[TRADER] signal %s ignored: not started", sig)
		return
	}
	t.dispatch(ctx, sig)
}

// OrderQty: размер ордера под сигнал с учётом встречной позиции.
// BUY: lot + max(0, -pos); SELL: -(lot + max(0, pos)); NONE: 0.
func OrderQty(sig models.Signal, lotSize, position int64) int64 {
	switch sig {
	case models.SignalBuy:
		return lotSize + max(0, -position)
	case models.SignalSell:
		return -(lotSize + max(0, position))
	default:
		return 0
	}
}

// вызывается под t.mu
func (t *Trader) dispatch(ctx context.Context, sig models.Signal) {
	metrics.SignalsTotal.WithLabelValues(sig.String()).Inc()

	switch sig {
	case models.SignalNone:
		return
	case models.SignalBuy, models.SignalSell:
	default:
		logger.Error("[TRADER] unknown signal %d dropped", int(sig))
		return
	}

	qty := OrderQty(sig, t.lotSize, t.position)
	logger.Info("[TRADER] lot_size: %d | current_position: %d | order_qty: %d", t.lotSize, t.position, qty)

	res, err := t.PlaceOrder(ctx, qty)
	t.reconcile(ctx, sig, qty, res, err)
}

// reconcile: единственное место, где меняется позиция.
func (t *Trader) reconcile(ctx context.Context, sig models.Signal, qty int64, res models.OrderResult, err error) {
	before := t.position
	side := sideLabel(qty)

	if err != nil || !res.OK() {
		rej := &OrderRejectedError{Qty: qty, Result: res, Err: err}
		metrics.OrdersTotal.WithLabelValues(side, "rejected").Inc()
		logger.Error("[TRADER] Order sending failed %v", rej)
		t.n.Sendf("❗️ [%s] %s %d: ордер не принят, позиция %d без изменений\n%v",
			t.symbol, sig, abs(qty), before, rej)
		t.record(ctx, sig, qty, before, before, res, rejectStatus(res))
		return
	}

	t.position = qty
	metrics.OrdersTotal.WithLabelValues(side, res.Status).Inc()
	metrics.NetPosition.WithLabelValues(t.symbol).Set(float64(t.position))

	logger.Info("[TRADER] Market order %s sent successfully, assuming filled! position %d -> %d", res.ID, before, t.position)
	t.n.Sendf("✅ [%s] %s %d (orderId=%s) | позиция %d -> %d",
		t.symbol, sig, abs(qty), res.ID, before, t.position)
	t.record(ctx, sig, qty, before, t.position, res, res.Status)
}

func (t *Trader) record(ctx context.Context, sig models.Signal, qty, before, after int64, res models.OrderResult, status string) {
	err := t.journal.Record(ctx, models.JournalEntry{
		Symbol:         t.symbol,
		Signal:         sig,
		Qty:            qty,
		PositionBefore: before,
		PositionAfter:  after,
		Status:         status,
		OrderID:        res.ID,
		Raw:            res.Raw,
		CreatedAt:      t.now(),
	})
	if err != nil {
		logger.Error("[TRADER] journal record: %v", err)
	}
}

// PlaceOrder собирает рыночный DAY-ордер и отдаёт его брокеру как есть.
// Знак qty задаёт сторону: >0 покупка, <0 продажа.
func (t *Trader) PlaceOrder(ctx context.Context, qty int64) (models.OrderResult, error) {
	if qty == 0 {
		return models.OrderResult{}, ErrZeroQuantity
	}
	if t.gateway == nil {
		return models.OrderResult{}, ErrNoGateway
	}

	side := models.SideBuy
	if qty < 0 {
		side = models.SideSell
	}

	intent := models.OrderIntent{
		Symbol:       t.symbol,
		Qty:          abs(qty),
		Type:         models.OrderTypeMarket,
		Side:         side,
		ProductType:  t.productType,
		LimitPrice:   0,
		StopPrice:    0,
		DisclosedQty: 0,
		Validity:     models.ValidityDay,
		OfflineOrder: t.offlineOrder,
		OrderTag:     t.orderTag,
	}

	span, ctx := opentracing.StartSpanFromContext(ctx, "trader.PlaceOrder")
	defer span.Finish()
	span.SetTag("symbol", intent.Symbol)
	span.SetTag("qty", qty)

	res, err := t.gateway.SubmitOrder(ctx, intent)
	span.SetTag("status", res.Status)
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("event", "error", "message", err.Error())
	}
	return res, err
}

func rejectStatus(res models.OrderResult) string {
	if res.Status == "" || res.OK() {
		return "error"
	}
	return res.Status
}

func sideLabel(qty int64) string {
	if qty < 0 {
		return models.SignalSell.String()
	}
	return models.SignalBuy.String()
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, models.JournalEntry) error { return nil }

// IsConfigurationError: ошибка старта, которую нельзя ретраить.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrNoEvaluator) ||
		errors.Is(err, ErrEvaluatorInvalid) ||
		errors.Is(err, ErrNoGateway) ||
		errors.Is(err, ErrInvalidLotSize)
}
