package service

import (
	"context"

	"live_trader/internal/models"
	"live_trader/internal/modules/journal/service/sql"
	"live_trader/pkg/db"

	"github.com/pkg/errors"
)

type TxRunner interface {
	RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx db.Transaction) error) error
	Conn() db.Transaction
}

// Journal пишет каждый отправленный ордер в trade_orders.
type Journal struct {
	tm TxRunner
	q  *sql.Queries
}

func New(tm TxRunner) *Journal {
	return &Journal{tm: tm, q: sql.New()}
}

func (j *Journal) Migrate(ctx context.Context) error {
	if _, err := j.tm.Conn().Exec(ctx, sql.Schema); err != nil {
		return errors.Wrap(err, "journal migrate")
	}
	return nil
}

func (j *Journal) Record(ctx context.Context, e models.JournalEntry) error {
	return j.tm.RunMaster(ctx, func(ctxTx context.Context, tx db.Transaction) error {
		_, err := j.q.InsertOrder(ctxTx, tx, &sql.InsertOrderParams{
			Symbol:         e.Symbol,
			Signal:         e.Signal.String(),
			Qty:            e.Qty,
			PositionBefore: e.PositionBefore,
			PositionAfter:  e.PositionAfter,
			Status:         e.Status,
			OrderID:        e.OrderID,
			Raw:            e.Raw,
			CreatedAt:      e.CreatedAt,
		})
		return errors.Wrap(err, "insert order")
	})
}

// Recent: последние n записей по символу, свежие первыми.
func (j *Journal) Recent(ctx context.Context, symbol string, n int32) ([]models.JournalEntry, error) {
	rows, err := j.q.LastOrders(ctx, j.tm.Conn(), &sql.LastOrdersParams{Symbol: symbol, Limit: n})
	if err != nil {
		return nil, errors.Wrap(err, "last orders")
	}

	out := make([]models.JournalEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.JournalEntry{
			Symbol:         r.Symbol,
			Signal:         models.ParseSignal(r.Signal),
			Qty:            r.Qty,
			PositionBefore: r.PositionBefore,
			PositionAfter:  r.PositionAfter,
			Status:         r.Status,
			OrderID:        r.OrderID,
			Raw:            r.Raw,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out, nil
}

// Nop: журнал без базы.
type Nop struct{}

func (Nop) Record(context.Context, models.JournalEntry) error { return nil }
