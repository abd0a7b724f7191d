package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"live_trader/internal/models"
	"live_trader/pkg/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	id  int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*int64)) = r.id
	return nil
}

type fakeTx struct {
	execSQL  string
	queryRow []any
	rowErr   error
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = sql
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTx) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f.queryRow = args
	return fakeRow{id: 7, err: f.rowErr}
}

type fakeRunner struct {
	tx   *fakeTx
	runs int
}

func (r *fakeRunner) RunMaster(ctx context.Context, fn func(ctxTx context.Context, tx db.Transaction) error) error {
	r.runs++
	return fn(ctx, r.tx)
}

func (r *fakeRunner) Conn() db.Transaction { return r.tx }

func TestJournalRecord(t *testing.T) {
	r := &fakeRunner{tx: &fakeTx{}}
	j := New(r)
	at := time.Date(2024, 3, 1, 9, 15, 0, 0, time.UTC)

	err := j.Record(context.Background(), models.JournalEntry{
		Symbol:         "NSE:RELIANCE-EQ",
		Signal:         models.SignalSell,
		Qty:            -20,
		PositionBefore: 10,
		PositionAfter:  -20,
		Status:         "ok",
		OrderID:        "52104097616",
		Raw:            `{"s":"ok"}`,
		CreatedAt:      at,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, r.runs)
	assert.Equal(t, []any{
		"NSE:RELIANCE-EQ", "SELL", int64(-20), int64(10), int64(-20),
		"ok", "52104097616", `{"s":"ok"}`, at,
	}, r.tx.queryRow)
}

func TestJournalRecordError(t *testing.T) {
	r := &fakeRunner{tx: &fakeTx{rowErr: errors.New("relation does not exist")}}
	err := New(r).Record(context.Background(), models.JournalEntry{Signal: models.SignalBuy})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order")
}

func TestJournalMigrate(t *testing.T) {
	r := &fakeRunner{tx: &fakeTx{}}
	require.NoError(t, New(r).Migrate(context.Background()))
	assert.Contains(t, r.tx.execSQL, "CREATE TABLE IF NOT EXISTS trade_orders")
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Record(context.Background(), models.JournalEntry{}))
}
