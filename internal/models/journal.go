package models

import "time"

// JournalEntry: одна строка журнала ордеров (trade_orders).
type JournalEntry struct {
	Symbol         string
	Signal         Signal
	Qty            int64
	PositionBefore int64
	PositionAfter  int64
	Status         string
	OrderID        string
	Raw            string
	CreatedAt      time.Time
}
