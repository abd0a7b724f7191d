package models

import "time"

// Tick: последний трейд по инструменту из фида.
type Tick struct {
	Symbol string
	LTP    float64
	At     time.Time
}
