package service

import (
	"errors"
	"fmt"

	"live_trader/internal/models"
)

var (
	ErrNoEvaluator      = errors.New("no strategy object provided to live trader")
	ErrEvaluatorInvalid = errors.New("strategy object provided to live trader found invalid")
	ErrNoGateway        = errors.New("no broker gateway provided to live trader")
	ErrInvalidLotSize   = errors.New("lot size must be > 0")
	ErrZeroQuantity     = errors.New("order quantity must be non-zero")
	ErrOrderRejected    = errors.New("order rejected")
)

// OrderRejectedError: брокер не вернул ok (или запрос не дошёл).
// Позиция при этом не меняется.
type OrderRejectedError struct {
	Qty    int64
	Result models.OrderResult
	Err    error
}

func (e *OrderRejectedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order qty=%d rejected: %v raw=%s", e.Qty, e.Err, e.Result.Raw)
	}
	return fmt.Sprintf("order qty=%d rejected: s=%q code=%d msg=%q raw=%s",
		e.Qty, e.Result.Status, e.Result.Code, e.Result.Message, e.Result.Raw)
}

func (e *OrderRejectedError) Unwrap() error { return e.Err }

func (e *OrderRejectedError) Is(target error) bool { return target == ErrOrderRejected }
