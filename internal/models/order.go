package models

// Константы схемы ордера Fyers API v3.
const (
	OrderTypeMarket = 2

	SideBuy  = 1
	SideSell = -1

	ValidityDay = "DAY"

	ProductMargin = "MARGIN"

	StatusOK = "ok"
)

// OrderIntent: тело POST /api/v3/orders/sync. Живёт ровно одну отправку.
type OrderIntent struct {
	Symbol       string  `json:"symbol"`
	Qty          int64   `json:"qty"`
	Type         int     `json:"type"`
	Side         int     `json:"side"`
	ProductType  string  `json:"productType"`
	LimitPrice   float64 `json:"limitPrice"`
	StopPrice    float64 `json:"stopPrice"`
	DisclosedQty int64   `json:"disclosedQty"`
	Validity     string  `json:"validity"`
	OfflineOrder bool    `json:"offlineOrder"`
	OrderTag     string  `json:"orderTag"`
}

// OrderResult: подтверждение брокера. Raw: полный ответ для диагностики.
type OrderResult struct {
	Status  string `json:"s"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Raw     string `json:"-"`
}

func (r OrderResult) OK() bool { return r.Status == StatusOK }
