package models

// Signal: закрытое множество сигналов стратегии: NONE / BUY / SELL.
// Нулевое значение: SignalNone, так что «пустой» ответ стратегии безопасен.
type Signal int

const (
	SignalNone Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "NONE"
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// Valid: true только для значений из закрытого множества.
func (s Signal) Valid() bool {
	switch s {
	case SignalNone, SignalBuy, SignalSell:
		return true
	}
	return false
}

// ParseSignal: обратное к String; всё незнакомое даёт SignalNone.
func ParseSignal(s string) Signal {
	switch s {
	case "BUY":
		return SignalBuy
	case "SELL":
		return SignalSell
	default:
		return SignalNone
	}
}
