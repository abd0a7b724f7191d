package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trader_ticks_total", Help: "Market ticks dispatched to the trader"},
		[]string{"symbol"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trader_signals_total", Help: "Signals evaluated by the trader"},
		[]string{"signal"},
	)
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trader_orders_total", Help: "Orders submitted to the broker"},
		[]string{"side", "status"},
	)
	NetPosition = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "trader_net_position", Help: "Net position assumed after the last acknowledged order"},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, SignalsTotal, OrdersTotal, NetPosition)
}

// Handler: /metrics для health-мукса.
func Handler() http.Handler {
	return promhttp.Handler()
}
