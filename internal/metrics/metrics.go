package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	STKPushTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kopesha",
			Name:      "stk_push_total",
			Help:      "Verification-fee push initiations by result",
		},
		[]string{"result"},
	)

	CallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kopesha",
			Name:      "callbacks_total",
			Help:      "Gateway callbacks reconciled by mapped status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(STKPushTotal, CallbacksTotal)
}

func IncSTKPush(result string)  { STKPushTotal.WithLabelValues(result).Inc() }
func IncCallback(status string) { CallbacksTotal.WithLabelValues(status).Inc() }
