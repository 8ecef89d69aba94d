package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_requests_total",
		Help: "Notification requests by backend and outcome.",
	}, []string{"backend", "status"})

	deliveryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notify_delivery_duration_seconds",
		Help:    "Time from backend invocation to completion.",
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"backend"})
)

// ObserveDelivery records one resolved request.
func ObserveDelivery(backend, status string, took time.Duration) {
	notificationsTotal.WithLabelValues(backend, status).Inc()
	deliveryDuration.WithLabelValues(backend).Observe(took.Seconds())
}
