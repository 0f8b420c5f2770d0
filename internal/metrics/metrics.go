package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"route", "status"},
	)

	appointmentConflicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "appointment_conflicts_total",
			Help:      "Appointment writes rejected by the time-conflict check.",
		},
		[]string{"operation"},
	)

	dayCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salon_scheduler",
			Name:      "day_cache_lookups_total",
			Help:      "Day cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)
)

// Register registra as métricas. Pode ser chamado mais de uma vez.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, appointmentConflicts, dayCache)
	})
}

func IncHTTP(route string, status int) {
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func IncConflict(operation string) {
	appointmentConflicts.WithLabelValues(operation).Inc()
}

func IncDayCache(result string) {
	dayCache.WithLabelValues(result).Inc()
}
