package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventhorizon_http_requests_total",
		Help: "Requests HTTP servidos, por método y status.",
	}, []string{"method", "status"})

	EventsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventhorizon_events_submitted_total",
		Help: "Eventos propuestos vía API.",
	})

	EventsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "eventhorizon_events_approved_total",
		Help: "Eventos aprobados por moderación.",
	})
)

func ObserveHTTPRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Handler expone el registry default en /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
