package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConnectionsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "codeshare_connections_open",
		Help: "Live WebSocket connections.",
	})

	RoomsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codeshare_rooms_created_total",
		Help: "Rooms created since process start.",
	})

	BroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codeshare_broadcasts_total",
		Help: "Buffer updates fanned out to room peers.",
	})
)

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
