package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TradesTotal counts settled trades, partitioned by side.
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footstocks_trades_total",
		Help: "Total number of trades settled",
	}, []string{"side"})

	// TradeRejections counts settlement precondition failures.
	TradeRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footstocks_trade_rejections_total",
		Help: "Trades rejected before any mutation",
	}, []string{"reason"})

	// TradeLatency tracks settlement latency in seconds.
	TradeLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "footstocks_trade_latency_seconds",
		Help:    "Trade settlement latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"side"})

	// WebSocketClients tracks connected ticker clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "footstocks_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// PriceUpdatesTotal counts price updates consumed from the queue.
	PriceUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "footstocks_price_updates_total",
		Help: "Price updates consumed and broadcast",
	})

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "footstocks_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "footstocks_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration per route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// URL path keeps cardinality low enough here: no ids in routes.
		path := r.URL.Path
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
