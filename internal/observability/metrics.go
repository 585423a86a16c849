package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	GenerationsTotal *prometheus.CounterVec
	BatchDuration    prometheus.Histogram
	BatchSize        prometheus.Histogram
	SessionsCreated  prometheus.Counter
	FavoriteToggles  prometheus.Counter
	ExportsTotal     *prometheus.CounterVec
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		GenerationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Generation attempts by provider and outcome.",
		}, []string{"provider", "outcome"}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall-clock duration of whole batch calls in seconds.",
			Buckets:   []float64{1, 2, 5, 10, 20, 40, 60, 120},
		}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size_voices",
			Help:      "Number of voices requested per batch.",
			Buckets:   []float64{1, 2, 3, 5, 8, 12, 20, 30},
		}),
		SessionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Sessions created.",
		}),
		FavoriteToggles: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "favorite_toggles_total",
			Help:      "Favorite toggle operations.",
		}),
		ExportsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Favorites exports by outcome.",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveBatch(size int, d time.Duration) {
	m.BatchSize.Observe(float64(size))
	m.BatchDuration.Observe(d.Seconds())
}

func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
