package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the verification pipeline.
// All receivers are nil-safe so wiring metrics stays optional.
type Metrics struct {
	verifications *prometheus.CounterVec
	duration      prometheus.Histogram
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "licensure_verifications_total",
			Help: "Verification calls by terminal outcome.",
		}, []string{"outcome"}),
		duration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "licensure_verification_duration_seconds",
			Help:    "Wall time of one verification call.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licensure_verify_cache_hits_total",
			Help: "Verification results served from cache.",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "licensure_verify_cache_misses_total",
			Help: "Verification calls that had to drive the browser.",
		}),
	}
}

func (m *Metrics) ObserveVerification(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.verifications.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.cacheMisses.Inc()
}
