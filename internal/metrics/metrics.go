// file: internal/metrics/metrics.go
// version: 1.1.0
// guid: a3cc2c88-3dcc-4fd2-ad32-185dcfa5e83f

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchStarted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice_directory",
		Name:      "searches_started_total",
		Help:      "Total number of searches started by search type",
	}, []string{"type"})
	searchCompleted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice_directory",
		Name:      "searches_completed_total",
		Help:      "Total number of searches successfully completed by search type",
	}, []string{"type"})
	searchFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice_directory",
		Name:      "searches_failed_total",
		Help:      "Total number of searches failed by search type",
	}, []string{"type"})
	searchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "practice_directory",
		Name:      "search_duration_seconds",
		Help:      "Histogram of search durations in seconds by search type",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // ~1ms up to a few seconds
	}, []string{"type"})
	candidatesScored = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "practice_directory",
		Name:      "search_candidates_scored",
		Help:      "Histogram of candidate-set sizes that reached the scoring pass",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1 up to 512
	}, []string{"type"})

	practicesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "practice_directory",
		Name:      "practices_total",
		Help:      "Current total number of practice records in the directory",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchStarted, searchCompleted, searchFailed,
			searchDuration, candidatesScored, practicesGauge)
	})
}

// Search lifecycle helpers
func IncSearchStarted(searchType string)   { searchStarted.WithLabelValues(searchType).Inc() }
func IncSearchCompleted(searchType string) { searchCompleted.WithLabelValues(searchType).Inc() }
func IncSearchFailed(searchType string)    { searchFailed.WithLabelValues(searchType).Inc() }
func ObserveSearchDuration(searchType string, d time.Duration) {
	searchDuration.WithLabelValues(searchType).Observe(d.Seconds())
}
func ObserveCandidatesScored(searchType string, n int) {
	candidatesScored.WithLabelValues(searchType).Observe(float64(n))
}

// Gauges
func SetPractices(n int) { practicesGauge.Set(float64(n)) }
