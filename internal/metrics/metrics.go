package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Interceptor-side counters
	ReplayHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "replay_hits_total",
			Help: "Total number of requests served from the recorded cache",
		},
	)

	ReplayMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "replay_misses_total",
			Help: "Total number of replay-mode requests that fell through to the network",
		},
	)

	RecordedCalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recorded_calls_total",
			Help: "Total number of real network calls recorded into the cache",
		},
	)

	BypassedCalls = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bypassed_calls_total",
			Help: "Total number of requests that skipped caching entirely",
		},
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "persist_failures_total",
			Help: "Total number of failed cache persist attempts",
		},
	)

	PersistDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "persist_duration_seconds",
			Help:    "Duration of cache persist operations",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache-server side counters
	ServerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_server_requests_total",
			Help: "Total number of cache server requests",
		},
		[]string{"operation", "status"},
	)

	StoredRecordings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stored_recordings",
			Help: "Number of recordings currently held by the blob store",
		},
	)
)

// RecordReplayHit records a request served from the recorded cache
func RecordReplayHit() {
	ReplayHits.Inc()
}

// RecordReplayMiss records a replay-mode request that missed the cache
func RecordReplayMiss() {
	ReplayMisses.Inc()
}

// RecordRecordedCall records a real network call written into the cache
func RecordRecordedCall() {
	RecordedCalls.Inc()
}

// RecordBypassedCall records a request that skipped caching
func RecordBypassedCall() {
	BypassedCalls.Inc()
}

// RecordPersistFailure records a failed persist attempt
func RecordPersistFailure() {
	PersistFailures.Inc()
}

// TimePersistOperation returns a timer function for measuring persist duration
func TimePersistOperation() func() {
	timer := prometheus.NewTimer(PersistDuration)
	return func() {
		timer.ObserveDuration()
	}
}

// RecordServerRequest records a cache server request with its outcome
func RecordServerRequest(operation, status string) {
	ServerRequests.WithLabelValues(operation, status).Inc()
}

// UpdateStoredRecordings updates the stored recordings gauge
func UpdateStoredRecordings(count int) {
	StoredRecordings.Set(float64(count))
}
