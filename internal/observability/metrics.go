package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionRecordedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_log",
		Subsystem: "persistence",
		Name:      "last_session_recorded_timestamp_seconds",
		Help:      "Unix timestamp of the most recent session registered.",
	})
	sessionsRecorded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "persistence",
		Name:      "sessions_recorded_total",
		Help:      "Number of sessions registered.",
	})
	sessionsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "persistence",
		Name:      "sessions_deleted_total",
		Help:      "Number of sessions deleted together with their activities.",
	})
	detailsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "persistence",
		Name:      "activity_details_recorded_total",
		Help:      "Number of activity detail rows registered, by mode.",
	}, []string{"mode"})
	insightDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "workout_log",
		Subsystem: "insights",
		Name:      "compute_duration_seconds",
		Help:      "Time spent reading and aggregating an insight.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"insight"})
	insightFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "insights",
		Name:      "failures_total",
		Help:      "Number of insight computations aborted by a read failure.",
	}, []string{"insight"})
)

func init() {
	prometheus.MustRegister(sessionRecordedGauge, sessionsRecorded, sessionsDeleted, detailsRecorded, insightDuration, insightFailures)
}

// RecordSessionRecorded updates the registration watermark gauge and counter.
func RecordSessionRecorded(ts time.Time) {
	sessionsRecorded.Inc()
	if ts.IsZero() {
		return
	}
	sessionRecordedGauge.Set(float64(ts.Unix()))
}

// RecordSessionDeleted increments the delete counter.
func RecordSessionDeleted() {
	sessionsDeleted.Inc()
}

// RecordDetailRecorded increments the detail counter for mode.
func RecordDetailRecorded(mode string) {
	detailsRecorded.WithLabelValues(mode).Inc()
}

// ObserveInsight records the latency of one insight computation and counts failures.
func ObserveInsight(insight string, started time.Time, err error) {
	insightDuration.WithLabelValues(insight).Observe(time.Since(started).Seconds())
	if err != nil {
		insightFailures.WithLabelValues(insight).Inc()
	}
}
