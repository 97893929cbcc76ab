package outbox

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// DLQ outcomes, used as the outcome label of dlqOutcomes.
const (
	outcomeRequeued    = "requeued"
	outcomeQuarantined = "quarantined"
	outcomeRetryLater  = "retry_scheduled"
)

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "outbox",
		Name:      "events_delivered_total",
		Help:      "Workout events published to Kafka.",
	})
	failedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "outbox",
		Name:      "events_failed_total",
		Help:      "Workout events whose publish failed and were parked in outbox_dlq.",
	})
	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "workout_log",
		Subsystem: "outbox",
		Name:      "batch_duration_seconds",
		Help:      "Duration of one claim, publish and mark cycle.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
	dlqCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "outbox",
		Name:      "events_dlq_total",
		Help:      "Workout events parked in outbox_dlq, by topic.",
	}, []string{"topic"})

	dlqOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workout_log",
		Subsystem: "dlq",
		Name:      "entries_total",
		Help:      "DLQ entries handled by the manager, by topic, event type and outcome.",
	}, []string{"topic", "event_type", "outcome"})
	dlqBacklogGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "workout_log",
		Subsystem: "dlq",
		Name:      "backlog",
		Help:      "DLQ entries neither replayed nor quarantined.",
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, batchDuration, dlqCounter, dlqOutcomes, dlqBacklogGauge)
}

func recordDLQOutcome(entry dlqEntry, outcome string) {
	dlqOutcomes.WithLabelValues(entry.Topic, entry.EventType, outcome).Inc()
}

func updateBacklogGauge(ctx context.Context, pool *pgxpool.Pool) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox_dlq WHERE quarantined_at IS NULL`).Scan(&count); err != nil {
		log.Warnf("dlq backlog gauge: %s", err)
		return
	}
	dlqBacklogGauge.Set(float64(count))
}
