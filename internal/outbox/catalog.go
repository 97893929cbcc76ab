package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"example.com/workoutlog/pkg/events"

	"github.com/jackc/pgx/v5"
)

// EventMetadata describes how to route an outbox event.
type EventMetadata struct {
	Topic         string
	SchemaSubject string
	Schema        string
}

var catalog = map[string]EventMetadata{
	events.TypeSessionRecorded: {
		Topic:         "workout_session_recorded",
		SchemaSubject: "workout_session_recorded-value",
		Schema:        sessionRecordedSchema,
	},
	events.TypeSessionDeleted: {
		Topic:         "workout_session_deleted",
		SchemaSubject: "workout_session_deleted-value",
		Schema:        sessionDeletedSchema,
	},
	events.TypeActivityDetailRecorded: {
		Topic:         "workout_activity_detail_recorded",
		SchemaSubject: "workout_activity_detail_recorded-value",
		Schema:        activityDetailRecordedSchema,
	},
}

// Lookup returns the routing metadata of eventType.
func Lookup(eventType string) (EventMetadata, bool) {
	meta, ok := catalog[eventType]
	return meta, ok
}

// Topics lists every topic the dispatcher publishes to, sorted.
func Topics() []string {
	topics := make([]string, 0, len(catalog))
	for _, meta := range catalog {
		topics = append(topics, meta.Topic)
	}
	sort.Strings(topics)
	return topics
}

// Event is a pending outbox row.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	PartitionKey  string
	Payload       any
}

// Record inserts the event in the outbox table using the caller's transaction, so the event
// is committed together with the state change it describes.
func Record(ctx context.Context, tx pgx.Tx, event Event) error {
	meta, ok := Lookup(event.EventType)
	if !ok {
		return fmt.Errorf("unknown event type: %s", event.EventType)
	}

	body, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.EventType, err)
	}

	partitionKey := event.PartitionKey
	if partitionKey == "" {
		partitionKey = event.AggregateID
	}
	dedupeKey := fmt.Sprintf("%s:%s", event.AggregateID, event.EventType)

	const stmt = `INSERT INTO outbox (aggregate_type, aggregate_id, event_type, topic, schema_subject, partition_key, payload, dedupe_key)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err = tx.Exec(ctx, stmt,
		event.AggregateType,
		event.AggregateID,
		event.EventType,
		meta.Topic,
		meta.SchemaSubject,
		partitionKey,
		body,
		dedupeKey,
	)
	return err
}
