// Package events defines the workout log event payloads published through the outbox.
package events

import "time"

const (
	TypeSessionRecorded        = "session.recorded"
	TypeSessionDeleted         = "session.deleted"
	TypeActivityDetailRecorded = "activity.detail_recorded"
)

// SessionRecorded is emitted when a session and its activities are registered.
type SessionRecorded struct {
	SessionID  string             `json:"session_id"`
	Date       time.Time          `json:"date"`
	Note       *string            `json:"note,omitempty"`
	Activities []RecordedActivity `json:"activities"`
	CreatedAt  time.Time          `json:"created_at"`
}

// RecordedActivity is one activity of a SessionRecorded event.
type RecordedActivity struct {
	ActivityID string `json:"activity_id"`
	Name       string `json:"name"`
	Mode       string `json:"mode"`
	Position   int    `json:"position"`
}

// SessionDeleted is emitted once a session and everything under it has been removed.
type SessionDeleted struct {
	SessionID  string    `json:"session_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityDetailRecorded carries the measurement attached to an activity. Only the fields of
// the activity mode are set.
type ActivityDetailRecorded struct {
	ActivityID       string    `json:"activity_id"`
	Mode             string    `json:"mode"`
	Series           *int      `json:"series,omitempty"`
	Repetitions      *int      `json:"repetitions,omitempty"`
	WeightKg         *float64  `json:"weight_kg,omitempty"`
	Seconds          *int      `json:"seconds,omitempty"`
	DistanceKm       *float64  `json:"distance_km,omitempty"`
	TimeSeconds      *int      `json:"time_seconds,omitempty"`
	PaceSecondsPerKm *float64  `json:"pace_seconds_per_km,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
