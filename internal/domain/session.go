// Package domain defines the workout log model, its persistence contract and the insight
// aggregations computed over it.
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSessionNotFound is returned when a session cannot be located.
	ErrSessionNotFound = errors.New("session not found")
	// ErrActivityNotFound is returned when an activity cannot be located.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrDetailExists indicates the activity already has its detail row.
	ErrDetailExists = errors.New("activity detail already recorded")
	// ErrModeMismatch is returned when a measurement does not match the activity mode.
	ErrModeMismatch = errors.New("measurement does not match activity mode")
	// ErrInvalidMode rejects unknown mode strings.
	ErrInvalidMode = errors.New("invalid activity mode")
	// ErrInvalidMeasurement rejects out of range measurement values.
	ErrInvalidMeasurement = errors.New("invalid measurement")
	// ErrInvalidSession rejects malformed session registrations.
	ErrInvalidSession = errors.New("invalid session")
)

// DefaultSessionNote is stored when a session is registered without a note.
const DefaultSessionNote = "registro"

// Session is one logged workout. Time of day on Date carries no meaning.
type Session struct {
	ID         string
	Date       time.Time
	Note       *string
	CreatedAt  time.Time
	Activities []Activity
}

// Activity is a single sport performed in a session. Detail is nil when the detail row was
// never written.
type Activity struct {
	ID        string
	SessionID string
	Name      string
	Mode      Mode
	Position  int
	Detail    Measurement
}

// SortOrder controls session enumeration order by creation time.
type SortOrder int

const (
	NewestFirst SortOrder = iota
	OldestFirst
)

// Cursor models the session pagination token.
type Cursor struct {
	CreatedAt time.Time
	ID        string
}

// SessionFilter narrows a session read. From and To are inclusive bounds on the session
// date. Limit 0 returns every matching session.
type SessionFilter struct {
	From   *time.Time
	To     *time.Time
	Order  SortOrder
	Cursor *Cursor
	Limit  int
}

// Store captures persistence operations. Writes are atomic.
//
//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=domain_test
type Store interface {
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	ActivitiesBySession(ctx context.Context, sessionIDs []string) (map[string][]Activity, error)
	GetActivity(ctx context.Context, activityID string) (*Activity, error)
	CreateSession(ctx context.Context, session Session) error
	AddDetail(ctx context.Context, activityID string, measurement Measurement) error
	DeleteSession(ctx context.Context, sessionID string) error
}
