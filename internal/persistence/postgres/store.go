package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"example.com/workoutlog/internal/domain"
	"example.com/workoutlog/internal/outbox"
	"example.com/workoutlog/internal/persistence"
	"example.com/workoutlog/internal/telemetry/tracing"
	"example.com/workoutlog/pkg/events"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Store provides Postgres-backed persistence for sessions, activities, detail rows and
// outbox events.
type Store struct {
	pool *pgxpool.Pool
}

var _ domain.Store = (*Store)(nil)

// NewStore constructs a Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ListSessions returns the sessions matching filter without their activities.
func (s *Store) ListSessions(ctx context.Context, filter domain.SessionFilter) (_ []domain.Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.listSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.From != nil {
		conds = append(conds, "date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "date <= "+arg(*filter.To))
	}

	direction, cmp := "DESC", "<"
	if filter.Order == domain.OldestFirst {
		direction, cmp = "ASC", ">"
	}
	if filter.Cursor != nil {
		conds = append(conds, fmt.Sprintf("(created_at, id) %s (%s, %s::uuid)", cmp, arg(filter.Cursor.CreatedAt), arg(filter.Cursor.ID)))
	}

	query := `SELECT id, date, note, created_at FROM sessions`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at %s, id %s", direction, direction)
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var session domain.Session
		if err := rows.Scan(&session.ID, &session.Date, &session.Note, &session.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))
	return sessions, nil
}

const activityColumns = `a.id, a.session_id, a.sport, a.mode, a.position,
        sd.activity_id IS NOT NULL, sd.series, sd.repetitions, sd.weight_kg,
        dd.activity_id IS NOT NULL, dd.seconds,
        td.activity_id IS NOT NULL, td.distance_km, td.time_seconds, td.pace_seconds_per_km
    FROM activities a
    LEFT JOIN strength_details sd ON sd.activity_id = a.id
    LEFT JOIN duration_details dd ON dd.activity_id = a.id
    LEFT JOIN distance_details td ON td.activity_id = a.id`

// ActivitiesBySession loads the activities of the given sessions with their detail rows in
// a single query, keyed by session id and ordered by position.
func (s *Store) ActivitiesBySession(ctx context.Context, sessionIDs []string) (_ map[string][]domain.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.activitiesBySession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sessions.count", len(sessionIDs)))

	result := make(map[string][]domain.Activity, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return result, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+activityColumns+`
        WHERE a.session_id = ANY($1::uuid[])
        ORDER BY a.session_id, a.position`,
		sessionIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		result[activity.SessionID] = append(result[activity.SessionID], activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetActivity returns nil when the activity does not exist.
func (s *Store) GetActivity(ctx context.Context, activityID string) (_ *domain.Activity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.getActivity")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))

	row := s.pool.QueryRow(ctx, `SELECT `+activityColumns+` WHERE a.id = $1`, activityID)
	activity, err := scanActivity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || persistence.IsInvalidTextRepresentationError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

// CreateSession persists the session, its activities and the session.recorded event inside
// a single transaction.
func (s *Store) CreateSession(ctx context.Context, session domain.Session) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.createSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", session.ID))

	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sessions (id, date, note, created_at) VALUES ($1,$2,$3,$4)`,
			session.ID, session.Date, session.Note, session.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		recorded := make([]events.RecordedActivity, 0, len(session.Activities))
		for _, activity := range session.Activities {
			if _, err := tx.Exec(ctx,
				`INSERT INTO activities (id, session_id, mode, sport, position) VALUES ($1,$2,$3,$4,$5)`,
				activity.ID, session.ID, string(activity.Mode), activity.Name, activity.Position,
			); err != nil {
				return fmt.Errorf("insert activity %d: %w", activity.Position, err)
			}
			recorded = append(recorded, events.RecordedActivity{
				ActivityID: activity.ID,
				Name:       activity.Name,
				Mode:       string(activity.Mode),
				Position:   activity.Position,
			})
		}

		return outbox.Record(ctx, tx, outbox.Event{
			AggregateType: "session",
			AggregateID:   session.ID,
			EventType:     events.TypeSessionRecorded,
			Payload: events.SessionRecorded{
				SessionID:  session.ID,
				Date:       session.Date,
				Note:       session.Note,
				Activities: recorded,
				CreatedAt:  session.CreatedAt,
			},
		})
	})
}

// AddDetail inserts the detail row matching the measurement mode together with its outbox
// event. A second detail for the same activity yields domain.ErrDetailExists.
func (s *Store) AddDetail(ctx context.Context, activityID string, measurement domain.Measurement) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.addDetail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))

	payload := events.ActivityDetailRecorded{ActivityID: activityID, OccurredAt: time.Now().UTC()}
	var (
		stmt string
		args []any
	)
	switch m := measurement.(type) {
	case domain.Strength:
		stmt = `INSERT INTO strength_details (activity_id, series, repetitions, weight_kg) VALUES ($1,$2,$3,$4)`
		args = []any{activityID, m.Series, m.Repetitions, m.WeightKg}
		payload.Series, payload.Repetitions, payload.WeightKg = &m.Series, &m.Repetitions, &m.WeightKg
	case domain.Duration:
		stmt = `INSERT INTO duration_details (activity_id, seconds) VALUES ($1,$2)`
		args = []any{activityID, m.Seconds}
		payload.Seconds = &m.Seconds
	case domain.DistanceTime:
		stmt = `INSERT INTO distance_details (activity_id, distance_km, time_seconds, pace_seconds_per_km) VALUES ($1,$2,$3,$4)`
		args = []any{activityID, m.DistanceKm, m.TimeSeconds, m.PaceSecondsPerKm}
		payload.DistanceKm, payload.TimeSeconds, payload.PaceSecondsPerKm = &m.DistanceKm, &m.TimeSeconds, &m.PaceSecondsPerKm
	default:
		return fmt.Errorf("%w: unsupported measurement %T", domain.ErrInvalidMeasurement, measurement)
	}
	payload.Mode = string(measurement.Mode())

	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, stmt, args...); err != nil {
			return err
		}
		return outbox.Record(ctx, tx, outbox.Event{
			AggregateType: "activity",
			AggregateID:   activityID,
			EventType:     events.TypeActivityDetailRecorded,
			Payload:       payload,
		})
	})
	switch {
	case persistence.IsUniqueViolationError(err):
		return domain.ErrDetailExists
	case persistence.IsForeignKeyViolationError(err), persistence.IsInvalidTextRepresentationError(err):
		return domain.ErrActivityNotFound
	}
	return err
}

// DeleteSession removes the detail rows, activities and session row in one transaction and
// records the session.deleted event.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.postgres.deleteSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		for _, table := range []string{"strength_details", "duration_details", "distance_details"} {
			if _, err := tx.Exec(ctx,
				`DELETE FROM `+table+` WHERE activity_id IN (SELECT id FROM activities WHERE session_id = $1)`,
				sessionID,
			); err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}
		if _, err := tx.Exec(ctx, `DELETE FROM activities WHERE session_id = $1`, sessionID); err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}

		tag, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrSessionNotFound
		}

		return outbox.Record(ctx, tx, outbox.Event{
			AggregateType: "session",
			AggregateID:   sessionID,
			EventType:     events.TypeSessionDeleted,
			Payload:       events.SessionDeleted{SessionID: sessionID, OccurredAt: time.Now().UTC()},
		})
	})
	if persistence.IsInvalidTextRepresentationError(err) {
		return domain.ErrSessionNotFound
	}
	return err
}

func scanActivity(row pgx.Row) (domain.Activity, error) {
	var (
		activity                              domain.Activity
		mode                                  string
		hasStrength, hasDuration, hasDistance bool
		series, repetitions, seconds, timeSec *int
		weight, distanceKm, pace              *float64
	)
	if err := row.Scan(
		&activity.ID, &activity.SessionID, &activity.Name, &mode, &activity.Position,
		&hasStrength, &series, &repetitions, &weight,
		&hasDuration, &seconds,
		&hasDistance, &distanceKm, &timeSec, &pace,
	); err != nil {
		return domain.Activity{}, err
	}
	activity.Mode = domain.Mode(mode)

	// only the table matching the mode is consulted
	switch activity.Mode {
	case domain.ModeStrength:
		if hasStrength {
			activity.Detail = domain.Strength{Series: deref(series), Repetitions: deref(repetitions), WeightKg: deref(weight)}
		}
	case domain.ModeDuration:
		if hasDuration {
			activity.Detail = domain.Duration{Seconds: deref(seconds)}
		}
	case domain.ModeDistanceTime:
		if hasDistance {
			activity.Detail = domain.DistanceTime{DistanceKm: deref(distanceKm), TimeSeconds: deref(timeSec), PaceSecondsPerKm: deref(pace)}
		}
	}
	return activity, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
