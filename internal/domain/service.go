package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"example.com/workoutlog/internal/observability"
	"example.com/workoutlog/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Service orchestrates workout log writes and insight reads. Every insight performs its own
// filtered read; nothing is cached between calls.
type Service struct {
	store Store
	now   func() time.Time
	loc   *time.Location
}

// Option customises Service construction.
type Option func(*Service)

// WithClock overrides the wall clock used for windows and defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone used for week and month boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService constructs a Service.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is the time zone used for calendar boundaries.
func (s *Service) Location() *time.Location {
	return s.loc
}

// NewActivity names one activity of a session registration.
type NewActivity struct {
	Name string
	Mode Mode
}

// RecordSessionInput captures a session registration from the API layer.
type RecordSessionInput struct {
	Date       *time.Time
	Note       *string
	Activities []NewActivity
}

// RecordSession registers a session and its activities atomically. Detail rows are
// recorded later through RecordDetail.
func (s *Service) RecordSession(ctx context.Context, input RecordSessionInput) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recordSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if len(input.Activities) == 0 {
		return nil, fmt.Errorf("%w: at least one activity is required", ErrInvalidSession)
	}

	now := s.now()
	session := Session{
		ID:         uuid.NewString(),
		Date:       now,
		CreatedAt:  now.UTC(),
		Activities: make([]Activity, 0, len(input.Activities)),
	}
	if input.Date != nil {
		session.Date = *input.Date
	}
	note := DefaultSessionNote
	if input.Note != nil && strings.TrimSpace(*input.Note) != "" {
		note = *input.Note
	}
	session.Note = &note

	for i, a := range input.Activities {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: activity %d has no name", ErrInvalidSession, i)
		}
		mode, err := ParseMode(string(a.Mode))
		if err != nil {
			return nil, err
		}
		session.Activities = append(session.Activities, Activity{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Name:      name,
			Mode:      mode,
			Position:  i,
		})
	}
	span.SetAttributes(attribute.String("session.id", session.ID), attribute.Int("session.activities", len(session.Activities)))

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	observability.RecordSessionRecorded(session.CreatedAt)
	return &session, nil
}

// RecordDetail attaches the measurement to an activity. The measurement must match the
// activity mode and each activity accepts a single detail row. The pace of a distance+time
// measurement is always derived here.
func (s *Service) RecordDetail(ctx context.Context, activityID string, m Measurement) (_ Measurement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recordDetail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("activity.id", activityID))

	if err := Validate(m); err != nil {
		return nil, err
	}
	if dt, ok := m.(DistanceTime); ok {
		m = NewDistanceTime(dt.DistanceKm, dt.TimeSeconds)
	}

	activity, err := s.store.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if activity.Mode != m.Mode() {
		return nil, fmt.Errorf("%w: activity is %s, got %s", ErrModeMismatch, activity.Mode, m.Mode())
	}

	if err := s.store.AddDetail(ctx, activityID, m); err != nil {
		return nil, fmt.Errorf("add detail: %w", err)
	}
	observability.RecordDetailRecorded(string(m.Mode()))
	return m, nil
}

// DeleteSession removes a session with its activities and detail rows.
func (s *Service) DeleteSession(ctx context.Context, sessionID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.deleteSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	if err := s.store.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	observability.RecordSessionDeleted()
	return nil
}

// ListSessions returns sessions newest first with their activities. A zero limit returns
// every session. The returned cursor is nil on the last page.
func (s *Service) ListSessions(ctx context.Context, cursor *Cursor, limit int) (_ []Session, _ *Cursor, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.listSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	filter := SessionFilter{Order: NewestFirst, Cursor: cursor}
	if limit > 0 {
		filter.Limit = limit + 1
	}
	sessions, err := s.readSessions(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
		last := sessions[len(sessions)-1]
		next = &Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return sessions, next, nil
}

// ActivityFeed lists every logged activity, newest session first.
func (s *Service) ActivityFeed(ctx context.Context, filter FeedFilter) (_ *Feed, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activityFeed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if filter.Mode != "" && filter.Mode != FeedAllModes {
		if _, err := ParseMode(filter.Mode); err != nil {
			return nil, err
		}
	}

	sessions, err := s.readSessions(ctx, SessionFilter{Order: NewestFirst})
	if err != nil {
		return nil, err
	}
	feed := BuildFeed(sessions, filter)
	return &feed, nil
}

// WeeklyInsight summarises the current Monday aligned week and compares it with the
// previous one.
func (s *Service) WeeklyInsight(ctx context.Context) (_ *WeeklyInsight, err error) {
	started := time.Now()
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.weeklyInsight")
	defer func() {
		observability.ObserveInsight("weekly", started, err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := s.now()
	curFrom, curTo := WeekRange(now, 0, s.loc)
	prevFrom, prevTo := WeekRange(now, 1, s.loc)

	current, err := s.readSessions(ctx, SessionFilter{From: &curFrom, To: &curTo, Order: NewestFirst})
	if err != nil {
		return nil, fmt.Errorf("current week: %w", err)
	}
	previous, err := s.readSessions(ctx, SessionFilter{From: &prevFrom, To: &prevTo, Order: NewestFirst})
	if err != nil {
		return nil, fmt.Errorf("previous week: %w", err)
	}

	insight := &WeeklyInsight{
		WeekStart:    curFrom,
		CurrentWeek:  SummarizeWeek(current),
		PreviousWeek: SummarizeWeek(previous).WeekTotals,
	}
	span.SetAttributes(attribute.Int("week.sessions", insight.CurrentWeek.Sessions))
	return insight, nil
}

// MonthlyHighlight returns the star sport of the current calendar month, or nil when the
// month has no activities.
func (s *Service) MonthlyHighlight(ctx context.Context) (_ *MonthlyHighlight, err error) {
	started := time.Now()
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.monthlyHighlight")
	defer func() {
		observability.ObserveInsight("monthly", started, err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	from, to := MonthRange(s.now(), s.loc)
	sessions, err := s.readSessions(ctx, SessionFilter{From: &from, To: &to, Order: OldestFirst})
	if err != nil {
		return nil, err
	}
	return StarSport(sessions), nil
}

// PaceTrend returns the pace evolution of sport over the trailing 30 days. An empty sport
// selects the distance+time sport logged most often in the window. It returns nil when no
// session qualifies.
func (s *Service) PaceTrend(ctx context.Context, sport string) (_ *PaceTrend, err error) {
	started := time.Now()
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.paceTrend")
	defer func() {
		observability.ObserveInsight("pace", started, err)
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.paceWindow(ctx)
	if err != nil {
		return nil, err
	}

	sport = strings.TrimSpace(sport)
	if sport == "" {
		sport = SelectPaceSport(sessions)
		if sport == "" {
			return nil, nil
		}
	}
	span.SetAttributes(attribute.String("pace.sport", sport))
	return BuildPaceTrend(sessions, sport), nil
}

// PaceSports lists the distance+time sports logged in the trailing 30 days.
func (s *Service) PaceSports(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.paceSports")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessions, err := s.paceWindow(ctx)
	if err != nil {
		return nil, err
	}
	return PaceSports(sessions), nil
}

func (s *Service) paceWindow(ctx context.Context) ([]Session, error) {
	to := s.now()
	from := to.Add(-PaceWindow)
	return s.readSessions(ctx, SessionFilter{From: &from, To: &to, Order: NewestFirst})
}
