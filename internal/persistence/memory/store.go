// Package memory keeps the workout log in process memory for local development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"example.com/workoutlog/internal/domain"
)

// Store implements domain.Store with maps guarded by a RWMutex. Writes are atomic because
// they run under the write lock.
type Store struct {
	mu         sync.RWMutex
	sessions   map[string]domain.Session
	activities map[string]domain.Activity
	bySession  map[string][]string
	details    map[string]domain.Measurement
}

var _ domain.Store = (*Store)(nil)

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		sessions:   make(map[string]domain.Session),
		activities: make(map[string]domain.Activity),
		bySession:  make(map[string][]string),
		details:    make(map[string]domain.Measurement),
	}
}

// ListSessions implements domain.Store.
func (s *Store) ListSessions(ctx context.Context, filter domain.SessionFilter) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		if filter.From != nil && session.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && session.Date.After(*filter.To) {
			continue
		}
		if filter.Cursor != nil {
			c := compareKey(session, *filter.Cursor)
			if filter.Order == domain.OldestFirst && c <= 0 {
				continue
			}
			if filter.Order == domain.NewestFirst && c >= 0 {
				continue
			}
		}
		session.Activities = nil
		out = append(out, session)
	}

	sort.Slice(out, func(i, j int) bool {
		c := compareKey(out[i], domain.Cursor{CreatedAt: out[j].CreatedAt, ID: out[j].ID})
		if filter.Order == domain.OldestFirst {
			return c < 0
		}
		return c > 0
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// ActivitiesBySession implements domain.Store.
func (s *Store) ActivitiesBySession(ctx context.Context, sessionIDs []string) (map[string][]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]domain.Activity, len(sessionIDs))
	for _, sessionID := range sessionIDs {
		ids, ok := s.bySession[sessionID]
		if !ok {
			continue
		}
		list := make([]domain.Activity, 0, len(ids))
		for _, id := range ids {
			list = append(list, s.activityLocked(id))
		}
		out[sessionID] = list
	}
	return out, nil
}

// GetActivity implements domain.Store.
func (s *Store) GetActivity(ctx context.Context, activityID string) (*domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.activities[activityID]; !ok {
		return nil, nil
	}
	activity := s.activityLocked(activityID)
	return &activity, nil
}

// CreateSession implements domain.Store.
func (s *Store) CreateSession(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return domain.ErrInvalidSession
	}
	for _, activity := range session.Activities {
		if _, exists := s.activities[activity.ID]; exists {
			return domain.ErrInvalidSession
		}
	}

	ids := make([]string, 0, len(session.Activities))
	for _, activity := range session.Activities {
		activity.SessionID = session.ID
		activity.Detail = nil
		s.activities[activity.ID] = activity
		ids = append(ids, activity.ID)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		return s.activities[ids[i]].Position < s.activities[ids[j]].Position
	})

	if session.Note != nil {
		note := *session.Note
		session.Note = &note
	}
	session.Activities = nil
	s.sessions[session.ID] = session
	s.bySession[session.ID] = ids
	return nil
}

// AddDetail implements domain.Store.
func (s *Store) AddDetail(ctx context.Context, activityID string, measurement domain.Measurement) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[activityID]; !ok {
		return domain.ErrActivityNotFound
	}
	if _, exists := s.details[activityID]; exists {
		return domain.ErrDetailExists
	}
	s.details[activityID] = measurement
	return nil
}

// DeleteSession implements domain.Store.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	for _, id := range s.bySession[sessionID] {
		delete(s.details, id)
		delete(s.activities, id)
	}
	delete(s.bySession, sessionID)
	delete(s.sessions, sessionID)
	return nil
}

func (s *Store) activityLocked(id string) domain.Activity {
	activity := s.activities[id]
	if detail, ok := s.details[id]; ok && detail.Mode() == activity.Mode {
		activity.Detail = detail
	}
	return activity
}

func compareKey(session domain.Session, c domain.Cursor) int {
	switch {
	case session.CreatedAt.Before(c.CreatedAt):
		return -1
	case session.CreatedAt.After(c.CreatedAt):
		return 1
	}
	return strings.Compare(session.ID, c.ID)
}
