package domain

import (
	"context"
	"fmt"
)

// readSessions loads the sessions matching filter together with their activities and
// measurements. Session order is the store order; activity order is insertion order.
func (s *Service) readSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	sessions, err := s.store.ListSessions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	ids := make([]string, 0, len(sessions))
	for _, session := range sessions {
		ids = append(ids, session.ID)
	}

	activities, err := s.store.ActivitiesBySession(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	return assemble(sessions, activities), nil
}

// assemble attaches activities to their sessions. A measurement whose mode disagrees with
// the activity is dropped so each view only carries the fields valid for its mode.
func assemble(sessions []Session, activities map[string][]Activity) []Session {
	out := make([]Session, len(sessions))
	for i, session := range sessions {
		list := activities[session.ID]
		session.Activities = make([]Activity, 0, len(list))
		for _, activity := range list {
			if activity.Detail != nil && activity.Detail.Mode() != activity.Mode {
				activity.Detail = nil
			}
			session.Activities = append(session.Activities, activity)
		}
		out[i] = session
	}
	return out
}
