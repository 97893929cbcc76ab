package api

import (
	"time"

	"example.com/workoutlog/internal/domain"
)

// SessionView exposes a session with its activities.
type SessionView struct {
	SessionID  string         `json:"session_id"`
	Date       time.Time      `json:"date"`
	Note       *string        `json:"note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	Activities []ActivityView `json:"activities"`
}

// ActivityView exposes one activity and its detail row, if recorded.
type ActivityView struct {
	ActivityID string      `json:"activity_id"`
	Name       string      `json:"name"`
	Mode       string      `json:"mode"`
	Position   int         `json:"position"`
	Detail     *DetailView `json:"detail"`
	Summary    string      `json:"summary"`
}

// DetailView flattens the mode-specific measurement.
type DetailView struct {
	Series           *int     `json:"series,omitempty"`
	Repetitions      *int     `json:"repetitions,omitempty"`
	WeightKg         *float64 `json:"weight_kg,omitempty"`
	DurationSeconds  *int     `json:"duration_seconds,omitempty"`
	DistanceKm       *float64 `json:"distance_km,omitempty"`
	TimeSeconds      *int     `json:"time_seconds,omitempty"`
	PaceSecondsPerKm *float64 `json:"pace_seconds_per_km,omitempty"`
}

// ListSessionsResponse packages list results.
type ListSessionsResponse struct {
	Items      []SessionView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// CreateSessionResponse describes the response body for create.
type CreateSessionResponse struct {
	SessionID  string            `json:"session_id"`
	Activities []CreatedActivity `json:"activities"`
}

// CreatedActivity carries the generated id the detail endpoint expects.
type CreatedActivity struct {
	ActivityID string `json:"activity_id"`
	Name       string `json:"name"`
	Mode       string `json:"mode"`
}

// DetailResponse echoes the stored measurement, including the derived pace.
type DetailResponse struct {
	ActivityID string      `json:"activity_id"`
	Detail     *DetailView `json:"detail"`
}

// FeedResponse is the activity feed.
type FeedResponse struct {
	Items  []FeedItemView `json:"items"`
	Counts FeedCountsView `json:"counts"`
}

// FeedItemView is one feed row.
type FeedItemView struct {
	SessionID  string    `json:"session_id"`
	ActivityID string    `json:"activity_id"`
	Name       string    `json:"name"`
	Mode       string    `json:"mode"`
	Date       time.Time `json:"date"`
	Details    string    `json:"details"`
}

// FeedCountsView tallies activities per mode, keyed like the mode filter.
type FeedCountsView struct {
	Total    int `json:"total"`
	Strength int `json:"fuerza"`
	Duration int `json:"duracion"`
	Distance int `json:"distancia"`
}

// WeeklyResponse is the weekly insight.
type WeeklyResponse struct {
	WeekStart    time.Time          `json:"week_start"`
	CurrentWeek  CurrentWeekView    `json:"current_week"`
	PreviousWeek WeekTotalsView     `json:"previous_week"`
	Comparison   WeekComparisonView `json:"comparison"`
}

// WeekTotalsView summarises one week.
type WeekTotalsView struct {
	Sessions           int `json:"sessions"`
	TotalActiveMinutes int `json:"total_active_minutes"`
}

// CurrentWeekView adds the mode distribution, as counts and whole percentages.
type CurrentWeekView struct {
	WeekTotalsView
	ActiveTime   string           `json:"active_time"`
	Distribution DistributionView `json:"distribution"`
	Percentages  DistributionView `json:"percentages"`
}

// DistributionView is keyed by mode.
type DistributionView struct {
	Strength int `json:"fuerza"`
	Duration int `json:"duracion"`
	Distance int `json:"distancia"`
}

// WeekComparisonView holds the week over week change percentages.
type WeekComparisonView struct {
	SessionsChange      int `json:"sessions_change"`
	ActiveMinutesChange int `json:"active_minutes_change"`
}

// MonthlyResponse wraps the star sport. Highlight is null for a month without activities.
type MonthlyResponse struct {
	Highlight *HighlightView `json:"highlight"`
}

// HighlightView describes the star sport.
type HighlightView struct {
	Name          string `json:"name"`
	Mode          string `json:"mode"`
	SessionsCount int    `json:"sessions_count"`
	TotalMinutes  int    `json:"total_minutes"`
	TotalTime     string `json:"total_time"`
}

// PaceResponse wraps the pace trend. Trend is null when nothing qualifies.
type PaceResponse struct {
	Trend *PaceTrendView `json:"trend"`
}

// PaceTrendView describes pace evolution oldest first.
type PaceTrendView struct {
	SportName string          `json:"sport_name"`
	Series    []PacePointView `json:"series"`
	BestPace  float64         `json:"best_pace"`
	MeanPace  float64         `json:"mean_pace"`
	Best      string          `json:"best"`
	Mean      string          `json:"mean"`
}

// PacePointView is one session average.
type PacePointView struct {
	SessionID   string    `json:"session_id"`
	Date        time.Time `json:"date"`
	AveragePace float64   `json:"average_pace"`
	Pace        string    `json:"pace"`
}

// PaceSportsResponse lists the sports the pace trend can be asked for.
type PaceSportsResponse struct {
	Sports []string `json:"sports"`
}

func toSessionView(session domain.Session) SessionView {
	view := SessionView{
		SessionID:  session.ID,
		Date:       session.Date,
		Note:       session.Note,
		CreatedAt:  session.CreatedAt,
		Activities: make([]ActivityView, 0, len(session.Activities)),
	}
	for _, activity := range session.Activities {
		view.Activities = append(view.Activities, ActivityView{
			ActivityID: activity.ID,
			Name:       activity.Name,
			Mode:       string(activity.Mode),
			Position:   activity.Position,
			Detail:     toDetailView(activity.Detail),
			Summary:    domain.DescribeMeasurement(activity.Detail),
		})
	}
	return view
}

func toDetailView(m domain.Measurement) *DetailView {
	switch v := m.(type) {
	case domain.Strength:
		return &DetailView{Series: &v.Series, Repetitions: &v.Repetitions, WeightKg: &v.WeightKg}
	case domain.Duration:
		return &DetailView{DurationSeconds: &v.Seconds}
	case domain.DistanceTime:
		return &DetailView{DistanceKm: &v.DistanceKm, TimeSeconds: &v.TimeSeconds, PaceSecondsPerKm: &v.PaceSecondsPerKm}
	}
	return nil
}

func toFeedView(feed domain.Feed) FeedResponse {
	resp := FeedResponse{
		Items: make([]FeedItemView, 0, len(feed.Items)),
		Counts: FeedCountsView{
			Total:    feed.Counts.Total,
			Strength: feed.Counts.Strength,
			Duration: feed.Counts.Duration,
			Distance: feed.Counts.Distance,
		},
	}
	for _, item := range feed.Items {
		resp.Items = append(resp.Items, FeedItemView{
			SessionID:  item.SessionID,
			ActivityID: item.ActivityID,
			Name:       item.Name,
			Mode:       string(item.Mode),
			Date:       item.Date,
			Details:    item.Details,
		})
	}
	return resp
}

func toWeeklyView(insight domain.WeeklyInsight) WeeklyResponse {
	current := insight.CurrentWeek
	comparison := insight.Comparison()
	return WeeklyResponse{
		WeekStart: insight.WeekStart,
		CurrentWeek: CurrentWeekView{
			WeekTotalsView: WeekTotalsView{
				Sessions:           current.Sessions,
				TotalActiveMinutes: current.TotalActiveMinutes,
			},
			ActiveTime:   domain.FormatMinutes(current.TotalActiveMinutes),
			Distribution: toDistributionView(current.Distribution),
			Percentages:  toDistributionView(current.Distribution.Percentages()),
		},
		PreviousWeek: WeekTotalsView{
			Sessions:           insight.PreviousWeek.Sessions,
			TotalActiveMinutes: insight.PreviousWeek.TotalActiveMinutes,
		},
		Comparison: WeekComparisonView{
			SessionsChange:      comparison.SessionsChange,
			ActiveMinutesChange: comparison.ActiveMinutesChange,
		},
	}
}

func toDistributionView(d domain.ModeDistribution) DistributionView {
	return DistributionView{Strength: d.Strength, Duration: d.Duration, Distance: d.Distance}
}

func toPaceView(trend domain.PaceTrend) PaceTrendView {
	view := PaceTrendView{
		SportName: trend.SportName,
		Series:    make([]PacePointView, 0, len(trend.Series)),
		BestPace:  trend.BestPace,
		MeanPace:  trend.MeanPace,
		Best:      domain.FormatPace(trend.BestPace),
		Mean:      domain.FormatPace(trend.MeanPace),
	}
	for _, point := range trend.Series {
		view.Series = append(view.Series, PacePointView{
			SessionID:   point.SessionID,
			Date:        point.Date,
			AveragePace: point.AveragePace,
			Pace:        domain.FormatPace(point.AveragePace),
		})
	}
	return view
}
