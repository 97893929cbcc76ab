package domain_test

import (
	"testing"
	"time"

	"example.com/workoutlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPaceTrend(t *testing.T) {
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 0, 5)
	// newest first, as read from the store
	sessions := []domain.Session{
		session("s2", newer, withPace("Running", 330)),
		session("s1", older, withPace("Running", 300), withPace("Running", 360)),
	}

	trend := domain.BuildPaceTrend(sessions, "Running")
	require.NotNil(t, trend)
	assert.Equal(t, "Running", trend.SportName)
	require.Len(t, trend.Series, 2)
	assert.Equal(t, older, trend.Series[0].Date)
	assert.InDelta(t, 330.0, trend.Series[0].AveragePace, 1e-9)
	assert.Equal(t, newer, trend.Series[1].Date)
	assert.InDelta(t, 330.0, trend.Series[1].AveragePace, 1e-9)
	assert.Equal(t, 300.0, trend.BestPace)
	assert.InDelta(t, 330.0, trend.MeanPace, 1e-9)
}

func TestBuildPaceTrend_OrdersByDate(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	backfilled := session("s3", day.AddDate(0, 0, -4), withPace("Running", 360))
	backfilled.CreatedAt = day.AddDate(0, 0, 3)
	sameDay := session("s2", day, withPace("Running", 320))
	sameDay.CreatedAt = day.Add(time.Hour)
	// newest created first
	sessions := []domain.Session{
		backfilled,
		sameDay,
		session("s1", day, withPace("Running", 300)),
	}

	trend := domain.BuildPaceTrend(sessions, "Running")
	require.NotNil(t, trend)
	require.Len(t, trend.Series, 3)
	assert.Equal(t, "s3", trend.Series[0].SessionID)
	assert.Equal(t, "s1", trend.Series[1].SessionID)
	assert.Equal(t, "s2", trend.Series[2].SessionID)
}

func TestBuildPaceTrend_GranularitiesDiffer(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s2", day.AddDate(0, 0, 1), withPace("Running", 400)),
		session("s1", day, withPace("Running", 280), withPace("Running", 300), withPace("Running", 320)),
	}

	trend := domain.BuildPaceTrend(sessions, "Running")
	require.NotNil(t, trend)

	var meanOfPoints float64
	for _, p := range trend.Series {
		meanOfPoints += p.AveragePace
	}
	meanOfPoints /= float64(len(trend.Series))

	assert.InDelta(t, 300.0, trend.Series[0].AveragePace, 1e-9)
	assert.Equal(t, 280.0, trend.BestPace)
	assert.InDelta(t, 325.0, trend.MeanPace, 1e-9)
	assert.InDelta(t, 350.0, meanOfPoints, 1e-9)
	assert.NotEqual(t, trend.BestPace, trend.MeanPace)
	assert.NotEqual(t, trend.MeanPace, meanOfPoints)
}

func TestBuildPaceTrend_SkipsMissingAndZeroPace(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s3", day.AddDate(0, 0, 2), domain.Activity{Name: "Running", Mode: domain.ModeDistanceTime}),
		session("s2", day.AddDate(0, 0, 1), withPace("Running", 0), withPace("Running", 310)),
		session("s1", day, withPace("Cycling", 120), duration("Running", 900)),
	}

	trend := domain.BuildPaceTrend(sessions, "Running")
	require.NotNil(t, trend)
	require.Len(t, trend.Series, 1)
	assert.Equal(t, "s2", trend.Series[0].SessionID)
	assert.Equal(t, 310.0, trend.Series[0].AveragePace)
	assert.Equal(t, 310.0, trend.BestPace)
	assert.Equal(t, 310.0, trend.MeanPace)
}

func TestBuildPaceTrend_NoData(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Nil(t, domain.BuildPaceTrend(nil, "Running"))
	assert.Nil(t, domain.BuildPaceTrend([]domain.Session{session("s1", day, withPace("Running", 0))}, "Running"))
	assert.Nil(t, domain.BuildPaceTrend([]domain.Session{session("s1", day, withPace("running", 300))}, "Running"))
}

func TestSelectPaceSport(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s3", day.AddDate(0, 0, 2), withPace("Cycling", 120), strength("Press"), strength("Press"), strength("Press")),
		session("s2", day.AddDate(0, 0, 1), withPace("Running", 300)),
		session("s1", day, withPace("Running", 310), withPace("Cycling", 125)),
	}
	assert.Equal(t, "Cycling", domain.SelectPaceSport(sessions))

	sessions = append(sessions, session("s0", day.AddDate(0, 0, -1), withPace("Running", 320)))
	assert.Equal(t, "Running", domain.SelectPaceSport(sessions))

	assert.Empty(t, domain.SelectPaceSport([]domain.Session{session("s1", day, strength("Press"))}))

	unnamed := []domain.Session{
		session("s2", day.AddDate(0, 0, 1), withPace("", 300), withPace("", 310)),
		session("s1", day, withPace("Running", 320)),
	}
	assert.Equal(t, "", domain.SelectPaceSport(unnamed))
	unnamed = append(unnamed, session("s0", day.AddDate(0, 0, -1), withPace("Running", 330), withPace("Running", 340)))
	assert.Equal(t, "Running", domain.SelectPaceSport(unnamed))
}

func TestPaceSports(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s2", day, withPace("Running", 300), duration("Yoga", 600)),
		session("s1", day, withPace("Cycling", 120), withPace("Running", 320)),
	}
	assert.Equal(t, []string{"Running", "Cycling"}, domain.PaceSports(sessions))
	assert.Equal(t, []string{}, domain.PaceSports(nil))
}
