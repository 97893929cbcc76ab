package domain_test

import (
	"testing"
	"time"

	"example.com/workoutlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarSport_FirstSeenWinsTie(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s1", day, distance("Running", 5, 1500)),
		session("s2", day.AddDate(0, 0, 1), duration("Yoga", 1800), distance("Running", 5, 1500)),
		session("s3", day.AddDate(0, 0, 2), duration("Yoga", 1800)),
		session("s4", day.AddDate(0, 0, 3), duration("Yoga", 1800), distance("Running", 10, 3000)),
	}

	got := domain.StarSport(sessions)
	require.NotNil(t, got)
	assert.Equal(t, "Running", got.Name)
	assert.Equal(t, domain.ModeDistanceTime, got.Mode)
	assert.Equal(t, 3, got.SessionsCount)
	assert.Equal(t, 25+25+50, got.TotalMinutes)
}

func TestStarSport_StrictMaximum(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s1", day, strength("Press")),
		session("s2", day, duration("Swim", 900), duration("Swim", 960)),
	}

	got := domain.StarSport(sessions)
	require.NotNil(t, got)
	assert.Equal(t, "Swim", got.Name)
	assert.Equal(t, 2, got.SessionsCount)
	assert.Equal(t, 31, got.TotalMinutes)
}

func TestStarSport_ModeOfFirstInstance(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	sessions := []domain.Session{
		session("s1", day, duration("Cross", 600)),
		session("s2", day, strength("Cross")),
	}

	got := domain.StarSport(sessions)
	require.NotNil(t, got)
	assert.Equal(t, domain.ModeDuration, got.Mode)
	assert.Equal(t, 10+45, got.TotalMinutes)
}

func TestStarSport_NoActivities(t *testing.T) {
	assert.Nil(t, domain.StarSport(nil))
	assert.Nil(t, domain.StarSport([]domain.Session{session("s1", time.Now())}))
}
