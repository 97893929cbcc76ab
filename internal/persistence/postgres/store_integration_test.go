//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"example.com/workoutlog/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupStore(t *testing.T) (*Store, *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("workouts"),
		postgrescontainer.WithUsername("workouts"),
		postgrescontainer.WithPassword("workouts"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, waitForDatabase(ctx, connStr))

	runMigrations(t, ctx, connStr)

	pool, err := NewPool(ctx, NewPoolParams{URL: connStr})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewStore(pool), pool
}

func fakeSession(createdAt time.Time, modes ...domain.Mode) domain.Session {
	note := gofakeit.Sentence(4)
	session := domain.Session{
		ID:        uuid.NewString(),
		Date:      createdAt,
		Note:      &note,
		CreatedAt: createdAt,
	}
	for i, mode := range modes {
		session.Activities = append(session.Activities, domain.Activity{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Name:      gofakeit.HipsterWord(),
			Mode:      mode,
			Position:  i,
		})
	}
	return session
}

func TestStore_CreateListAndDetails(t *testing.T) {
	ctx := context.Background()
	store, pool := setupStore(t)

	base := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	older := fakeSession(base, domain.ModeStrength, domain.ModeDuration, domain.ModeDistanceTime)
	newer := fakeSession(base.Add(time.Hour), domain.ModeDuration)
	require.NoError(t, store.CreateSession(ctx, older))
	require.NoError(t, store.CreateSession(ctx, newer))

	require.NoError(t, store.AddDetail(ctx, older.Activities[0].ID, domain.Strength{Series: 3, Repetitions: 12, WeightKg: 42.5}))
	require.NoError(t, store.AddDetail(ctx, older.Activities[2].ID, domain.NewDistanceTime(5, 1650)))

	err := store.AddDetail(ctx, older.Activities[0].ID, domain.Strength{Series: 1, Repetitions: 1, WeightKg: 1})
	require.ErrorIs(t, err, domain.ErrDetailExists)
	err = store.AddDetail(ctx, uuid.NewString(), domain.Duration{Seconds: 60})
	require.ErrorIs(t, err, domain.ErrActivityNotFound)

	sessions, err := store.ListSessions(ctx, domain.SessionFilter{Order: domain.NewestFirst})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.ID, sessions[0].ID)
	assert.Equal(t, older.ID, sessions[1].ID)
	require.NotNil(t, sessions[1].Note)
	assert.Equal(t, *older.Note, *sessions[1].Note)

	oldestFirst, err := store.ListSessions(ctx, domain.SessionFilter{Order: domain.OldestFirst, Limit: 1})
	require.NoError(t, err)
	require.Len(t, oldestFirst, 1)
	assert.Equal(t, older.ID, oldestFirst[0].ID)

	from := base.Add(30 * time.Minute)
	windowed, err := store.ListSessions(ctx, domain.SessionFilter{From: &from})
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, newer.ID, windowed[0].ID)

	page, err := store.ListSessions(ctx, domain.SessionFilter{Cursor: &domain.Cursor{CreatedAt: newer.CreatedAt, ID: newer.ID}})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, older.ID, page[0].ID)

	activities, err := store.ActivitiesBySession(ctx, []string{older.ID, newer.ID})
	require.NoError(t, err)
	require.Len(t, activities[older.ID], 3)
	require.Len(t, activities[newer.ID], 1)

	got := activities[older.ID]
	assert.Equal(t, domain.Strength{Series: 3, Repetitions: 12, WeightKg: 42.5}, got[0].Detail)
	assert.Nil(t, got[1].Detail)
	assert.Equal(t, domain.DistanceTime{DistanceKm: 5, TimeSeconds: 1650, PaceSecondsPerKm: 330}, got[2].Detail)
	for i, a := range got {
		assert.Equal(t, i, a.Position)
		assert.Equal(t, older.Activities[i].Mode, a.Mode)
		assert.Equal(t, older.Activities[i].Name, a.Name)
	}

	activity, err := store.GetActivity(ctx, older.Activities[2].ID)
	require.NoError(t, err)
	require.NotNil(t, activity)
	assert.Equal(t, domain.ModeDistanceTime, activity.Mode)

	missing, err := store.GetActivity(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)

	var outboxRows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox`).Scan(&outboxRows))
	assert.Equal(t, 4, outboxRows, "two sessions and two detail rows")
}

func TestStore_DeleteSessionCascades(t *testing.T) {
	ctx := context.Background()
	store, pool := setupStore(t)

	session := fakeSession(time.Now().UTC().Truncate(time.Microsecond), domain.ModeStrength, domain.ModeDuration, domain.ModeDistanceTime)
	require.NoError(t, store.CreateSession(ctx, session))
	require.NoError(t, store.AddDetail(ctx, session.Activities[0].ID, domain.Strength{Series: 4, Repetitions: 8, WeightKg: 60}))
	require.NoError(t, store.AddDetail(ctx, session.Activities[1].ID, domain.Duration{Seconds: 1200}))
	require.NoError(t, store.AddDetail(ctx, session.Activities[2].ID, domain.NewDistanceTime(10, 3000)))

	require.NoError(t, store.DeleteSession(ctx, session.ID))

	sessions, err := store.ListSessions(ctx, domain.SessionFilter{})
	require.NoError(t, err)
	assert.Empty(t, sessions)

	activities, err := store.ActivitiesBySession(ctx, []string{session.ID})
	require.NoError(t, err)
	assert.Empty(t, activities)

	for _, table := range []string{"activities", "strength_details", "duration_details", "distance_details"} {
		var n int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n))
		assert.Zerof(t, n, "%s should be empty", table)
	}

	var deletedEvents int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type = 'session.deleted' AND aggregate_id = $1`, session.ID).Scan(&deletedEvents))
	assert.Equal(t, 1, deletedEvents)

	assert.ErrorIs(t, store.DeleteSession(ctx, session.ID), domain.ErrSessionNotFound)
	assert.ErrorIs(t, store.DeleteSession(ctx, "bogus"), domain.ErrSessionNotFound)
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	files, err := filepath.Glob(filepath.Join(resolvePath(t, "../../../db/postgres/migrations"), "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	sort.Strings(files)

	for _, file := range files {
		contents, readErr := os.ReadFile(file)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoErrorf(t, execErr, "execute migration %s", file)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
