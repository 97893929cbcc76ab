package domain_test

import (
	"testing"
	"time"

	"example.com/workoutlog/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestStartOfWeek(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"monday", time.Date(2024, 3, 4, 10, 30, 0, 0, loc), time.Date(2024, 3, 4, 0, 0, 0, 0, loc)},
		{"wednesday", time.Date(2024, 3, 6, 23, 59, 0, 0, loc), time.Date(2024, 3, 4, 0, 0, 0, 0, loc)},
		{"sunday counts as six days after monday", time.Date(2024, 3, 10, 8, 0, 0, 0, loc), time.Date(2024, 3, 4, 0, 0, 0, 0, loc)},
		{"crosses month boundary", time.Date(2024, 3, 1, 12, 0, 0, 0, loc), time.Date(2024, 2, 26, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StartOfWeek(tt.now, 0, loc))
		})
	}
}

func TestStartOfWeek_OffsetAndIdempotence(t *testing.T) {
	now := time.Date(2024, 5, 15, 17, 45, 12, 0, time.UTC)

	first := domain.StartOfWeek(now, 0, time.UTC)
	second := domain.StartOfWeek(now, 0, time.UTC)
	assert.Equal(t, first, second)
	assert.Equal(t, first.AddDate(0, 0, -7), domain.StartOfWeek(now, 1, time.UTC))
	assert.Equal(t, first.AddDate(0, 0, -21), domain.StartOfWeek(now, 3, time.UTC))
}

func TestStartOfWeek_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// Monday 02:00 UTC is still Sunday evening at UTC-5.
	now := time.Date(2024, 3, 11, 2, 0, 0, 0, time.UTC)

	start := domain.StartOfWeek(now, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, loc), start)
}

func TestWeekRange(t *testing.T) {
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

	from, to := domain.WeekRange(now, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999_000_000, time.UTC), to)

	prevFrom, prevTo := domain.WeekRange(now, 1, time.UTC)
	assert.Equal(t, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC), prevFrom)
	assert.Equal(t, from.Add(-time.Millisecond), prevTo)
}

func TestMonthRange(t *testing.T) {
	from, to := domain.MonthRange(time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999_000_000, time.UTC), to)

	from, to = domain.MonthRange(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC), time.UTC)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 999_000_000, time.UTC), to)
}
