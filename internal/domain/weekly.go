package domain

import (
	"math"
	"time"
)

// ModeDistribution counts activities per mode.
type ModeDistribution struct {
	Strength int
	Duration int
	Distance int
}

// Total is the number of activities counted.
func (d ModeDistribution) Total() int {
	return d.Strength + d.Duration + d.Distance
}

// Percentages converts counts into whole percentages of the total. An empty distribution
// yields zeros.
func (d ModeDistribution) Percentages() ModeDistribution {
	total := d.Total()
	if total == 0 {
		return ModeDistribution{}
	}
	pct := func(v int) int { return roundHalfUp(float64(v) / float64(total) * 100) }
	return ModeDistribution{
		Strength: pct(d.Strength),
		Duration: pct(d.Duration),
		Distance: pct(d.Distance),
	}
}

func (d *ModeDistribution) add(mode Mode) {
	switch mode {
	case ModeStrength:
		d.Strength++
	case ModeDuration:
		d.Duration++
	case ModeDistanceTime:
		d.Distance++
	}
}

// WeekTotals summarises one week of sessions.
type WeekTotals struct {
	Sessions           int
	TotalActiveMinutes int
}

// CurrentWeek extends WeekTotals with the activity mode distribution.
type CurrentWeek struct {
	WeekTotals
	Distribution ModeDistribution
}

// WeeklyInsight compares the current week with the one before it.
type WeeklyInsight struct {
	WeekStart    time.Time
	CurrentWeek  CurrentWeek
	PreviousWeek WeekTotals
}

// WeekComparison holds week over week changes as whole percentages.
type WeekComparison struct {
	SessionsChange      int
	ActiveMinutesChange int
}

// Comparison reports the change from the previous week. A previous value of zero yields 0.
func (w WeeklyInsight) Comparison() WeekComparison {
	return WeekComparison{
		SessionsChange:      PercentChange(w.CurrentWeek.Sessions, w.PreviousWeek.Sessions),
		ActiveMinutesChange: PercentChange(w.CurrentWeek.TotalActiveMinutes, w.PreviousWeek.TotalActiveMinutes),
	}
}

// PercentChange returns round((current-previous)/previous*100), or 0 when previous is 0.
func PercentChange(current, previous int) int {
	if previous <= 0 {
		return 0
	}
	return roundHalfUp(float64(current-previous) / float64(previous) * 100)
}

// SummarizeWeek folds a week of sessions into its totals and mode distribution.
func SummarizeWeek(sessions []Session) CurrentWeek {
	var week CurrentWeek
	week.Sessions = len(sessions)
	for _, session := range sessions {
		for _, activity := range session.Activities {
			week.TotalActiveMinutes += ActiveMinutes(activity)
			week.Distribution.add(activity.Mode)
		}
	}
	return week
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
