package domain

import (
	"sort"
	"time"
)

// PacePoint is the average pace of one session, in seconds per km.
type PacePoint struct {
	SessionID   string
	Date        time.Time
	AveragePace float64
}

// PaceTrend describes pace evolution for one sport. BestPace and MeanPace are computed over
// every qualifying activity, not over the per-session averages.
type PaceTrend struct {
	SportName string
	Series    []PacePoint
	BestPace  float64
	MeanPace  float64
}

// SelectPaceSport returns the distance+time sport logged most often, first seen wins ties.
// It returns "" when no distance+time activity exists.
func SelectPaceSport(sessions []Session) string {
	var names []string
	counts := make(map[string]int)
	for _, session := range sessions {
		for _, activity := range session.Activities {
			if activity.Mode != ModeDistanceTime {
				continue
			}
			if _, seen := counts[activity.Name]; !seen {
				names = append(names, activity.Name)
			}
			counts[activity.Name]++
		}
	}

	best, bestCount := "", 0
	for i, name := range names {
		if i == 0 || counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best
}

// PaceSports lists distinct distance+time sport names in first seen order.
func PaceSports(sessions []Session) []string {
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, session := range sessions {
		for _, activity := range session.Activities {
			if activity.Mode != ModeDistanceTime {
				continue
			}
			if _, ok := seen[activity.Name]; ok {
				continue
			}
			seen[activity.Name] = struct{}{}
			names = append(names, activity.Name)
		}
	}
	return names
}

// BuildPaceTrend computes the pace trend of sport over sessions given newest first. The
// series is returned in session date order, oldest first, with equal dates kept in creation
// order. Activities without a detail row or with a zero pace are
// skipped, and sessions left without qualifying activities are omitted. It returns nil when
// nothing qualifies.
func BuildPaceTrend(sessions []Session, sport string) *PaceTrend {
	trend := &PaceTrend{SportName: sport}
	var total float64
	var instances int

	for _, session := range sessions {
		var sessionTotal float64
		var sessionCount int
		for _, activity := range session.Activities {
			pace, ok := qualifyingPace(activity, sport)
			if !ok {
				continue
			}
			sessionTotal += pace
			sessionCount++
			total += pace
			if instances == 0 || pace < trend.BestPace {
				trend.BestPace = pace
			}
			instances++
		}
		if sessionCount == 0 {
			continue
		}
		trend.Series = append(trend.Series, PacePoint{
			SessionID:   session.ID,
			Date:        session.Date,
			AveragePace: sessionTotal / float64(sessionCount),
		})
	}

	if len(trend.Series) == 0 {
		return nil
	}

	for i, j := 0, len(trend.Series)-1; i < j; i, j = i+1, j-1 {
		trend.Series[i], trend.Series[j] = trend.Series[j], trend.Series[i]
	}
	// backfilled sessions carry an earlier date than sessions created before them
	sort.SliceStable(trend.Series, func(i, j int) bool {
		return trend.Series[i].Date.Before(trend.Series[j].Date)
	})
	trend.MeanPace = total / float64(instances)
	return trend
}

func qualifyingPace(activity Activity, sport string) (float64, bool) {
	if activity.Mode != ModeDistanceTime || activity.Name != sport {
		return 0, false
	}
	detail, ok := activity.Detail.(DistanceTime)
	if !ok || detail.PaceSecondsPerKm <= 0 {
		return 0, false
	}
	return detail.PaceSecondsPerKm, true
}
