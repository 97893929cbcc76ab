package domain_test

import (
	"time"

	"example.com/workoutlog/internal/domain"
)

func strength(name string) domain.Activity {
	return domain.Activity{Name: name, Mode: domain.ModeStrength, Detail: domain.Strength{Series: 3, Repetitions: 10, WeightKg: 50}}
}

func duration(name string, seconds int) domain.Activity {
	return domain.Activity{Name: name, Mode: domain.ModeDuration, Detail: domain.Duration{Seconds: seconds}}
}

func distance(name string, km float64, seconds int) domain.Activity {
	return domain.Activity{Name: name, Mode: domain.ModeDistanceTime, Detail: domain.NewDistanceTime(km, seconds)}
}

func withPace(name string, pace float64) domain.Activity {
	return domain.Activity{Name: name, Mode: domain.ModeDistanceTime, Detail: domain.DistanceTime{DistanceKm: 1, TimeSeconds: int(pace), PaceSecondsPerKm: pace}}
}

func session(id string, date time.Time, activities ...domain.Activity) domain.Session {
	for i := range activities {
		activities[i].SessionID = id
		activities[i].Position = i
		if activities[i].ID == "" {
			activities[i].ID = id + "-" + string(rune('a'+i))
		}
	}
	if activities == nil {
		activities = []domain.Activity{}
	}
	return domain.Session{ID: id, Date: date, CreatedAt: date, Activities: activities}
}
