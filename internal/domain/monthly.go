package domain

// MonthlyHighlight is the most frequently logged sport of the month.
type MonthlyHighlight struct {
	Name          string
	Mode          Mode
	SessionsCount int
	TotalMinutes  int
}

// StarSport picks the activity name with the most occurrences. Sessions and their
// activities are enumerated in the given order and the first name reaching the maximum
// count wins. It returns nil when there are no activities.
func StarSport(sessions []Session) *MonthlyHighlight {
	var tallies []MonthlyHighlight
	index := make(map[string]int)

	for _, session := range sessions {
		for _, activity := range session.Activities {
			i, seen := index[activity.Name]
			if !seen {
				i = len(tallies)
				index[activity.Name] = i
				tallies = append(tallies, MonthlyHighlight{Name: activity.Name, Mode: activity.Mode})
			}
			tallies[i].SessionsCount++
			tallies[i].TotalMinutes += ActiveMinutes(activity)
		}
	}

	if len(tallies) == 0 {
		return nil
	}

	best := tallies[0]
	for _, tally := range tallies[1:] {
		if tally.SessionsCount > best.SessionsCount {
			best = tally
		}
	}
	return &best
}
