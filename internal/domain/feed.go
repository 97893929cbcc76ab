package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FeedAllModes disables the mode filter of the activity feed.
const FeedAllModes = "todos"

// FeedFilter narrows the activity feed. An empty Mode or FeedAllModes keeps every mode.
// Query matches case-insensitively against the activity name and its rendered details.
type FeedFilter struct {
	Mode  string
	Query string
}

// FeedItem is one activity as shown in the activity feed.
type FeedItem struct {
	SessionID  string
	ActivityID string
	Name       string
	Mode       Mode
	Date       time.Time
	Details    string
}

// FeedCounts tallies every activity read, regardless of the feed filter.
type FeedCounts struct {
	Total    int
	Strength int
	Duration int
	Distance int
}

// Feed is the filtered activity list plus unfiltered counts.
type Feed struct {
	Items  []FeedItem
	Counts FeedCounts
}

// BuildFeed flattens sessions into feed items, in session order then activity order.
func BuildFeed(sessions []Session, filter FeedFilter) Feed {
	feed := Feed{Items: make([]FeedItem, 0)}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	for _, session := range sessions {
		for _, activity := range session.Activities {
			feed.Counts.Total++
			switch activity.Mode {
			case ModeStrength:
				feed.Counts.Strength++
			case ModeDuration:
				feed.Counts.Duration++
			case ModeDistanceTime:
				feed.Counts.Distance++
			}

			item := FeedItem{
				SessionID:  session.ID,
				ActivityID: activity.ID,
				Name:       activity.Name,
				Mode:       activity.Mode,
				Date:       session.Date,
				Details:    DescribeMeasurement(activity.Detail),
			}
			if filter.Mode != "" && filter.Mode != FeedAllModes && string(activity.Mode) != filter.Mode {
				continue
			}
			if query != "" &&
				!strings.Contains(strings.ToLower(item.Name), query) &&
				!strings.Contains(strings.ToLower(item.Details), query) {
				continue
			}
			feed.Items = append(feed.Items, item)
		}
	}
	return feed
}

// DescribeMeasurement renders a measurement for display.
func DescribeMeasurement(m Measurement) string {
	switch v := m.(type) {
	case Strength:
		return fmt.Sprintf("%d series - %d repeticiones - %s kg", v.Series, v.Repetitions, formatNumber(v.WeightKg))
	case Duration:
		return FormatMinutes(v.Seconds / 60)
	case DistanceTime:
		return fmt.Sprintf("%s km - %s - %s min/km",
			formatNumber(v.DistanceKm), FormatMinutes(v.TimeSeconds/60), FormatPace(v.PaceSecondsPerKm))
	}
	return "Sin detalles"
}

// FormatMinutes renders minutes as "1h 5m", or "45m" under an hour.
func FormatMinutes(minutes int) string {
	hours := minutes / 60
	mins := minutes % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatPace renders seconds per km as "m:ss". Non positive paces render as "--".
func FormatPace(secondsPerKm float64) string {
	if secondsPerKm <= 0 || math.IsNaN(secondsPerKm) || math.IsInf(secondsPerKm, 0) {
		return "--"
	}
	total := int(math.Round(secondsPerKm))
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
