package planner

import (
	"fmt"
	"math"
	"time"
)

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"

	// DurationUnknown is shown when either clock time is missing
	DurationUnknown = "N/A"

	// DaysToday and DaysPastDue are the boundary markers for DaysUntil
	DaysToday   = "Today"
	DaysPastDue = "Past due"
)

// Duration formats the elapsed time between two clock times as
// "{hours}h {minutes}m". Both times are interpreted on the same day;
// an end time earlier than the start clamps to zero rather than going
// negative.
func Duration(start, end string) string {
	if start == "" || end == "" {
		return DurationUnknown
	}
	from, err := time.Parse(clockLayout, start)
	if err != nil {
		return DurationUnknown
	}
	to, err := time.Parse(clockLayout, end)
	if err != nil {
		return DurationUnknown
	}

	elapsed := to.Sub(from)
	if elapsed < 0 {
		elapsed = 0
	}
	hours := int(elapsed.Hours())
	minutes := int(elapsed.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// DaysUntil reports how far away a calendar date is from now, rounded
// up to whole days. A date of today yields "Today"; anything earlier
// yields "Past due".
func DaysUntil(date string, now time.Time) string {
	target, err := time.Parse(dateLayout, date)
	if err != nil {
		return DurationUnknown
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Ceil(target.Sub(today).Hours() / 24))
	switch {
	case days == 0:
		return DaysToday
	case days < 0:
		return DaysPastDue
	case days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}
