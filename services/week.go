// Package services: services/week.go
package services

import "time"

// Bet dates are plain YYYY-MM-DD strings.
const dateLayout = "2006-01-02"

// Allow tests to pin "now".
var nowFunc = time.Now

// CurrentWeekRange returns the start and end of the current week,
// Monday 00:00:00 through Sunday 23:59:59.
func CurrentWeekRange() (time.Time, time.Time) {
	now := nowFunc()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Go's Sunday is 0; shift so Monday is the week start.
	daysSinceMonday := (int(today.Weekday()) + 6) % 7
	weekStart := today.AddDate(0, 0, -daysSinceMonday)
	weekEnd := weekStart.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return weekStart, weekEnd
}

// WeekStartFor returns the Monday of the week containing the given
// date string.
func WeekStartFor(dateStr string) (time.Time, error) {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	daysSinceMonday := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -daysSinceMonday), nil
}

// IsDateInWeek reports whether a date string falls in the week starting
// at weekStart (Monday). Unparseable dates are simply not in the week.
func IsDateInWeek(dateStr string, weekStart time.Time) bool {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return false
	}
	weekEnd := weekStart.AddDate(0, 0, 6)
	return !d.Before(weekStart) && !d.After(weekEnd)
}

// ValidDate reports whether a string is a well-formed YYYY-MM-DD date.
func ValidDate(dateStr string) bool {
	_, err := time.Parse(dateLayout, dateStr)
	return err == nil
}
