// file: services/week_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFixedNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })
}

func TestCurrentWeekRange_MidWeek(t *testing.T) {
	// Wednesday 2025-06-11
	withFixedNow(t, time.Date(2025, 6, 11, 15, 30, 0, 0, time.UTC))

	start, end := CurrentWeekRange()
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC), end)
}

func TestCurrentWeekRange_SundayBelongsToPrecedingMonday(t *testing.T) {
	// Sunday 2025-06-15 is the last day of the week, not the first
	withFixedNow(t, time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC))

	start, _ := CurrentWeekRange()
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
}

func TestCurrentWeekRange_MondayStartsItsOwnWeek(t *testing.T) {
	withFixedNow(t, time.Date(2025, 6, 9, 0, 0, 1, 0, time.UTC))

	start, end := CurrentWeekRange()
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC), end)
}

func TestWeekStartFor(t *testing.T) {
	start, err := WeekStartFor("2025-06-13") // a Friday
	require.NoError(t, err)
	assert.Equal(t, "2025-06-09", start.Format(dateLayout))

	_, err = WeekStartFor("not-a-date")
	assert.Error(t, err)
}

func TestIsDateInWeek(t *testing.T) {
	weekStart := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsDateInWeek("2025-06-09", weekStart))
	assert.True(t, IsDateInWeek("2025-06-15", weekStart))
	assert.False(t, IsDateInWeek("2025-06-08", weekStart))
	assert.False(t, IsDateInWeek("2025-06-16", weekStart))

	// unparseable dates are simply outside the week
	assert.False(t, IsDateInWeek("06/13/2025", weekStart))
	assert.False(t, IsDateInWeek("", weekStart))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2025-06-13"))
	assert.False(t, ValidDate("2025-6-13"))
	assert.False(t, ValidDate("13-06-2025"))
	assert.False(t, ValidDate(""))
}
