package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func jstMillis(year int, month time.Month, day, hour, minute int) int64 {
	return time.Date(year, month, day, hour, minute, 0, 0, JST).UnixMilli()
}

func TestDayBoundsJST(t *testing.T) {
	// 2026-08-03 23:30 UTC is already 2026-08-04 08:30 in JST.
	now := time.Date(2026, time.August, 3, 23, 30, 0, 0, time.UTC)

	start, end := DayBoundsJST(now)

	assert.Equal(t, jstMillis(2026, time.August, 4, 0, 0), start)
	assert.Equal(t, jstMillis(2026, time.August, 5, 0, 0), end)
}

func TestMonthBoundsJST(t *testing.T) {
	start, end := MonthBoundsJST(2026, time.August)

	assert.Equal(t, jstMillis(2026, time.August, 1, 0, 0), start)
	assert.Equal(t, jstMillis(2026, time.September, 1, 0, 0), end)
}

func TestJSTDate(t *testing.T) {
	// 15:30 UTC on the 3rd is 00:30 JST on the 4th.
	ms := time.Date(2026, time.August, 3, 15, 30, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "2026-08-04", JSTDate(ms))
}

func TestMinutesSinceJSTMidnight(t *testing.T) {
	assert.Equal(t, 9*60, MinutesSinceJSTMidnight(jstMillis(2026, time.August, 3, 9, 0)))
	assert.Equal(t, 14*60+15, MinutesSinceJSTMidnight(jstMillis(2026, time.August, 3, 14, 15)))
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2026-08")
	assert.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, time.August, month)

	_, _, err = ParseMonth("August 2026")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTimeOnDateJST(t *testing.T) {
	ms, err := TimeOnDateJST("2026-08-03", "09:00")
	assert.NoError(t, err)
	assert.Equal(t, jstMillis(2026, time.August, 3, 9, 0), ms)

	_, err = TimeOnDateJST("2026-08-03", "25:00")
	assert.ErrorIs(t, err, ErrInvalid)
}
