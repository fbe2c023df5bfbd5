package core

import (
	"fmt"
	"time"

	"kintai.app/kintai/utils"
)

// All day and month boundaries use a fixed UTC+9 offset. Persisted
// timestamps stay raw UTC epoch milliseconds; JST applies only here and at
// display time.
var JST = utils.TokyoTZ

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// DayBoundsJST returns [start, end) of the JST calendar day containing now,
// as epoch milliseconds.
func DayBoundsJST(now time.Time) (int64, int64) {
	local := now.In(JST)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, JST)
	return toMillis(start), toMillis(start.AddDate(0, 0, 1))
}

// MonthBoundsJST returns [start, end) of the JST calendar month, as epoch
// milliseconds.
func MonthBoundsJST(year int, month time.Month) (int64, int64) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, JST)
	return toMillis(start), toMillis(start.AddDate(0, 1, 0))
}

// JSTDate formats an epoch-millisecond instant as its JST calendar date.
func JSTDate(ms int64) string {
	return time.UnixMilli(ms).In(JST).Format("2006-01-02")
}

// MinutesSinceJSTMidnight is the time-of-day component used to rank a staff
// member's clock-ins within one day.
func MinutesSinceJSTMidnight(ms int64) int {
	local := time.UnixMilli(ms).In(JST)
	return local.Hour()*60 + local.Minute()
}

// ParseMonth parses "YYYY-MM".
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, invalidf("invalid month %q", s)
	}
	return t.Year(), t.Month(), nil
}

// TimeOnDateJST combines a "2006-01-02" date and a "15:04" wall time into an
// epoch-millisecond instant on that JST date.
func TimeOnDateJST(date, hhmm string) (int64, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", fmt.Sprintf("%s %s", date, hhmm), JST)
	if err != nil {
		return 0, invalidf("invalid date/time %q %q", date, hhmm)
	}
	return toMillis(t), nil
}

// ParseTimeOnDate combines a wall time string like "09:00" with the date part
// of base, in base's location.
func ParseTimeOnDate(base time.Time, hhmm string) (time.Time, error) {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(base.Year(), base.Month(), base.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, base.Location()), nil
}
