package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kintai.app/kintai/ledger/model"
)

func TestBuildMonthlySummaryStandardDay(t *testing.T) {
	// 09:00 - 18:00 same day: 540 minutes, 60 overtime.
	records := []model.AttendanceRecord{
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0), "in1"),
		record("out1", staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 18, 0), "in1"),
	}

	summary := BuildMonthlySummary(records)

	assert.Len(t, summary.Pairs, 1)
	pair := summary.Pairs[0]
	assert.Equal(t, "2026-08-03", pair.Date)
	assert.True(t, pair.Valid)
	assert.Equal(t, int64(540), pair.DurationMinutes)
	assert.Equal(t, int64(60), pair.OvertimeMinutes)
	assert.InDelta(t, 9.0, summary.TotalHours, 0.001)
	assert.InDelta(t, 1.0, summary.OvertimeHours, 0.001)
}

func TestBuildMonthlySummaryNoOvertimeUnderEightHours(t *testing.T) {
	records := []model.AttendanceRecord{
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0), "in1"),
		record("out1", staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 16, 0), "in1"),
	}

	summary := BuildMonthlySummary(records)

	assert.Equal(t, int64(420), summary.TotalMinutes)
	assert.Equal(t, int64(0), summary.OvertimeMinutes)
}

func TestBuildMonthlySummaryOverlongPairExcluded(t *testing.T) {
	// A 25 hour pair is a data error: listed, flagged invalid, and excluded
	// from totals entirely rather than clamped.
	records := []model.AttendanceRecord{
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0), "in1"),
		record("out1", staffA, model.TypeClockOut, jstMillis(2026, time.August, 4, 10, 0), "in1"),
		record("in2", staffA, model.TypeClockIn, jstMillis(2026, time.August, 5, 9, 0), "in2"),
		record("out2", staffA, model.TypeClockOut, jstMillis(2026, time.August, 5, 17, 0), "in2"),
	}

	summary := BuildMonthlySummary(records)

	assert.Len(t, summary.Pairs, 2)
	invalid := summary.Pairs[0]
	assert.False(t, invalid.Valid)
	assert.Equal(t, int64(1500), invalid.DurationMinutes)
	assert.Equal(t, int64(0), invalid.OvertimeMinutes)

	assert.Equal(t, int64(480), summary.TotalMinutes)
	assert.Equal(t, int64(0), summary.OvertimeMinutes)
}

func TestBuildMonthlySummaryNegativeDurationExcluded(t *testing.T) {
	// A manually broken pair where the clock_out precedes the clock_in.
	records := []model.AttendanceRecord{
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 18, 0), "p1"),
		record("out1", staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 9, 0), "p1"),
	}

	summary := BuildMonthlySummary(records)

	assert.Len(t, summary.Pairs, 1)
	assert.False(t, summary.Pairs[0].Valid)
	assert.Equal(t, int64(0), summary.TotalMinutes)
}

func TestBuildMonthlySummaryOpenPairListedNotTotaled(t *testing.T) {
	records := []model.AttendanceRecord{
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0), "in1"),
	}

	summary := BuildMonthlySummary(records)

	assert.Len(t, summary.Pairs, 1)
	assert.False(t, summary.Pairs[0].Valid)
	assert.Nil(t, summary.Pairs[0].ClockOut)
	assert.Equal(t, int64(0), summary.TotalMinutes)
}

func TestBuildMonthlySummaryOrphanClockOutIgnored(t *testing.T) {
	records := []model.AttendanceRecord{
		record("out1", staffA, model.TypeClockOut, jstMillis(2026, time.August, 3, 18, 0), ""),
	}

	summary := BuildMonthlySummary(records)

	assert.Empty(t, summary.Pairs)
	assert.Equal(t, int64(0), summary.TotalMinutes)
}

func TestBuildMonthlySummaryDateKeyedByJSTClockIn(t *testing.T) {
	// A night shift clocking in at 23:00 JST on the 3rd belongs to the 3rd,
	// even though the clock_out lands on the 4th.
	records := []model.AttendanceRecord{
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 23, 0), "in1"),
		record("out1", staffA, model.TypeClockOut, jstMillis(2026, time.August, 4, 7, 0), "in1"),
	}

	summary := BuildMonthlySummary(records)

	assert.Len(t, summary.Pairs, 1)
	assert.Equal(t, "2026-08-03", summary.Pairs[0].Date)
	assert.True(t, summary.Pairs[0].Valid)
	assert.Equal(t, int64(480), summary.Pairs[0].DurationMinutes)
}

func TestBuildMonthlySummaryPairsSortedByClockIn(t *testing.T) {
	records := []model.AttendanceRecord{
		record("in2", staffA, model.TypeClockIn, jstMillis(2026, time.August, 10, 9, 0), "in2"),
		record("in1", staffA, model.TypeClockIn, jstMillis(2026, time.August, 3, 9, 0), "in1"),
	}

	summary := BuildMonthlySummary(records)

	assert.Len(t, summary.Pairs, 2)
	assert.Equal(t, "in1", summary.Pairs[0].PairID)
	assert.Equal(t, "in2", summary.Pairs[1].PairID)
}
