package core

import (
	"fmt"
	"time"

	"kintai.app/kintai/ledger/model"
)

const (
	StartEarlyThreshold  = 15 * time.Minute
	StartLateThreshold   = 10 * time.Minute
	FinishEarlyThreshold = 10 * time.Minute
	FinishLateThreshold  = 15 * time.Minute
)

// ShiftAdjustment holds clock times snapped to the shift definition.
type ShiftAdjustment struct {
	Start  time.Time
	Finish time.Time
}

// AdjustToShift snaps actual clock times to the owner's shift definition:
// small deviations around the defined start/finish are treated as the defined
// time, larger ones are kept as recorded. Used for report annotation only;
// ledger records are never rewritten by shift rules.
func AdjustToShift(actualStart, actualFinish time.Time, shift model.WorkShift) (ShiftAdjustment, error) {
	dateBase := time.Date(actualStart.Year(), actualStart.Month(), actualStart.Day(), 0, 0, 0, 0, actualStart.Location())

	defStart, err := ParseTimeOnDate(dateBase, shift.Start)
	if err != nil {
		return ShiftAdjustment{}, fmt.Errorf("invalid shift start %s: %w", shift.Start, err)
	}
	defFinish, err := ParseTimeOnDate(dateBase, shift.Finish)
	if err != nil {
		return ShiftAdjustment{}, fmt.Errorf("invalid shift finish %s: %w", shift.Finish, err)
	}

	// Night shifts: a finish before the start belongs to the next day.
	if defFinish.Before(defStart) {
		defFinish = defFinish.Add(24 * time.Hour)
	}

	return ShiftAdjustment{
		Start:  ApplyStartRule(actualStart, defStart),
		Finish: ApplyFinishRule(actualFinish, defFinish),
	}, nil
}

// ApplyStartRule: up to 15 minutes early or 10 minutes late counts as the
// defined start.
func ApplyStartRule(actual, defined time.Time) time.Time {
	diff := actual.Sub(defined) // negative if early
	if diff >= -StartEarlyThreshold && diff <= StartLateThreshold {
		return defined
	}
	return actual
}

// ApplyFinishRule: up to 10 minutes early or 15 minutes late counts as the
// defined finish.
func ApplyFinishRule(actual, defined time.Time) time.Time {
	diff := actual.Sub(defined)
	if diff >= -FinishEarlyThreshold && diff <= FinishLateThreshold {
		return defined
	}
	return actual
}
