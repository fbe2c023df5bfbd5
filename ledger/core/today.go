package core

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/utils"
)

type TodayStatus string

const (
	StatusCompleted TodayStatus = "completed"
	StatusPresent   TodayStatus = "present"
	// statusAbsent exists in the model but is never emitted: staff with zero
	// clock-ins today simply do not appear. Whether absentees should be
	// listed is an open product question; the current behavior is preserved.
	statusAbsent TodayStatus = "absent"
)

type StaffInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

type TodayEntry struct {
	Staff    StaffInfo   `json:"staff"`
	PairID   string      `json:"pairId"`
	ClockIn  int64       `json:"clockIn"`
	ClockOut *int64      `json:"clockOut,omitempty"`
	Status   TodayStatus `json:"status"`
}

// TodayView lists, per staff member with activity today, the shift rooted at
// their latest clock-in of the JST calendar day.
func TodayView(db *gorm.DB, ownerID string, now time.Time) ([]TodayEntry, error) {
	startMs, endMs := DayBoundsJST(now)

	var records []model.AttendanceRecord
	err := db.
		Where("owner_id = ? AND timestamp >= ? AND timestamp < ?", ownerID, startMs, endMs).
		Order("timestamp").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	staff, err := core.ListStaff(db, ownerID)
	if err != nil {
		return nil, err
	}
	staffByID := make(map[string]core.Staff, len(staff))
	for _, s := range staff {
		staffByID[s.ID] = s
	}

	return BuildTodayView(records, staffByID, now), nil
}

// BuildTodayView groups records by staff, then by pair key, and keeps per
// staff the pair whose clock-in time of day (minutes since JST midnight) is
// numerically latest. A staff member with two clock-ins today contributes
// only the later-rooted pair; the earlier one is discarded entirely.
func BuildTodayView(records []model.AttendanceRecord, staffByID map[string]core.Staff, now time.Time) []TodayEntry {
	today := now.In(JST).Format("2006-01-02")

	var entries []TodayEntry
	byStaff := utils.GroupBy(records, func(r model.AttendanceRecord) string { return r.StaffID })

	for staffID, recs := range byStaff {
		pairs := utils.GroupBy(recs, func(r model.AttendanceRecord) string { return r.PairKey() })

		var best *TodayEntry
		bestMinutes := -1
		var bestTs int64

		for pairKey, precs := range pairs {
			clockIn, clockOut := splitPair(precs)
			if clockIn == nil {
				continue // orphan clock_out bucket
			}
			if JSTDate(clockIn.Timestamp) != today {
				continue
			}

			// Same-minute ties fall back to the raw timestamp so the winner
			// does not depend on map iteration order.
			minutes := MinutesSinceJSTMidnight(clockIn.Timestamp)
			if minutes < bestMinutes || (minutes == bestMinutes && clockIn.Timestamp <= bestTs) {
				continue
			}

			entry := TodayEntry{
				PairID:  pairKey,
				ClockIn: clockIn.Timestamp,
				Status:  StatusPresent,
			}
			if clockOut != nil {
				entry.ClockOut = &clockOut.Timestamp
				entry.Status = StatusCompleted
			}
			best = &entry
			bestMinutes = minutes
			bestTs = clockIn.Timestamp
		}

		if best == nil {
			continue
		}

		info := StaffInfo{ID: staffID, Name: staffID}
		if s, ok := staffByID[staffID]; ok {
			info = StaffInfo{ID: s.ID, Name: s.Name, Code: s.Code}
		}
		best.Staff = info
		entries = append(entries, *best)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Staff.Name < entries[j].Staff.Name
	})
	return entries
}

// splitPair picks the earliest clock_in and the latest clock_out of one pair
// bucket.
func splitPair(records []model.AttendanceRecord) (*model.AttendanceRecord, *model.AttendanceRecord) {
	sorted := make([]model.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	var clockIn, clockOut *model.AttendanceRecord
	for i := range sorted {
		switch sorted[i].Type {
		case model.TypeClockIn:
			if clockIn == nil {
				clockIn = &sorted[i]
			}
		case model.TypeClockOut:
			clockOut = &sorted[i]
		}
	}
	return clockIn, clockOut
}
