package core

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"kintai.app/kintai/ledger/model"
	"kintai.app/kintai/utils"
)

const (
	// MaxPairMinutes is the sanity bound on one shift; longer pairs are data
	// errors and never count toward totals.
	MaxPairMinutes = 24 * 60
	// OvertimeThresholdMinutes is the standard working time per pair.
	OvertimeThresholdMinutes = 8 * 60
)

// PairSummary is one clock_in/clock_out pair within the reporting period,
// keyed by the JST calendar date of its clock-in.
type PairSummary struct {
	Date            string `json:"date"`
	PairID          string `json:"pairId"`
	StaffID         string `json:"staffId"`
	ClockIn         int64  `json:"clockIn"`
	ClockOut        *int64 `json:"clockOut,omitempty"`
	DurationMinutes int64  `json:"durationMinutes"`
	OvertimeMinutes int64  `json:"overtimeMinutes"`
	// Valid is false for open pairs and for durations outside [0, 1440];
	// such pairs are listed but excluded from totals, never clamped.
	Valid bool `json:"valid"`
}

type MonthlySummary struct {
	Pairs           []PairSummary `json:"pairs"`
	TotalMinutes    int64         `json:"totalMinutes"`
	OvertimeMinutes int64         `json:"overtimeMinutes"`
	TotalHours      float64       `json:"totalHours"`
	OvertimeHours   float64       `json:"overtimeHours"`
}

// MonthlyRecords is the thin pass-through variant: raw records ordered by
// timestamp ascending, for client-side aggregation. staffID may be empty.
func MonthlyRecords(db *gorm.DB, ownerID, staffID string, year int, month time.Month) ([]model.AttendanceRecord, error) {
	startMs, endMs := MonthBoundsJST(year, month)

	query := db.Where("owner_id = ? AND timestamp >= ? AND timestamp < ?", ownerID, startMs, endMs)
	if staffID != "" {
		query = query.Where("staff_id = ?", staffID)
	}

	var records []model.AttendanceRecord
	if err := query.Order("timestamp").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// MonthlySummaryQuery is the server-side aggregator variant.
func MonthlySummaryQuery(db *gorm.DB, ownerID, staffID string, year int, month time.Month) (*MonthlySummary, error) {
	records, err := MonthlyRecords(db, ownerID, staffID, year, month)
	if err != nil {
		return nil, err
	}
	return BuildMonthlySummary(records), nil
}

// BuildMonthlySummary pairs records and computes per-pair duration and
// overtime. Duration is clockOut − clockIn in minutes; overtime is the part
// beyond eight hours. Totals sum valid pairs only.
func BuildMonthlySummary(records []model.AttendanceRecord) *MonthlySummary {
	summary := &MonthlySummary{Pairs: []PairSummary{}}

	pairs := utils.GroupBy(records, func(r model.AttendanceRecord) string { return r.PairKey() })
	for pairKey, precs := range pairs {
		clockIn, clockOut := splitPair(precs)
		if clockIn == nil {
			continue // orphan clock_out: nothing to aggregate
		}

		pair := PairSummary{
			Date:    JSTDate(clockIn.Timestamp),
			PairID:  pairKey,
			StaffID: clockIn.StaffID,
			ClockIn: clockIn.Timestamp,
		}

		if clockOut != nil {
			pair.ClockOut = &clockOut.Timestamp
			duration := (clockOut.Timestamp - clockIn.Timestamp) / 60000
			pair.DurationMinutes = duration
			if duration >= 0 && duration <= MaxPairMinutes {
				pair.Valid = true
				if duration > OvertimeThresholdMinutes {
					pair.OvertimeMinutes = duration - OvertimeThresholdMinutes
				}
			}
		}

		if pair.Valid {
			summary.TotalMinutes += pair.DurationMinutes
			summary.OvertimeMinutes += pair.OvertimeMinutes
		}
		summary.Pairs = append(summary.Pairs, pair)
	}

	sort.Slice(summary.Pairs, func(i, j int) bool {
		if summary.Pairs[i].ClockIn != summary.Pairs[j].ClockIn {
			return summary.Pairs[i].ClockIn < summary.Pairs[j].ClockIn
		}
		return summary.Pairs[i].PairID < summary.Pairs[j].PairID
	})

	summary.TotalHours = float64(summary.TotalMinutes) / 60
	summary.OvertimeHours = float64(summary.OvertimeMinutes) / 60
	return summary
}
