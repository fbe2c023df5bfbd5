package core

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/ledger/model"
)

type PairParams struct {
	StaffID string
	Date    string // "2006-01-02", JST
	InTime  string // "15:04"
	OutTime string // "15:04"
	Reason  string
}

type PairResult struct {
	PairID     string `json:"pairId"`
	ClockInID  string `json:"clockInId"`
	ClockOutID string `json:"clockOutId"`
}

// CreatePair creates a complete shift manually. Both records share one
// generated pair id; this is the only case where a clock_in's pair id is not
// its own id. Each record gets a creation-marker history row.
func CreatePair(db *gorm.DB, ownerID string, p PairParams) (*PairResult, error) {
	staff, err := core.FindStaffByID(db, ownerID, p.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, notFoundf("staff %s", p.StaffID)
	}

	inTs, err := TimeOnDateJST(p.Date, p.InTime)
	if err != nil {
		return nil, err
	}
	outTs, err := TimeOnDateJST(p.Date, p.OutTime)
	if err != nil {
		return nil, err
	}
	if outTs <= inTs {
		return nil, invalidf("clock_out %s must be after clock_in %s", p.OutTime, p.InTime)
	}

	pairID := uuid.NewString()
	records := []*model.AttendanceRecord{
		{
			ID:               uuid.NewString(),
			OwnerID:          ownerID,
			StaffID:          staff.ID,
			Type:             model.TypeClockIn,
			Timestamp:        inTs,
			PairID:           pairID,
			CorrectionReason: p.Reason,
			IsManualEntry:    true,
		},
		{
			ID:               uuid.NewString(),
			OwnerID:          ownerID,
			StaffID:          staff.ID,
			Type:             model.TypeClockOut,
			Timestamp:        outTs,
			PairID:           pairID,
			CorrectionReason: p.Reason,
			IsManualEntry:    true,
		},
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, rec := range records {
			history := &model.AttendanceHistory{
				AttendanceID: rec.ID,
				OwnerID:      ownerID,
				PairID:       pairID,
				RecordType:   rec.Type,
				NewTimestamp: &rec.Timestamp,
				Reason:       p.Reason,
				ModifiedBy:   ownerID,
			}
			if err := tx.Create(history).Error; err != nil {
				return err
			}
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PairResult{
		PairID:     pairID,
		ClockInID:  records[0].ID,
		ClockOutID: records[1].ID,
	}, nil
}
