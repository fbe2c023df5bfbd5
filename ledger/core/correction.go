package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/ledger/model"
)

type CorrectionParams struct {
	StaffID string
	PairID  string // empty means "create the missing record for this slot"
	Date    string // "2006-01-02", interpreted in JST
	Type    model.RecordType
	Time    string // "15:04"
	Note    *string
	Reason  string
}

// Correct fixes one side of a pair. With a pair id it patches the existing
// record of that type; without one it creates the record that should have
// existed, pairing it exactly as RecordClock would. The audit row is written
// before the record mutation, inside the same transaction, so a mutation can
// never outlive its audit trail.
func Correct(db *gorm.DB, ownerID string, p CorrectionParams) (*ClockResult, error) {
	if !p.Type.Valid() {
		return nil, invalidf("invalid record type %q", p.Type)
	}
	newTs, err := TimeOnDateJST(p.Date, p.Time)
	if err != nil {
		return nil, err
	}

	if p.PairID != "" {
		return correctExisting(db, ownerID, p, newTs)
	}
	return correctByCreating(db, ownerID, p, newTs)
}

func correctExisting(db *gorm.DB, ownerID string, p CorrectionParams, newTs int64) (*ClockResult, error) {
	var result ClockResult

	err := db.Transaction(func(tx *gorm.DB) error {
		var rec model.AttendanceRecord
		err := tx.
			Where("owner_id = ? AND pair_id = ? AND type = ?", ownerID, p.PairID, p.Type).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("target record not found for pair %s", p.PairID)
		}
		if err != nil {
			return err
		}

		newNote := rec.Note
		if p.Note != nil {
			newNote = *p.Note
		}

		history := &model.AttendanceHistory{
			AttendanceID: rec.ID,
			OwnerID:      ownerID,
			PairID:       rec.PairID,
			RecordType:   rec.Type,
			OldTimestamp: &rec.Timestamp,
			NewTimestamp: &newTs,
			OldNote:      &rec.Note,
			NewNote:      &newNote,
			Reason:       p.Reason,
			ModifiedBy:   ownerID,
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}

		now := time.Now().UnixMilli()
		updates := map[string]interface{}{
			"timestamp":         newTs,
			"note":              newNote,
			"corrected_at":      now,
			"correction_reason": p.Reason,
		}
		if err := tx.Model(&rec).Updates(updates).Error; err != nil {
			return err
		}

		result = ClockResult{RecordID: rec.ID, PairID: rec.PairID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// correctByCreating covers the slot that never got a record: a clock_in
// self-pairs, a clock_out resolves the nearest prior clock_in. The history
// row's absent old timestamp marks the creation.
func correctByCreating(db *gorm.DB, ownerID string, p CorrectionParams, newTs int64) (*ClockResult, error) {
	staff, err := core.FindStaffByID(db, ownerID, p.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, notFoundf("staff %s", p.StaffID)
	}

	note := ""
	if p.Note != nil {
		note = *p.Note
	}

	rec := &model.AttendanceRecord{
		ID:               uuid.NewString(),
		OwnerID:          ownerID,
		StaffID:          staff.ID,
		Type:             p.Type,
		Timestamp:        newTs,
		Note:             note,
		CorrectionReason: p.Reason,
		IsManualEntry:    true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if p.Type == model.TypeClockIn {
			rec.PairID = rec.ID
		} else {
			pairID, err := resolvePriorPair(tx, ownerID, staff.ID, newTs)
			if err != nil {
				return err
			}
			rec.PairID = pairID
		}

		history := &model.AttendanceHistory{
			AttendanceID: rec.ID,
			OwnerID:      ownerID,
			PairID:       rec.PairID,
			RecordType:   rec.Type,
			NewTimestamp: &newTs,
			NewNote:      &note,
			Reason:       p.Reason,
			ModifiedBy:   ownerID,
		}
		if err := tx.Create(history).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, err
	}

	return &ClockResult{RecordID: rec.ID, PairID: rec.PairID}, nil
}
