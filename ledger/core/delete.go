package core

import (
	"errors"

	"gorm.io/gorm"

	"kintai.app/kintai/ledger/model"
)

// DeletePair removes one shift: the clock_in resolved by pairID and, when
// present, its matching clock_out. The pair id must resolve to a clock_in; a
// clock_out's own id never does, so deleting "via" a clock_out is rejected as
// NotFound. Not idempotent: a second call fails the same way. Each deleted
// record first gets a delete-marker history row (absent new timestamp) in the
// same transaction.
func DeletePair(db *gorm.DB, ownerID, pairID, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var clockIn model.AttendanceRecord
		err := tx.
			Where("owner_id = ? AND pair_id = ? AND type = ?", ownerID, pairID, model.TypeClockIn).
			First(&clockIn).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("pair %s", pairID)
		}
		if err != nil {
			return err
		}

		if err := deleteWithHistory(tx, &clockIn, reason); err != nil {
			return err
		}

		var clockOut model.AttendanceRecord
		err = tx.
			Where("owner_id = ? AND pair_id = ? AND type = ?", ownerID, pairID, model.TypeClockOut).
			First(&clockOut).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // open pair: nothing more to delete
		}
		if err != nil {
			return err
		}

		return deleteWithHistory(tx, &clockOut, reason)
	})
}

func deleteWithHistory(tx *gorm.DB, rec *model.AttendanceRecord, reason string) error {
	history := &model.AttendanceHistory{
		AttendanceID: rec.ID,
		OwnerID:      rec.OwnerID,
		PairID:       rec.PairID,
		RecordType:   rec.Type,
		OldTimestamp: &rec.Timestamp,
		OldNote:      &rec.Note,
		Reason:       reason,
		ModifiedBy:   rec.OwnerID,
	}
	if err := tx.Create(history).Error; err != nil {
		return err
	}
	return tx.Delete(rec).Error
}

// PairHistory returns the audit trail for one pair, newest first.
func PairHistory(db *gorm.DB, ownerID, pairID string) ([]model.AttendanceHistory, error) {
	var rows []model.AttendanceHistory
	err := db.
		Where("owner_id = ? AND pair_id = ?", ownerID, pairID).
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFoundf("pair %s", pairID)
	}
	return rows, nil
}
