package core

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kintai.app/kintai/core"
	"kintai.app/kintai/ledger/model"
)

type ClockParams struct {
	StaffID   string
	Type      model.RecordType
	Timestamp *int64 // epoch ms; nil means now
	Note      string
}

type ClockResult struct {
	RecordID string `json:"recordId"`
	PairID   string `json:"pairId,omitempty"`
}

// RecordClock appends one clock event for the authenticated path. The staff
// member must belong to ownerID; is_active is deliberately not checked here,
// only on the QR path (see RecordClockByToken).
func RecordClock(db *gorm.DB, ownerID string, p ClockParams) (*ClockResult, error) {
	if !p.Type.Valid() {
		return nil, invalidf("invalid record type %q", p.Type)
	}
	staff, err := core.FindStaffByID(db, ownerID, p.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, notFoundf("staff %s", p.StaffID)
	}
	return appendClockEvent(db, ownerID, staff.ID, p.Type, clockTimestamp(p.Timestamp), p.Note, false)
}

// RecordClockByToken is the no-auth QR path: both staff and owner are
// resolved purely from the token. Inactive staff are rejected.
func RecordClockByToken(db *gorm.DB, token string, typ model.RecordType, timestamp *int64, note string) (*ClockResult, error) {
	if !typ.Valid() {
		return nil, invalidf("invalid record type %q", typ)
	}
	staff, err := core.FindStaffByQRToken(db, token)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, notFoundf("unknown clock token")
	}
	if !staff.IsActive {
		return nil, invalidf("staff %s is inactive", staff.ID)
	}
	return appendClockEvent(db, staff.OwnerID, staff.ID, typ, clockTimestamp(timestamp), note, false)
}

func clockTimestamp(ts *int64) int64 {
	if ts != nil {
		return *ts
	}
	return time.Now().UnixMilli()
}

// appendClockEvent inserts one record inside a single transaction. A
// clock_in pairs to its own id; ids are generated client side, so the
// self-reference is written in the same insert rather than a second patch. A
// clock_out adopts the pair of the nearest prior clock_in, or stays orphan.
func appendClockEvent(db *gorm.DB, ownerID, staffID string, typ model.RecordType, timestamp int64, note string, manual bool) (*ClockResult, error) {
	rec := &model.AttendanceRecord{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		StaffID:       staffID,
		Type:          typ,
		Timestamp:     timestamp,
		Note:          note,
		IsManualEntry: manual,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if typ == model.TypeClockIn {
			rec.PairID = rec.ID
		} else {
			pairID, err := resolvePriorPair(tx, ownerID, staffID, timestamp)
			if err != nil {
				return err
			}
			rec.PairID = pairID
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, err
	}

	return &ClockResult{RecordID: rec.ID, PairID: rec.PairID}, nil
}

// resolvePriorPair finds the pair key of the latest clock_in strictly before
// the given timestamp. An empty result is not an error: the clock_out stays
// an orphan.
func resolvePriorPair(tx *gorm.DB, ownerID, staffID string, beforeMs int64) (string, error) {
	var prev model.AttendanceRecord
	err := tx.
		Where("owner_id = ? AND staff_id = ? AND type = ? AND timestamp < ?",
			ownerID, staffID, model.TypeClockIn, beforeMs).
		Order("timestamp DESC").
		First(&prev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return prev.PairKey(), nil
}
