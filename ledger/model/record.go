package model

import "time"

type RecordType string

const (
	TypeClockIn  RecordType = "clock_in"
	TypeClockOut RecordType = "clock_out"
)

func (t RecordType) Valid() bool {
	return t == TypeClockIn || t == TypeClockOut
}

// AttendanceRecord is one clock event. Timestamps are raw UTC epoch
// milliseconds; JST conversion happens only at boundary computation and
// display time.
type AttendanceRecord struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string     `gorm:"size:36;not null;index:idx_records_owner_ts,priority:1" json:"ownerId"`
	StaffID   string     `gorm:"size:36;not null;index:idx_records_staff_ts,priority:1" json:"staffId"`
	Type      RecordType `gorm:"size:16;not null" json:"type"`
	Timestamp int64      `gorm:"not null;index:idx_records_owner_ts,priority:2;index:idx_records_staff_ts,priority:2" json:"timestamp"`

	// PairID groups one clock_in with at most one clock_out. A clock_in pairs
	// to its own id unless the pair was created manually; an orphan clock_out
	// keeps it empty.
	PairID string `gorm:"column:pair_id;size:36;index" json:"pairId,omitempty"`

	Note             string `gorm:"size:500" json:"note,omitempty"`
	CorrectedAt      *int64 `json:"correctedAt,omitempty"`
	CorrectionReason string `gorm:"size:500" json:"correctionReason,omitempty"`
	IsManualEntry    bool   `gorm:"not null;default:false" json:"isManualEntry"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"-"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// PairKey is the grouping key for pairing queries: the pair id when set,
// otherwise the record's own id so unpaired records get their own bucket.
func (r *AttendanceRecord) PairKey() string {
	if r.PairID != "" {
		return r.PairID
	}
	return r.ID
}
