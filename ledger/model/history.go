package model

import "time"

// AttendanceHistory is an append-only audit entry. OldTimestamp absent marks
// a creation, NewTimestamp absent marks a deletion.
type AttendanceHistory struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	AttendanceID string     `gorm:"size:36;not null;index" json:"attendanceId"`
	OwnerID      string     `gorm:"size:36;not null;index" json:"ownerId"`
	PairID       string     `gorm:"column:pair_id;size:36;index" json:"pairId,omitempty"`
	RecordType   RecordType `gorm:"size:16;not null" json:"recordType"`

	OldTimestamp *int64  `json:"oldTimestamp,omitempty"`
	NewTimestamp *int64  `json:"newTimestamp,omitempty"`
	OldNote      *string `gorm:"size:500" json:"oldNote,omitempty"`
	NewNote      *string `gorm:"size:500" json:"newNote,omitempty"`
	Reason       string  `gorm:"size:500" json:"reason,omitempty"`

	ModifiedBy string    `gorm:"size:36;not null" json:"modifiedBy"`
	ModifiedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"modifiedAt"`
}

func (AttendanceHistory) TableName() string {
	return "attendance_histories"
}
