package model

import "time"

// WorkShift is an owner-defined shift template. Start and Finish are wall
// clock strings like "09:00"; a finish before the start means the shift
// crosses midnight.
type WorkShift struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID      string `gorm:"size:36;not null;index" json:"ownerId"`
	Name         string `gorm:"size:120;not null" json:"name"`
	Start        string `gorm:"size:5;not null" json:"start"`
	Finish       string `gorm:"size:5;not null" json:"finish"`
	BreakMinutes int32  `gorm:"not null;default:0" json:"breakMinutes"`
	IsDefault    bool   `gorm:"not null;default:false" json:"isDefault"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"-"`
}

func (WorkShift) TableName() string {
	return "work_shifts"
}
