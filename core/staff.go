package core

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Staff is a clockable person belonging to one owner (tenant). QRToken is the
// bare credential accepted on the no-auth clock path.
type Staff struct {
	ID       string  `gorm:"primaryKey;size:36" json:"id"`
	OwnerID  string  `gorm:"size:36;not null;index" json:"ownerId"`
	Name     string  `gorm:"size:120;not null" json:"name"`
	Code     string  `gorm:"size:50" json:"code,omitempty"`
	QRToken  string  `gorm:"column:qr_token;size:36;uniqueIndex" json:"qrToken,omitempty"`
	IsActive bool    `gorm:"not null;default:true" json:"isActive"`
	Photo    *string `json:"photo,omitempty"`

	Attributes datatypes.JSON `json:"attributes,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP;<-:create" json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP on update CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (Staff) TableName() string {
	return "staff"
}

// FindStaffByID resolves a staff member within the caller's ownership
// boundary. Returns (nil, nil) when no such staff exists for this owner.
func FindStaffByID(db *gorm.DB, ownerID, id string) (*Staff, error) {
	var s Staff
	result := db.Where("id = ? AND owner_id = ?", id, ownerID).First(&s)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &s, nil
}

// FindStaffByQRToken resolves both staff and owner purely from the token.
func FindStaffByQRToken(db *gorm.DB, token string) (*Staff, error) {
	var s Staff
	result := db.Where("qr_token = ?", token).First(&s)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &s, nil
}

// ListStaff returns all staff for one owner ordered by name.
func ListStaff(db *gorm.DB, ownerID string) ([]Staff, error) {
	var staff []Staff
	if err := db.Where("owner_id = ?", ownerID).Order("name").Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}
