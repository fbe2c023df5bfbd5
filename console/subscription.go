package console

import (
	"time"
)

type Subscription struct {
	ID          int        `gorm:"column:id;primaryKey;autoIncrement"`
	Key         string     `gorm:"column:key;type:varchar(255);not null"`
	StaffLimit  int        `gorm:"column:staffLimit;not null"`
	Edition     string     `gorm:"column:edition;type:varchar(255);not null"`
	Type        string     `gorm:"column:type;type:varchar(255);not null"`
	SyncedAt    *time.Time `gorm:"column:syncedAt"` // nullable
	ExpiredAt   time.Time  `gorm:"column:expiredAt;not null"`
	CreatedAt   time.Time  `gorm:"column:createdAt;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updatedAt;autoUpdateTime"`
	Version     int        `gorm:"column:version;not null"`
	OwnerID     *string    `gorm:"column:ownerId;size:36"` // nullable foreign key
	Deactivated int8       `gorm:"column:deactivated;not null"` // TINYINT(3)
	Environment string     `gorm:"column:environment;type:varchar(50);not null;default:production"`

	// Relations
	Owner Owner `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
