package console

import (
	"time"
)

// Owner is one tenant account. Its ID is the owner_id carried by every row in
// the app schema.
type Owner struct {
	ID        string    `gorm:"primaryKey;size:36;column:id"`
	Code      string    `gorm:"size:255;not null;unique;column:code"`
	Name      string    `gorm:"size:255;not null;column:name"`
	Email     string    `gorm:"size:255;not null;unique;column:email"`
	CreatedAt time.Time `gorm:"precision:6;autoCreateTime;column:createdAt"`
	UpdatedAt time.Time `gorm:"precision:6;autoUpdateTime;column:updatedAt"`
	Version   int       `gorm:"not null;column:version"`
}
