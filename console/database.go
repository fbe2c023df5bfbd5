package console

import (
	"errors"

	"gorm.io/gorm"
)

func GetOwners(db *gorm.DB) ([]Owner, error) {
	var owners []Owner
	err := db.Find(&owners).Error
	return owners, err
}

func FindOwnerByEmail(db *gorm.DB, email string) (*Owner, error) {
	var owner Owner
	err := db.Where(&Owner{Email: email}).First(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &owner, err
}

func FindSubscriptionByOwner(db *gorm.DB, ownerID string) (*Subscription, error) {
	var sub Subscription
	err := db.Where("ownerId = ?", ownerID).Preload("Owner").First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // not found
	}
	return &sub, err
}
