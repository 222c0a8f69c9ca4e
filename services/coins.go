package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/svenriksen/syncshack-2025/models"
)

// CreditCoins adds amount to the user's balance, creating the profile row on
// first contact. The increment happens inside the database so concurrent
// credits for the same user cannot lose updates.
func CreditCoins(tx *gorm.DB, userID uint, amount int) error {
	if amount <= 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_coins": gorm.Expr("total_coins + ?", amount),
			"updated_at":  time.Now(),
		}),
	}).Create(&models.Profile{UserID: userID, TotalCoins: amount}).Error
}

// lockProfile loads the user's profile row FOR UPDATE, creating it first when
// absent so there is always a row to lock.
func lockProfile(tx *gorm.DB, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{UserID: userID}
		if err := tx.Create(&profile).Error; err != nil {
			return nil, err
		}
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&profile).Error
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Balance returns the user's coin balance, zero when no profile exists yet.
func Balance(db *gorm.DB, userID uint) (int, error) {
	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return profile.TotalCoins, nil
}
