package models

import "time"

// Profile holds per-user game state. One row per user, created lazily on the
// first coin-earning or garden action.
type Profile struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	UserID              uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalCoins          int        `gorm:"not null;default:0" json:"total_coins"`
	CurrentStreak       int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak       int        `gorm:"not null;default:0" json:"longest_streak"`
	LastActiveDate      *time.Time `json:"last_active_date"`
	TreesPlantedVirtual int        `gorm:"not null;default:0" json:"trees_planted_virtual"`
	TreesPlantedReal    int        `gorm:"not null;default:0" json:"trees_planted_real"`
	Bio                 string     `gorm:"size:280" json:"bio"`
	Location            string     `gorm:"size:80" json:"location"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
