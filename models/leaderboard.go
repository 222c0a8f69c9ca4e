package models

import "time"

// LeaderboardWeek accumulates one user's coins for one calendar week. The week
// key is always the Monday 00:00 of the week in server-local time; rows are
// only ever created or incremented.
type LeaderboardWeek struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WeekStartDate time.Time `gorm:"not null;uniqueIndex:uniq_week_user,priority:1" json:"week_start_date"`
	UserID        uint      `gorm:"not null;uniqueIndex:uniq_week_user,priority:2" json:"user_id"`
	Coins         int       `gorm:"not null;default:0" json:"coins"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
