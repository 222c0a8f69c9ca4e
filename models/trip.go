package models

import "time"

// Trip is an immutable record of one completed journey. Rows are created once
// per journey and never updated or deleted.
type Trip struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	StartLat     float64   `gorm:"not null" json:"start_lat"`
	StartLng     float64   `gorm:"not null" json:"start_lng"`
	EndLat       float64   `gorm:"not null" json:"end_lat"`
	EndLng       float64   `gorm:"not null" json:"end_lng"`
	DistanceM    float64   `gorm:"not null" json:"distance_m"`
	DurationS    int       `gorm:"not null" json:"duration_s"`
	ModeGuess    string    `gorm:"size:16;not null;default:'unknown'" json:"mode_guess"`
	Valid        bool      `gorm:"not null;default:false" json:"valid"`
	CoinsAwarded int       `gorm:"not null;default:0" json:"coins_awarded"`
	StartedAt    time.Time `gorm:"index;not null" json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
	Polyline     string    `gorm:"type:text" json:"polyline"` // JSON array of route points
	CreatedAt    time.Time `json:"created_at"`
}
