package models

import "time"

// Tree types sold in the garden shop. "withered" is terminal and not purchasable.
const (
	TreePine     = "pine"
	TreeBamboo   = "bamboo"
	TreeMaple    = "maple"
	TreeBonsai   = "bonsai"
	TreeSakura   = "sakura"
	TreeWithered = "withered"
)

// Tile status values.
const (
	TileAlive    = "alive"
	TileWithered = "withered"
)

// GardenTile is one occupied cell in a user's planting grid. At most one row
// exists per (user_id, x, y).
type GardenTile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uniq_user_tile,priority:1" json:"user_id"`
	X         int       `gorm:"not null;uniqueIndex:uniq_user_tile,priority:2" json:"x"`
	Y         int       `gorm:"not null;uniqueIndex:uniq_user_tile,priority:3" json:"y"`
	Type      string    `gorm:"size:16;not null" json:"type"`
	Status    string    `gorm:"size:16;not null;default:'alive'" json:"status"`
	PlantedAt time.Time `gorm:"index;not null" json:"planted_at"`
}
