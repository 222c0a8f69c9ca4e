package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/svenriksen/syncshack-2025/models"
)

// TreePrices is the garden shop price table. Withered trees have no value and
// are not purchasable.
var TreePrices = map[string]int{
	models.TreePine:     150,
	models.TreeBamboo:   200,
	models.TreeMaple:    300,
	models.TreeBonsai:   500,
	models.TreeSakura:   650,
	models.TreeWithered: 0,
}

// TreePrice returns the shop price for a purchasable tree type.
func TreePrice(treeType string) (int, error) {
	if treeType == models.TreeWithered {
		return 0, ErrUnknownTreeType
	}
	price, ok := TreePrices[treeType]
	if !ok {
		return 0, ErrUnknownTreeType
	}
	return price, nil
}

// GardenService owns tile placement, removal and the coin movements they
// imply. Every mutation runs as one transaction: a debit without a planted
// tile (or the reverse) must be impossible.
type GardenService struct {
	db *gorm.DB
}

// NewGardenService creates a GardenService on the given DB handle.
func NewGardenService(db *gorm.DB) *GardenService {
	return &GardenService{db: db}
}

// PlantResult reports a successful planting.
type PlantResult struct {
	Tile       models.GardenTile
	NewBalance int
}

// Plant places a tree at (x, y) for the user, debiting its price. Fails with
// ErrInvalidLocation, ErrTileOccupied or InsufficientFundsError before any
// state changes.
func (g *GardenService) Plant(userID uint, x, y int, treeType string) (*PlantResult, error) {
	if !InGrid(x, y, GridCols, GridRows) || IsHouse(x, y, GridCols, GridRows) {
		return nil, ErrInvalidLocation
	}
	price, err := TreePrice(treeType)
	if err != nil {
		return nil, err
	}

	var result PlantResult
	err = g.db.Transaction(func(tx *gorm.DB) error {
		profile, err := lockProfile(tx, userID)
		if err != nil {
			return err
		}
		if profile.TotalCoins < price {
			return &InsufficientFundsError{Required: price, Available: profile.TotalCoins}
		}

		var existing models.GardenTile
		err = tx.Where("user_id = ? AND x = ? AND y = ?", userID, x, y).First(&existing).Error
		if err == nil {
			return ErrTileOccupied
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		tile := models.GardenTile{
			UserID:    userID,
			X:         x,
			Y:         y,
			Type:      treeType,
			Status:    models.TileAlive,
			PlantedAt: time.Now(),
		}
		if err := tx.Create(&tile).Error; err != nil {
			// Concurrent plant on the same cell trips the unique index.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTileOccupied
			}
			return err
		}

		if err := tx.Model(&models.Profile{}).Where("user_id = ?", userID).
			UpdateColumns(map[string]interface{}{
				"total_coins":           gorm.Expr("total_coins - ?", price),
				"trees_planted_virtual": gorm.Expr("trees_planted_virtual + 1"),
				"updated_at":            time.Now(),
			}).Error; err != nil {
			return err
		}

		result.Tile = tile
		result.NewBalance = profile.TotalCoins - price
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Remove deletes the tile at (x, y) and refunds half its original price,
// rounded down. Withered tiles refund nothing. Fails with ErrTileNotFound when
// the cell is empty; a silent no-op would mask client-side state desync.
func (g *GardenService) Remove(userID uint, x, y int) (int, error) {
	refund := 0
	err := g.db.Transaction(func(tx *gorm.DB) error {
		var tile models.GardenTile
		err := tx.Where("user_id = ? AND x = ? AND y = ?", userID, x, y).First(&tile).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTileNotFound
		}
		if err != nil {
			return err
		}

		refund = TreePrices[tile.Type] / 2
		if err := CreditCoins(tx, userID, refund); err != nil {
			return err
		}
		return tx.Delete(&models.GardenTile{}, tile.ID).Error
	})
	if err != nil {
		return 0, err
	}
	return refund, nil
}

// Garden is the grid view returned to clients: a flat cols*rows array of tree
// types, "empty" for bare cells. Trees on house cells are hidden, the house is
// rendered client-side as a fixed structure.
type Garden struct {
	Tiles []string            `json:"tiles"`
	Trees []models.GardenTile `json:"trees"`
}

// View loads the user's garden as a renderable grid.
func (g *GardenService) View(userID uint) (*Garden, error) {
	var tiles []models.GardenTile
	if err := g.db.Where("user_id = ?", userID).Order("planted_at ASC").Find(&tiles).Error; err != nil {
		return nil, err
	}

	grid := make([]string, GridCols*GridRows)
	for i := range grid {
		grid[i] = "empty"
	}
	visible := make([]models.GardenTile, 0, len(tiles))
	for _, t := range tiles {
		if IsHouse(t.X, t.Y, GridCols, GridRows) {
			continue
		}
		if idx := t.Y*GridCols + t.X; idx >= 0 && idx < len(grid) {
			grid[idx] = t.Type
		}
		visible = append(visible, t)
	}
	return &Garden{Tiles: grid, Trees: visible}, nil
}
