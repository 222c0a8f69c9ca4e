package services

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svenriksen/syncshack-2025/models"
)

func TestTreePrice(t *testing.T) {
	cases := map[string]int{
		models.TreePine:   150,
		models.TreeBamboo: 200,
		models.TreeMaple:  300,
		models.TreeBonsai: 500,
		models.TreeSakura: 650,
	}
	for treeType, want := range cases {
		price, err := TreePrice(treeType)
		require.NoError(t, err, treeType)
		assert.Equal(t, want, price, treeType)
	}

	_, err := TreePrice("oak")
	assert.ErrorIs(t, err, ErrUnknownTreeType)

	// withered trees are not purchasable
	_, err = TreePrice(models.TreeWithered)
	assert.ErrorIs(t, err, ErrUnknownTreeType)
}

func TestRemovalRefundIsHalfPriceFloored(t *testing.T) {
	// Remove refunds TreePrices[type]/2 in integer arithmetic.
	assert.Equal(t, 75, TreePrices[models.TreePine]/2)
	assert.Equal(t, 100, TreePrices[models.TreeBamboo]/2)
	assert.Equal(t, 325, TreePrices[models.TreeSakura]/2)
	assert.Equal(t, 0, TreePrices[models.TreeWithered]/2)
}

func TestInsufficientFundsError(t *testing.T) {
	base := &InsufficientFundsError{Required: 150, Available: 40}
	assert.Equal(t, "not enough coins: need 150, have 40", base.Error())

	wrapped := fmt.Errorf("plant pine: %w", base)
	got, ok := IsInsufficientFunds(wrapped)
	require.True(t, ok)
	assert.Equal(t, 150, got.Required)
	assert.Equal(t, 40, got.Available)

	_, ok = IsInsufficientFunds(ErrTileOccupied)
	assert.False(t, ok)
}

func TestPlantRejectsReservedAndOffGridCells(t *testing.T) {
	// Location checks run before any query, so no DB handle is needed.
	svc := NewGardenService(nil)

	for _, c := range HouseCoords(GridCols, GridRows) {
		_, err := svc.Plant(1, c.X, c.Y, models.TreePine)
		assert.ErrorIs(t, err, ErrInvalidLocation, "house cell (%d,%d)", c.X, c.Y)
	}

	offGrid := []Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: GridCols, Y: 0}, {X: 0, Y: GridRows}}
	for _, c := range offGrid {
		_, err := svc.Plant(1, c.X, c.Y, models.TreePine)
		assert.ErrorIs(t, err, ErrInvalidLocation, "cell (%d,%d)", c.X, c.Y)
	}

	_, err := svc.Plant(1, 0, 0, "oak")
	assert.ErrorIs(t, err, ErrUnknownTreeType)
}

func profileRows(coins int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "total_coins"}).AddRow(1, 1, coins)
}

func TestPlantDebitsBalance(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGardenService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `profiles` WHERE user_id = \\?.*FOR UPDATE").
		WillReturnRows(profileRows(200))
	mock.ExpectQuery("SELECT \\* FROM `garden_tiles` WHERE user_id = \\? AND x = \\? AND y = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO `garden_tiles`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE `profiles` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Plant(1, 0, 0, models.TreePine)
	require.NoError(t, err)
	assert.Equal(t, models.TreePine, result.Tile.Type)
	assert.Equal(t, models.TileAlive, result.Tile.Status)
	assert.Equal(t, 50, result.NewBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlantInsufficientFunds(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGardenService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `profiles` WHERE user_id = \\?.*FOR UPDATE").
		WillReturnRows(profileRows(40))
	mock.ExpectRollback()

	_, err := svc.Plant(1, 0, 0, models.TreePine)
	funds, ok := IsInsufficientFunds(err)
	require.True(t, ok)
	assert.Equal(t, 150, funds.Required)
	assert.Equal(t, 40, funds.Available)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlantOccupiedTile(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGardenService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `profiles` WHERE user_id = \\?.*FOR UPDATE").
		WillReturnRows(profileRows(500))
	mock.ExpectQuery("SELECT \\* FROM `garden_tiles` WHERE user_id = \\? AND x = \\? AND y = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "x", "y", "type"}).
			AddRow(9, 1, 0, 0, models.TreeBamboo))
	mock.ExpectRollback()

	_, err := svc.Plant(1, 0, 0, models.TreePine)
	assert.ErrorIs(t, err, ErrTileOccupied)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveRefundsHalfPrice(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGardenService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `garden_tiles` WHERE user_id = \\? AND x = \\? AND y = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "x", "y", "type", "status"}).
			AddRow(9, 1, 2, 3, models.TreePine, models.TileAlive))
	mock.ExpectExec("INSERT INTO `profiles`.*ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `garden_tiles`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	refund, err := svc.Remove(1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 75, refund)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveEmptyTile(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewGardenService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `garden_tiles` WHERE user_id = \\? AND x = \\? AND y = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Remove(1, 2, 3)
	assert.ErrorIs(t, err, ErrTileNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
