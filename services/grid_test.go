package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHouseCoords(t *testing.T) {
	got := HouseCoords(GridCols, GridRows)
	want := []Coord{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}}
	assert.Equal(t, want, got)

	// grids too small for the 2x2 block have no house
	assert.Nil(t, HouseCoords(1, 10))
	assert.Nil(t, HouseCoords(10, 1))
}

func TestIsHouse(t *testing.T) {
	assert.True(t, IsHouse(4, 4, GridCols, GridRows))
	assert.True(t, IsHouse(5, 5, GridCols, GridRows))
	assert.False(t, IsHouse(3, 4, GridCols, GridRows))
	assert.False(t, IsHouse(6, 5, GridCols, GridRows))
	assert.False(t, IsHouse(0, 0, GridCols, GridRows))
}

func TestInGrid(t *testing.T) {
	assert.True(t, InGrid(0, 0, GridCols, GridRows))
	assert.True(t, InGrid(9, 9, GridCols, GridRows))
	assert.False(t, InGrid(-1, 0, GridCols, GridRows))
	assert.False(t, InGrid(0, -1, GridCols, GridRows))
	assert.False(t, InGrid(10, 0, GridCols, GridRows))
	assert.False(t, InGrid(0, 10, GridCols, GridRows))
}
