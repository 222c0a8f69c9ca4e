package services

// Garden grid dimensions. The grid is square in the current game but the
// geometry helpers take explicit cols/rows so callers can render other sizes.
const (
	GridCols = 10
	GridRows = 10
)

// Coord is an integer grid coordinate.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// HouseCoords returns the reserved 2x2 block at the grid center. Grids smaller
// than 2x2 have no house.
func HouseCoords(cols, rows int) []Coord {
	if cols < 2 || rows < 2 {
		return nil
	}
	cx0 := cols/2 - 1
	cy0 := rows/2 - 1
	return []Coord{
		{X: cx0, Y: cy0},
		{X: cx0 + 1, Y: cy0},
		{X: cx0, Y: cy0 + 1},
		{X: cx0 + 1, Y: cy0 + 1},
	}
}

// IsHouse reports whether (x, y) falls on the reserved house block.
func IsHouse(x, y, cols, rows int) bool {
	for _, c := range HouseCoords(cols, rows) {
		if c.X == x && c.Y == y {
			return true
		}
	}
	return false
}

// InGrid reports whether (x, y) is a real cell of a cols x rows grid.
func InGrid(x, y, cols, rows int) bool {
	return x >= 0 && x < cols && y >= 0 && y < rows
}
