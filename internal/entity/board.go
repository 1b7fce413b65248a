package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	MinBoardSize = 1
	MaxBoardSize = 20
)

// Board is one player's grid, indexed [x][y].
type Board struct {
	Width  int
	Height int
	cells  [][]bool
}

func NewBoard(width, height int) *Board {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
	}

	return &Board{
		Width:  width,
		Height: height,
		cells:  cells,
	}
}

func (that *Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < that.Width && y < that.Height
}

func (that *Board) Occupied(x, y int) bool {
	return that.InBounds(x, y) && that.cells[x][y]
}

// OccupiedCount - returns the number of ship cells still on the board.
func (that *Board) OccupiedCount() int {
	count := 0
	for x := range that.cells {
		for y := range that.cells[x] {
			if that.cells[x][y] {
				count++
			}
		}
	}

	return count
}

func (that *Board) Clone() *Board {
	clone := NewBoard(that.Width, that.Height)
	for x := range that.cells {
		copy(clone.cells[x], that.cells[x])
	}

	return clone
}

// Place - puts a footprint at (x, y) after checking every occupied cell for bounds and overlap.
// Nothing is written when a check fails. Returns the number of cells placed.
func (that *Board) Place(footprint Footprint, x, y int) (int, error) {
	for i := range FootprintSize {
		for j := range FootprintSize {
			if !footprint[i][j] {
				continue
			}

			if !that.InBounds(x+i, y+j) {
				return 0, fmt.Errorf("%w: cell %d,%d", apperror.ErrOutOfBounds, x+i, y+j)
			}

			if that.cells[x+i][y+j] {
				return 0, fmt.Errorf("%w: cell %d,%d", apperror.ErrOverlap, x+i, y+j)
			}
		}
	}

	placed := 0
	for i := range FootprintSize {
		for j := range FootprintSize {
			if footprint[i][j] {
				that.cells[x+i][y+j] = true
				placed++
			}
		}
	}

	return placed, nil
}

// Strike - clears a ship cell, reports whether the cell held a ship.
func (that *Board) Strike(x, y int) bool {
	if !that.Occupied(x, y) {
		return false
	}

	that.cells[x][y] = false

	return true
}
