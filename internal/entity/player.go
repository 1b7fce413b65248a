package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	PlayerOne = 1
	PlayerTwo = 2

	FleetSize = 5
)

type Player struct {
	Num            int
	Board          *Board
	ShipsRemaining int
	Ready          bool
	Ledger         Ledger
}

func NewPlayer(num int) *Player {
	return &Player{Num: num}
}

// PlaceFleet - validates the whole fleet on a copy of the board and commits it only when all
// pieces fit. On failure the board and ships counter are left as they were.
func (that *Player) PlaceFleet(specs []PieceSpec) error {
	if that.Board == nil {
		return apperror.ErrDimensionsNotSet
	}

	if that.Ready {
		return apperror.ErrFleetAlreadyPlaced
	}

	if len(specs) != FleetSize {
		return fmt.Errorf("%w: %d pieces", apperror.ErrBadFleet, len(specs))
	}

	staged := that.Board.Clone()
	cells := 0

	for n, spec := range specs {
		footprint, err := Instantiate(spec.Type, spec.Rotation)
		if err != nil {
			return fmt.Errorf("piece %d: %w", n+1, err)
		}

		placed, err := staged.Place(footprint, spec.X, spec.Y)
		if err != nil {
			return fmt.Errorf("piece %d: %w", n+1, err)
		}

		cells += placed
	}

	that.Board = staged
	that.ShipsRemaining += cells
	that.Ready = true

	return nil
}

// TakeShot - resolves an incoming shot against this player's board.
func (that *Player) TakeShot(x, y int) bool {
	if !that.Board.Strike(x, y) {
		return false
	}

	that.ShipsRemaining--

	return true
}

// History - returns the ships counter and the shots this player has fired.
func (that *Player) History() (int, []Shot) {
	return that.ShipsRemaining, that.Ledger.Shots()
}

// IsDefeated - reports whether every ship cell was destroyed.
func (that *Player) IsDefeated() bool {
	return that.Ready && that.ShipsRemaining == 0
}
