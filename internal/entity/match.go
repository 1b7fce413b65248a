package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	StatusConfiguring = "configuring"
	StatusPlacing     = "placing"
	StatusOngoing     = "ongoing"
	StatusFinished    = "finished"
)

const (
	ReasonSunk       = "sunk"
	ReasonForfeit    = "forfeit"
	ReasonDisconnect = "disconnect"
)

var (
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrUnknownMatchStatus = errors.New("unknown match status")
)

type Match struct {
	ID      string
	Width   int
	Height  int
	Players [2]*Player
	Turn    int
	Status  string
	Winner  int
	Reason  string
}

func NewMatch(id string) *Match {
	return &Match{
		ID:      id,
		Players: [2]*Player{NewPlayer(PlayerOne), NewPlayer(PlayerTwo)},
		Status:  StatusConfiguring,
	}
}

func (that *Match) Player(num int) (*Player, error) {
	if num != PlayerOne && num != PlayerTwo {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, num)
	}

	return that.Players[num-1], nil
}

func Opponent(num int) int {
	if num == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (that *Match) HasDimensions() bool {
	return that.Width > 0 && that.Height > 0
}

// SetDimensions - fixes the board size for both players, allowed once per match.
func (that *Match) SetDimensions(width, height int) error {
	if that.HasDimensions() {
		return apperror.ErrDimensionsSet
	}

	if width < MinBoardSize || width > MaxBoardSize || height < MinBoardSize || height > MaxBoardSize {
		return fmt.Errorf("%w: %dx%d", apperror.ErrBadDimensions, width, height)
	}

	that.Width = width
	that.Height = height

	for _, player := range that.Players {
		player.Board = NewBoard(width, height)
	}

	that.Status = StatusPlacing

	return nil
}

// StartIfReady - moves a placing match to ongoing once both fleets are placed, then
// reports whether shots are allowed.
func (that *Match) StartIfReady() error {
	if that.IsPlacing() && that.Players[0].Ready && that.Players[1].Ready {
		that.Status = StatusOngoing
		that.Turn = PlayerOne
	}

	return that.ConfirmOngoingState()
}

// Awaiting - returns the players the match cannot progress without.
func (that *Match) Awaiting() []int {
	switch {
	case that.IsConfiguring():
		return []int{PlayerOne}
	case that.IsPlacing():
		awaiting := make([]int, 0, len(that.Players))
		for _, player := range that.Players {
			if !player.Ready {
				awaiting = append(awaiting, player.Num)
			}
		}

		if len(awaiting) == 0 {
			// the first shot starts the match
			return []int{PlayerOne}
		}

		return awaiting
	case that.IsOngoing():
		return []int{that.Turn}
	default:
		return nil
	}
}

func (that *Match) ConfirmTurn(num int) error {
	if that.Turn != num {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *Match) PassTurn() {
	that.Turn = Opponent(that.Turn)
}

// Finish - ends the match in favour of winner. Only the first call has an effect.
func (that *Match) Finish(winner int, reason string) {
	if that.IsFinished() {
		return
	}

	that.Status = StatusFinished
	that.Winner = winner
	that.Reason = reason
}

func (that *Match) IsConfiguring() bool {
	return that.Status == StatusConfiguring
}

func (that *Match) IsPlacing() bool {
	return that.Status == StatusPlacing
}

func (that *Match) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Match) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Match) ConfirmOngoingState() error {
	switch {
	case that.IsConfiguring(), that.IsPlacing():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMatchStatus, that.Status)
	}
}
