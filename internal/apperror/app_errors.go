package apperror

import "errors"

// Sequencing errors: wrong sender, wrong phase, wrong turn.
var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrWrongSender        = errors.New("command is not allowed for this player")
	ErrDimensionsSet      = errors.New("board dimensions are already set")
	ErrDimensionsNotSet   = errors.New("board dimensions are not set")
	ErrGameIsNotStarted   = errors.New("game is not started")
	ErrNotYourTurn        = errors.New("it's not your turn")
	ErrFleetAlreadyPlaced = errors.New("fleet is already placed")
	ErrGameFinished       = errors.New("game is already finished")
)

// Malformed argument errors.
var (
	ErrBadDimensions = errors.New("invalid board dimensions")
	ErrBadFleet      = errors.New("invalid fleet description")
	ErrBadShot       = errors.New("invalid shot coordinates")
)

// Placement geometry errors.
var (
	ErrBadPieceType = errors.New("invalid piece type")
	ErrBadRotation  = errors.New("invalid piece rotation")
	ErrOutOfBounds  = errors.New("piece is out of board bounds")
	ErrOverlap      = errors.New("piece overlaps another piece")
)

// Gameplay rule errors.
var (
	ErrShotOutOfRange = errors.New("shot is out of board range")
	ErrCellAttacked   = errors.New("cell is already attacked")
)

const DefaultCode = 100

var codes = []struct {
	err  error
	code int
}{
	{ErrUnknownCommand, 100},
	{ErrWrongSender, 100},
	{ErrDimensionsSet, 100},
	{ErrDimensionsNotSet, 101},
	{ErrGameIsNotStarted, 102},
	{ErrNotYourTurn, 102},
	{ErrFleetAlreadyPlaced, 102},
	{ErrBadDimensions, 200},
	{ErrBadFleet, 201},
	{ErrBadShot, 202},
	{ErrBadPieceType, 300},
	{ErrBadRotation, 301},
	{ErrOutOfBounds, 302},
	{ErrOverlap, 303},
	{ErrShotOutOfRange, 400},
	{ErrCellAttacked, 401},
}

// Code - returns the wire code of a protocol error, DefaultCode for anything unknown.
func Code(err error) int {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}

	return DefaultCode
}
