package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// Command tags, the first token of every inbound message.
const (
	TagDimensions = "D"
	TagFleet      = "I"
	TagShoot      = "S"
	TagQuery      = "Q"
	TagForfeit    = "F"
)

const fieldsPerPiece = 4

type Command struct {
	Tag  string
	Args []string
}

// Parse - splits a raw message into its tag and arguments.
func Parse(raw string) Command {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Command{}
	}

	return Command{Tag: fields[0], Args: fields[1:]}
}

// Dimensions - reads `D w h` arguments. Range checks belong to the match.
func (that Command) Dimensions() (int, int, error) {
	values, err := ints(that.Args, 2)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperror.ErrBadDimensions, err)
	}

	return values[0], values[1], nil
}

// Fleet - reads the five `type rotation x y` quadruples of an `I` command.
func (that Command) Fleet() ([]entity.PieceSpec, error) {
	values, err := ints(that.Args, entity.FleetSize*fieldsPerPiece)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrBadFleet, err)
	}

	specs := make([]entity.PieceSpec, 0, entity.FleetSize)
	for i := 0; i < len(values); i += fieldsPerPiece {
		specs = append(specs, entity.PieceSpec{
			Type:     values[i],
			Rotation: values[i+1],
			X:        values[i+2],
			Y:        values[i+3],
		})
	}

	return specs, nil
}

// Shot - reads `S x y` arguments.
func (that Command) Shot() (int, int, error) {
	values, err := ints(that.Args, 2)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperror.ErrBadShot, err)
	}

	return values[0], values[1], nil
}

func ints(args []string, want int) ([]int, error) {
	if len(args) != want {
		return nil, fmt.Errorf("want %d arguments, got %d", want, len(args))
	}

	values := make([]int, len(args))
	for i, arg := range args {
		value, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = value
	}

	return values, nil
}
