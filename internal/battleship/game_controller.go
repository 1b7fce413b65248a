package battleship

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/protocol"
)

// Reply is an outbound message addressed to player 1 or 2.
type Reply struct {
	To   int
	Text string
}

// Result holds the replies of an accepted command. Finished is set when the command ended the match,
// Shot when it resolved a shot.
type Result struct {
	Replies  []Reply
	Finished bool
	Shot     *entity.Shot
}

// Outcome of a resolved shot. Remaining is the defender's ship cell count after the shot,
// Sunk is set when it destroyed the last one.
type Outcome struct {
	Hit       bool
	Remaining int
	Sunk      bool
}

// HandleCommand - applies one raw command from player to the match. A returned error leaves
// the match unchanged and must be reported to the sender only.
func HandleCommand(match *entity.Match, player int, raw string) (Result, error) {
	if match.IsFinished() {
		return Result{}, apperror.ErrGameFinished
	}

	if _, err := match.Player(player); err != nil {
		return Result{}, err
	}

	cmd := protocol.Parse(raw)

	switch cmd.Tag {
	case protocol.TagDimensions:
		return Result{}, setDimensions(match, player, cmd)
	case protocol.TagFleet:
		return Result{}, placeFleet(match, player, cmd)
	case protocol.TagShoot:
		return shoot(match, player, cmd)
	case protocol.TagQuery:
		return query(match, player), nil
	case protocol.TagForfeit:
		return Forfeit(match, player, entity.ReasonForfeit), nil
	default:
		return Result{}, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, cmd.Tag)
	}
}

// Disconnect - a dropped connection forfeits the match for that player.
func Disconnect(match *entity.Match, player int) (Result, error) {
	if match.IsFinished() {
		return Result{}, apperror.ErrGameFinished
	}

	if _, err := match.Player(player); err != nil {
		return Result{}, err
	}

	return Forfeit(match, player, entity.ReasonDisconnect), nil
}

// Forfeit - declares the opponent of loser the winner and finishes the match.
func Forfeit(match *entity.Match, loser int, reason string) Result {
	winner := entity.Opponent(loser)
	match.Finish(winner, reason)

	return Result{
		Replies: []Reply{
			{To: winner, Text: protocol.Win},
			{To: loser, Text: protocol.Loss},
		},
		Finished: true,
	}
}

// RecordShot - resolves a shot of attacker at (x, y) and appends it to the attacker's ledger.
func RecordShot(match *entity.Match, attacker, x, y int) (Outcome, error) {
	shooter, err := match.Player(attacker)
	if err != nil {
		return Outcome{}, err
	}

	defender, err := match.Player(entity.Opponent(attacker))
	if err != nil {
		return Outcome{}, err
	}

	if shooter.Ledger.Attacked(x, y) {
		return Outcome{}, fmt.Errorf("%w: cell %d,%d", apperror.ErrCellAttacked, x, y)
	}

	hit := defender.TakeShot(x, y)
	shooter.Ledger.Append(entity.Shot{X: x, Y: y, Hit: hit})

	return Outcome{Hit: hit, Remaining: defender.ShipsRemaining, Sunk: defender.IsDefeated()}, nil
}

func setDimensions(match *entity.Match, player int, cmd protocol.Command) error {
	if player != entity.PlayerOne {
		return apperror.ErrWrongSender
	}

	if match.HasDimensions() {
		return apperror.ErrDimensionsSet
	}

	width, height, err := cmd.Dimensions()
	if err != nil {
		return err
	}

	return match.SetDimensions(width, height)
}

func placeFleet(match *entity.Match, player int, cmd protocol.Command) error {
	if !match.HasDimensions() {
		return apperror.ErrDimensionsNotSet
	}

	owner, err := match.Player(player)
	if err != nil {
		return err
	}

	if owner.Ready {
		return apperror.ErrFleetAlreadyPlaced
	}

	specs, err := cmd.Fleet()
	if err != nil {
		return err
	}

	return owner.PlaceFleet(specs)
}

func shoot(match *entity.Match, player int, cmd protocol.Command) (Result, error) {
	if err := match.StartIfReady(); err != nil {
		return Result{}, err
	}

	if err := match.ConfirmTurn(player); err != nil {
		return Result{}, err
	}

	x, y, err := cmd.Shot()
	if err != nil {
		return Result{}, err
	}

	if x < 0 || x >= match.Width || y < 0 || y >= match.Height {
		return Result{}, fmt.Errorf("%w: %d,%d", apperror.ErrShotOutOfRange, x, y)
	}

	outcome, err := RecordShot(match, player, x, y)
	if err != nil {
		return Result{}, err
	}

	shot := &entity.Shot{X: x, Y: y, Hit: outcome.Hit}

	if outcome.Sunk {
		match.Finish(player, entity.ReasonSunk)

		return Result{
			Replies: []Reply{
				{To: player, Text: protocol.Win},
				{To: entity.Opponent(player), Text: protocol.Loss},
			},
			Finished: true,
			Shot:     shot,
		}, nil
	}

	match.PassTurn()

	return Result{
		Replies: []Reply{{To: player, Text: protocol.ShotResult(outcome.Remaining, outcome.Hit)}},
		Shot:    shot,
	}, nil
}

func query(match *entity.Match, player int) Result {
	owner, _ := match.Player(player)
	remaining, shots := owner.History()

	return Result{
		Replies: []Reply{{To: player, Text: protocol.History(remaining, shots)}},
	}
}
