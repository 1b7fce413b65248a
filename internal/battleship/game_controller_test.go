package battleship

import (
	"fmt"
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fleet occupies only y 0..3 of a 10x10 board, 20 cells.
const fleet = "I 0 0 0 0 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 0"

func handle(t *testing.T, match *entity.Match, player int, raw string) Result {
	t.Helper()

	result, err := HandleCommand(match, player, raw)
	require.NoError(t, err, raw)

	return result
}

func newPlacingMatch(t *testing.T) *entity.Match {
	t.Helper()

	match := entity.NewMatch("test")
	handle(t, match, entity.PlayerOne, "D 10 10")

	return match
}

func newReadyMatch(t *testing.T) *entity.Match {
	t.Helper()

	match := newPlacingMatch(t)
	handle(t, match, entity.PlayerOne, fleet)
	handle(t, match, entity.PlayerTwo, fleet)

	return match
}

func TestHandleCommand_Dimensions(t *testing.T) {
	t.Run("Player one sets the board", func(t *testing.T) {
		// Given: a new match
		match := entity.NewMatch("test")

		// When: player one sends D 10 10
		result, err := HandleCommand(match, entity.PlayerOne, "D 10 10")

		// Then: nothing is sent back and both boards exist
		require.NoError(t, err)
		assert.Empty(t, result.Replies)
		assert.Equal(t, entity.StatusPlacing, match.Status)
		assert.Equal(t, 10, match.Players[1].Board.Width)
	})

	t.Run("Player two may not set the board", func(t *testing.T) {
		match := entity.NewMatch("test")

		_, err := HandleCommand(match, entity.PlayerTwo, "D 10 10")

		require.ErrorIs(t, err, apperror.ErrWrongSender)
		assert.Equal(t, 100, apperror.Code(err))
		assert.False(t, match.HasDimensions())
	})

	t.Run("Out of range size", func(t *testing.T) {
		match := entity.NewMatch("test")

		_, err := HandleCommand(match, entity.PlayerOne, "D 21 10")

		assert.Equal(t, 200, apperror.Code(err))
	})

	t.Run("Missing arguments", func(t *testing.T) {
		match := entity.NewMatch("test")

		_, err := HandleCommand(match, entity.PlayerOne, "D 10")

		assert.Equal(t, 200, apperror.Code(err))
	})

	t.Run("Second D is a sequencing error for both players", func(t *testing.T) {
		match := newPlacingMatch(t)

		_, err := HandleCommand(match, entity.PlayerOne, "D 5 5")
		assert.Equal(t, 100, apperror.Code(err))

		_, err = HandleCommand(match, entity.PlayerTwo, "D 5 5")
		assert.Equal(t, 100, apperror.Code(err))

		assert.Equal(t, 10, match.Width)
	})
}

func TestHandleCommand_Fleet(t *testing.T) {
	t.Run("Dimensions must be set first", func(t *testing.T) {
		match := entity.NewMatch("test")

		_, err := HandleCommand(match, entity.PlayerTwo, fleet)

		assert.Equal(t, 101, apperror.Code(err))
	})

	t.Run("Valid fleet readies the player without a reply", func(t *testing.T) {
		match := newPlacingMatch(t)

		result := handle(t, match, entity.PlayerTwo, fleet)

		assert.Empty(t, result.Replies)
		assert.True(t, match.Players[1].Ready)
		assert.Equal(t, 20, match.Players[1].ShipsRemaining)
		assert.Equal(t, entity.StatusPlacing, match.Status, "match starts lazily")
	})

	t.Run("Reports placement error codes", func(t *testing.T) {
		cases := map[string]int{
			"I 0 0 0 0":                                     201,
			"I 0 0 0 0 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 z":     201,
			"I 7 0 0 0 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 0":     300,
			"I 0 4 0 0 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 0":     301,
			"I 0 0 9 9 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 0":     302,
			"I 0 0 0 0 1 0 2 0 2 0 3 0 6 0 5 0 0 0 1 1":     303,
			"I 0 0 0 0 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 0 1 1": 201,
		}

		for raw, code := range cases {
			match := newPlacingMatch(t)

			_, err := HandleCommand(match, entity.PlayerOne, raw)

			assert.Equal(t, code, apperror.Code(err), raw)
			assert.False(t, match.Players[0].Ready, raw)
			assert.Zero(t, match.Players[0].Board.OccupiedCount(), raw)
		}
	})

	t.Run("Fleet can be placed once", func(t *testing.T) {
		match := newPlacingMatch(t)
		handle(t, match, entity.PlayerOne, fleet)

		_, err := HandleCommand(match, entity.PlayerOne, fleet)

		assert.Equal(t, 102, apperror.Code(err))
		assert.Equal(t, 20, match.Players[0].ShipsRemaining)
	})
}

func TestHandleCommand_Shoot(t *testing.T) {
	t.Run("Shots wait for both fleets", func(t *testing.T) {
		match := newPlacingMatch(t)
		handle(t, match, entity.PlayerOne, fleet)

		_, err := HandleCommand(match, entity.PlayerOne, "S 0 0")

		assert.Equal(t, 102, apperror.Code(err))
		assert.Equal(t, entity.StatusPlacing, match.Status)
	})

	t.Run("First shot starts the match with player one", func(t *testing.T) {
		match := newReadyMatch(t)

		_, err := HandleCommand(match, entity.PlayerTwo, "S 0 0")

		assert.Equal(t, 102, apperror.Code(err))
		assert.Equal(t, entity.StatusOngoing, match.Status)
		assert.Equal(t, entity.PlayerOne, match.Turn)
	})

	t.Run("Hit then repeated cell", func(t *testing.T) {
		// Given: both fleets placed on a 10x10 board
		match := newReadyMatch(t)

		// When: player one hits the square at 0,0
		result := handle(t, match, entity.PlayerOne, "S 0 0")

		// Then: the remaining count of player two drops by one
		assert.Equal(t, []Reply{{To: entity.PlayerOne, Text: "19 H"}}, result.Replies)
		assert.Equal(t, entity.PlayerTwo, match.Turn)

		// When: player two misses and player one fires at 0,0 again
		result = handle(t, match, entity.PlayerTwo, "S 9 9")
		assert.Equal(t, []Reply{{To: entity.PlayerTwo, Text: "20 M"}}, result.Replies)

		_, err := HandleCommand(match, entity.PlayerOne, "S 0 0")

		// Then: the repeat is rejected and the ledger is unchanged
		assert.Equal(t, 401, apperror.Code(err))
		assert.Equal(t, 1, match.Players[0].Ledger.Len())
		assert.Equal(t, entity.PlayerOne, match.Turn)
	})

	t.Run("Turn alternates strictly", func(t *testing.T) {
		match := newReadyMatch(t)
		handle(t, match, entity.PlayerOne, "S 9 9")

		_, err := HandleCommand(match, entity.PlayerOne, "S 8 8")

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, 1, match.Players[0].Ledger.Len())
	})

	t.Run("Malformed and out of range shots", func(t *testing.T) {
		match := newReadyMatch(t)

		_, err := HandleCommand(match, entity.PlayerOne, "S 1")
		assert.Equal(t, 202, apperror.Code(err))

		_, err = HandleCommand(match, entity.PlayerOne, "S 10 0")
		assert.Equal(t, 400, apperror.Code(err))

		_, err = HandleCommand(match, entity.PlayerOne, "S 0 -1")
		assert.Equal(t, 400, apperror.Code(err))

		assert.Equal(t, entity.PlayerOne, match.Turn)
		assert.Zero(t, match.Players[0].Ledger.Len())
	})

	t.Run("Sinking the last cell wins", func(t *testing.T) {
		// Given: a started match where player two only misses
		match := newReadyMatch(t)
		misses := make([]string, 0, 50)
		for y := 5; y < 10; y++ {
			for x := range 10 {
				misses = append(misses, fmt.Sprintf("S %d %d", x, y))
			}
		}

		// When: player one sweeps every cell where ships can be
		var final Result
		shots := 0
	sweep:
		for x := range 10 {
			for y := range 4 {
				final = handle(t, match, entity.PlayerOne, fmt.Sprintf("S %d %d", x, y))
				if final.Finished {
					break sweep
				}
				handle(t, match, entity.PlayerTwo, misses[shots])
				shots++
			}
		}

		// Then: the winner and the loser are told, the turn is not passed
		require.True(t, final.Finished)
		assert.Equal(t, []Reply{
			{To: entity.PlayerOne, Text: "H 1"},
			{To: entity.PlayerTwo, Text: "H 0"},
		}, final.Replies)
		assert.Equal(t, entity.StatusFinished, match.Status)
		assert.Equal(t, entity.PlayerOne, match.Winner)
		assert.Equal(t, entity.ReasonSunk, match.Reason)
		assert.Equal(t, entity.PlayerOne, match.Turn)
		assert.Zero(t, match.Players[1].ShipsRemaining)

		// And: nothing is processed afterwards
		_, err := HandleCommand(match, entity.PlayerTwo, "Q")
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestHandleCommand_Query(t *testing.T) {
	t.Run("Before anything happened", func(t *testing.T) {
		match := entity.NewMatch("test")

		result := handle(t, match, entity.PlayerTwo, "Q")

		assert.Equal(t, []Reply{{To: entity.PlayerTwo, Text: "G 0"}}, result.Replies)
	})

	t.Run("Returns own ships and shot history out of turn", func(t *testing.T) {
		match := newReadyMatch(t)
		handle(t, match, entity.PlayerOne, "S 0 0")
		handle(t, match, entity.PlayerTwo, "S 9 9")
		handle(t, match, entity.PlayerOne, "S 5 5")

		result := handle(t, match, entity.PlayerOne, "Q")

		assert.Equal(t, []Reply{{To: entity.PlayerOne, Text: "G 20 H 0 0 M 5 5"}}, result.Replies)
		assert.Equal(t, entity.PlayerTwo, match.Turn)
	})
}

func TestHandleCommand_Forfeit(t *testing.T) {
	t.Run("Forfeit during placement", func(t *testing.T) {
		match := newPlacingMatch(t)

		result := handle(t, match, entity.PlayerOne, "F")

		assert.True(t, result.Finished)
		assert.Equal(t, []Reply{
			{To: entity.PlayerTwo, Text: "H 1"},
			{To: entity.PlayerOne, Text: "H 0"},
		}, result.Replies)
		assert.Equal(t, entity.PlayerTwo, match.Winner)
		assert.Equal(t, entity.ReasonForfeit, match.Reason)
	})

	t.Run("Forfeit out of turn", func(t *testing.T) {
		match := newReadyMatch(t)
		handle(t, match, entity.PlayerOne, "S 9 9")
		handle(t, match, entity.PlayerTwo, "S 9 9")

		result := handle(t, match, entity.PlayerTwo, "F")

		assert.True(t, result.Finished)
		assert.Equal(t, entity.PlayerOne, match.Winner)
	})
}

func TestHandleCommand_Unknown(t *testing.T) {
	match := entity.NewMatch("test")

	for _, raw := range []string{"X 1 2", "", "DD 10 10", "s 1 1"} {
		_, err := HandleCommand(match, entity.PlayerOne, raw)

		assert.Equal(t, 100, apperror.Code(err), raw)
		require.ErrorIs(t, err, apperror.ErrUnknownCommand, raw)
	}

	assert.Equal(t, entity.StatusConfiguring, match.Status)
}

func TestDisconnect(t *testing.T) {
	t.Run("Disconnect forfeits", func(t *testing.T) {
		// Given: a match in progress
		match := newReadyMatch(t)
		handle(t, match, entity.PlayerOne, "S 9 9")

		// When: player two drops
		result, err := Disconnect(match, entity.PlayerTwo)

		// Then: player one wins
		require.NoError(t, err)
		assert.True(t, result.Finished)
		assert.Contains(t, result.Replies, Reply{To: entity.PlayerOne, Text: "H 1"})
		assert.Equal(t, entity.ReasonDisconnect, match.Reason)

		// And: a second terminal event is ignored
		_, err = Disconnect(match, entity.PlayerOne)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.PlayerOne, match.Winner)
	})

	t.Run("Unknown player", func(t *testing.T) {
		match := entity.NewMatch("test")

		_, err := Disconnect(match, 3)

		require.ErrorIs(t, err, entity.ErrUnknownPlayer)
		assert.False(t, match.IsFinished())
	})
}

func TestRecordShot(t *testing.T) {
	match := newReadyMatch(t)

	outcome, err := RecordShot(match, entity.PlayerTwo, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Hit: true, Remaining: 19}, outcome)
	assert.False(t, outcome.Sunk)

	outcome, err = RecordShot(match, entity.PlayerTwo, 0, 9)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Hit: false, Remaining: 19}, outcome)

	_, err = RecordShot(match, entity.PlayerTwo, 0, 0)
	require.ErrorIs(t, err, apperror.ErrCellAttacked)

	assert.Equal(t, []entity.Shot{{X: 0, Y: 0, Hit: true}, {X: 0, Y: 9}}, match.Players[1].Ledger.Shots())
}

func TestRecordShot_LastCell(t *testing.T) {
	// Given: a defender with a single square left on a 2x2 board
	match := entity.NewMatch("test")
	defender := match.Players[1]
	defender.Board = entity.NewBoard(2, 2)

	square, err := entity.Instantiate(0, 0)
	require.NoError(t, err)

	placed, err := defender.Board.Place(square, 0, 0)
	require.NoError(t, err)
	defender.ShipsRemaining = placed
	defender.Ready = true

	// When: three cells are hit
	for _, cell := range [][2]int{{0, 0}, {0, 1}, {1, 0}} {
		outcome, err := RecordShot(match, entity.PlayerOne, cell[0], cell[1])
		require.NoError(t, err)
		require.False(t, outcome.Sunk)
	}

	// Then: the fourth hit sinks the fleet
	outcome, err := RecordShot(match, entity.PlayerOne, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Hit: true, Remaining: 0, Sunk: true}, outcome)
	assert.True(t, defender.IsDefeated())
}
