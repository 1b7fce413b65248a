package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
	mockedUseCase "github.com/rocketscienceinc/battleship-backend/mocks/usecase"
)

var errRedisDown = errors.New("redis down")

const fleet = "I 0 0 0 0 1 0 2 0 2 0 3 0 6 0 5 0 3 0 7 0"

func newTestManager(t *testing.T) (*MatchManager, *mockedUseCase.MockmatchArchive) {
	t.Helper()

	archive := mockedUseCase.NewMockmatchArchive(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewMatchManager(logger, archive), archive
}

func setUp(ctx context.Context, t *testing.T, manager *MatchManager) {
	t.Helper()

	require.Empty(t, manager.Process(ctx, entity.PlayerOne, "D 10 10"))
	require.Empty(t, manager.Process(ctx, entity.PlayerOne, fleet))
	require.Empty(t, manager.Process(ctx, entity.PlayerTwo, fleet))
}

func TestMatchManager_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("Rejected command answers the sender with its code", func(t *testing.T) {
		// Given: a fresh manager
		manager, _ := newTestManager(t)
		before := testutil.ToFloat64(metrics.Rejections.WithLabelValues("100"))

		// When: player two tries to set the board
		replies := manager.Process(ctx, entity.PlayerTwo, "D 10 10")

		// Then: only player two gets E 100 and the rejection is counted
		assert.Equal(t, []battleship.Reply{{To: entity.PlayerTwo, Text: "E 100"}}, replies)
		assert.InDelta(t, before+1, testutil.ToFloat64(metrics.Rejections.WithLabelValues("100")), 0.001)
		assert.Equal(t, entity.StatusConfiguring, manager.Status().Status)
	})

	t.Run("Shots are answered and counted", func(t *testing.T) {
		manager, _ := newTestManager(t)
		setUp(ctx, t, manager)
		hits := testutil.ToFloat64(metrics.Shots.WithLabelValues("hit"))

		replies := manager.Process(ctx, entity.PlayerOne, "S 0 0")

		assert.Equal(t, []battleship.Reply{{To: entity.PlayerOne, Text: "19 H"}}, replies)
		assert.InDelta(t, hits+1, testutil.ToFloat64(metrics.Shots.WithLabelValues("hit")), 0.001)

		assert.Equal(t, []int{entity.PlayerTwo}, manager.Awaiting())

		status := manager.Status()
		assert.Equal(t, entity.StatusOngoing, status.Status)
		assert.Equal(t, entity.PlayerTwo, status.Turn)
		assert.Equal(t, 19, status.Players[1].ShipsRemaining)
		assert.Equal(t, 1, status.Players[0].ShotsFired)
	})

	t.Run("Forfeit archives the match once", func(t *testing.T) {
		// Given: a started match
		manager, archive := newTestManager(t)
		setUp(ctx, t, manager)
		manager.Process(ctx, entity.PlayerOne, "S 0 0")

		archive.EXPECT().
			CreateOrUpdate(mock.Anything, mock.MatchedBy(func(record *entity.MatchRecord) bool {
				return record.Winner == entity.PlayerOne &&
					record.Reason == entity.ReasonForfeit &&
					len(record.Players[0].Shots) == 1
			})).
			Return(nil).
			Once()

		// When: player two forfeits
		replies := manager.Process(ctx, entity.PlayerTwo, "F")

		// Then: both players are told and the manager is finished
		assert.ElementsMatch(t, []battleship.Reply{
			{To: entity.PlayerOne, Text: "H 1"},
			{To: entity.PlayerTwo, Text: "H 0"},
		}, replies)
		assert.True(t, manager.IsFinished())
		assert.Equal(t, entity.StatusFinished, manager.Status().Status)

		// And: later commands are dropped silently
		assert.Empty(t, manager.Process(ctx, entity.PlayerOne, "Q"))
		assert.Empty(t, manager.Disconnect(ctx, entity.PlayerOne))
	})

	t.Run("Archive failure does not change the outcome", func(t *testing.T) {
		manager, archive := newTestManager(t)
		archive.EXPECT().
			CreateOrUpdate(mock.Anything, mock.AnythingOfType("*entity.MatchRecord")).
			Return(errRedisDown).
			Once()

		replies := manager.Process(ctx, entity.PlayerOne, "F")

		assert.Len(t, replies, 2)
		assert.True(t, manager.IsFinished())
	})
}

func TestMatchManager_Disconnect(t *testing.T) {
	ctx := context.Background()

	// Given: a started match
	manager, archive := newTestManager(t)
	setUp(ctx, t, manager)

	archive.EXPECT().
		CreateOrUpdate(mock.Anything, mock.MatchedBy(func(record *entity.MatchRecord) bool {
			return record.Winner == entity.PlayerOne && record.Reason == entity.ReasonDisconnect
		})).
		Return(nil).
		Once()

	// When: player two drops
	replies := manager.Disconnect(ctx, entity.PlayerTwo)

	// Then: player one wins
	assert.Contains(t, replies, battleship.Reply{To: entity.PlayerOne, Text: "H 1"})
	assert.True(t, manager.IsFinished())
	assert.Equal(t, entity.ReasonDisconnect, manager.Status().Reason)
}

func TestMatchManager_Status(t *testing.T) {
	manager, _ := newTestManager(t)

	status := manager.Status()

	assert.NotEmpty(t, status.MatchID)
	assert.Equal(t, entity.StatusConfiguring, status.Status)
	assert.Len(t, status.Players, 2)
}
