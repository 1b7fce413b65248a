package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
	"github.com/rocketscienceinc/battleship-backend/internal/protocol"
)

type matchArchive interface {
	CreateOrUpdate(ctx context.Context, record *entity.MatchRecord) error
}

// MatchManager owns the single match of the process. Process and Disconnect must be called
// from one goroutine at a time; Status may be read from anywhere.
type MatchManager struct {
	logger  *slog.Logger
	archive matchArchive

	match  *entity.Match
	status atomic.Pointer[Status]
	now    func() time.Time
}

func NewMatchManager(logger *slog.Logger, archive matchArchive) *MatchManager {
	match := entity.NewMatch(uuid.NewString())

	manager := &MatchManager{
		logger:  logger.With("component", "match", "matchID", match.ID),
		archive: archive,
		match:   match,
		now:     time.Now,
	}
	manager.publish()

	return manager
}

// Process - applies a raw command from player and returns what has to be sent back.
// Rejected commands produce a single `E <code>` reply to the sender.
func (that *MatchManager) Process(ctx context.Context, player int, raw string) []battleship.Reply {
	log := that.logger.With("method", "Process", "player", player)

	tag := protocol.Parse(raw).Tag
	metrics.Commands.WithLabelValues(metrics.CommandLabel(tag)).Inc()

	wasOngoing := that.match.IsOngoing()

	result, err := battleship.HandleCommand(that.match, player, raw)
	defer that.publish()

	if !wasOngoing && that.match.IsOngoing() {
		log.Info("match started", "width", that.match.Width, "height", that.match.Height)
	}

	if errors.Is(err, apperror.ErrGameFinished) {
		log.Warn("command after match end ignored", "command", tag)
		return nil
	}

	if err != nil {
		code := apperror.Code(err)
		metrics.Rejections.WithLabelValues(strconv.Itoa(code)).Inc()
		log.Info("command rejected", "command", tag, "code", code, "error", err)

		return []battleship.Reply{{To: player, Text: protocol.Error(code)}}
	}

	if result.Shot != nil {
		metrics.Shots.WithLabelValues(metrics.ShotLabel(result.Shot.Hit)).Inc()
		log.Debug("shot resolved", "x", result.Shot.X, "y", result.Shot.Y, "hit", result.Shot.Hit)
	}

	if result.Finished {
		that.finish(ctx)
	}

	return result.Replies
}

// Disconnect - handles a closed connection of player as a forfeit.
func (that *MatchManager) Disconnect(ctx context.Context, player int) []battleship.Reply {
	log := that.logger.With("method", "Disconnect", "player", player)

	result, err := battleship.Disconnect(that.match, player)
	defer that.publish()

	if err != nil {
		log.Info("disconnect after match end", "error", err)
		return nil
	}

	log.Info("player disconnected, match forfeited")
	that.finish(ctx)

	return result.Replies
}

// Awaiting - returns the players the match is waiting on.
func (that *MatchManager) Awaiting() []int {
	return that.match.Awaiting()
}

func (that *MatchManager) IsFinished() bool {
	return that.match.IsFinished()
}

// Status - returns the latest published snapshot of the match.
func (that *MatchManager) Status() Status {
	return *that.status.Load()
}

func (that *MatchManager) finish(ctx context.Context) {
	log := that.logger.With("method", "finish")

	metrics.MatchesFinished.WithLabelValues(that.match.Reason).Inc()
	log.Info("match finished", "winner", that.match.Winner, "reason", that.match.Reason)

	record := entity.NewMatchRecord(that.match, that.now())
	if err := that.archive.CreateOrUpdate(ctx, record); err != nil {
		log.Error("failed to archive match", "error", err)
	}
}

func (that *MatchManager) publish() {
	status := newStatus(that.match)
	that.status.Store(&status)
}
