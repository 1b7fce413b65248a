package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/battleship-backend/internal/battleship"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/metrics"
)

const (
	// MaxLineSize bounds a single inbound command, terminator included.
	MaxLineSize = 1024

	writeTimeout = 5 * time.Second
)

var (
	ErrNotListening  = errors.New("server is not listening")
	ErrServerClosed  = errors.New("server is closed")
	ErrLineTooLong   = errors.New("line is too long")
	errUnknownPlayer = errors.New("unknown player slot")
)

type matchManager interface {
	Process(ctx context.Context, player int, raw string) []battleship.Reply
	Disconnect(ctx context.Context, player int) []battleship.Reply
	Awaiting() []int
	IsFinished() bool
}

type eventKind int

const (
	eventConnected eventKind = iota
	eventLine
	eventClosed
)

// event is what the accept and reader goroutines hand to the match loop.
type event struct {
	kind   eventKind
	player int
	conn   net.Conn
	text   string
	err    error
}

// Server is the session gateway: one listener per player slot and a single loop that owns the match.
type Server struct {
	logger      *slog.Logger
	manager     matchManager
	idleTimeout time.Duration

	listeners [2]net.Listener
	conns     [2]net.Conn

	// waitingSince is when each awaited player's idle clock started, zero when not running.
	waitingSince [2]time.Time

	events    chan event
	done      chan struct{}
	closeOnce sync.Once
}

func New(logger *slog.Logger, manager matchManager, idleTimeout time.Duration) *Server {
	return &Server{
		logger:      logger.With("component", "tcp"),
		manager:     manager,
		idleTimeout: idleTimeout,
		events:      make(chan event),
		done:        make(chan struct{}),
	}
}

// Listen - opens the listeners of player 1 and player 2.
func (that *Server) Listen(player1Addr, player2Addr string) error {
	for i, addr := range []string{player1Addr, player2Addr} {
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			that.closeListeners()
			return fmt.Errorf("failed to listen for player %d on %s: %w", i+1, addr, err)
		}

		that.listeners[i] = listener
	}

	return nil
}

// Close - releases the listeners of a server that is not serving.
func (that *Server) Close() {
	that.closeListeners()
}

// Addr - returns the bound address of the player slot, nil before Listen.
func (that *Server) Addr(player int) net.Addr {
	if player != entity.PlayerOne && player != entity.PlayerTwo {
		return nil
	}

	listener := that.listeners[player-1]
	if listener == nil {
		return nil
	}

	return listener.Addr()
}

// Serve - runs the match until it finishes or ctx is cancelled. Both connections and
// listeners are closed when it returns.
func (that *Server) Serve(ctx context.Context) error {
	if that.listeners[0] == nil || that.listeners[1] == nil {
		return ErrNotListening
	}

	select {
	case <-that.done:
		return ErrServerClosed
	default:
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for i := range that.listeners {
		player := i + 1
		group.Go(func() error {
			return that.accept(player)
		})
	}

	group.Go(func() error {
		defer that.shutdown()
		return that.loop(groupCtx, group)
	})

	return group.Wait()
}

// accept - hands every inbound connection of player to the loop, which decides whether the slot is free.
func (that *Server) accept(player int) error {
	log := that.logger.With("method", "accept", "player", player)

	for {
		conn, err := that.listeners[player-1].Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return fmt.Errorf("failed to accept player %d: %w", player, err)
		}

		log.Debug("connection accepted", "remote", conn.RemoteAddr().String())

		if !that.send(event{kind: eventConnected, player: player, conn: conn}) {
			_ = conn.Close()
			return nil
		}
	}
}

func (that *Server) loop(ctx context.Context, group *errgroup.Group) error {
	log := that.logger.With("method", "loop")

	idle := time.NewTimer(time.Hour)
	idle.Stop()
	defer idle.Stop()

	var idleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			log.Info("context cancelled, closing the match")
			return nil
		case now := <-idleC:
			that.expire(ctx, now)
		case ev := <-that.events:
			that.handle(ctx, group, ev)
		}

		if that.manager.IsFinished() {
			log.Info("match finished, closing connections")
			return nil
		}

		idleC = that.armIdle(idle)
	}
}

func (that *Server) handle(ctx context.Context, group *errgroup.Group, ev event) {
	log := that.logger.With("method", "handle", "player", ev.player)
	slot := strconv.Itoa(ev.player)

	switch ev.kind {
	case eventConnected:
		if that.conns[ev.player-1] != nil {
			metrics.Connections.WithLabelValues(slot, "refused").Inc()
			log.Warn("slot already taken, refusing connection", "remote", ev.conn.RemoteAddr().String())
			_ = ev.conn.Close()
			return
		}

		metrics.Connections.WithLabelValues(slot, "accepted").Inc()
		log.Info("player connected", "remote", ev.conn.RemoteAddr().String())

		that.conns[ev.player-1] = ev.conn
		conn, player := ev.conn, ev.player
		group.Go(func() error {
			that.read(player, conn)
			return nil
		})

	case eventLine:
		if that.conns[ev.player-1] != ev.conn {
			return
		}

		that.deliver(that.manager.Process(ctx, ev.player, ev.text))

	case eventClosed:
		if that.conns[ev.player-1] != ev.conn {
			return
		}

		metrics.Connections.WithLabelValues(slot, "closed").Inc()
		log.Info("player connection closed", "reason", ev.err)

		_ = ev.conn.Close()
		that.conns[ev.player-1] = nil

		that.deliver(that.manager.Disconnect(ctx, ev.player))
	}
}

// armIdle - starts the idle clock of every player the match waits on once both slots are
// filled, stops it for the others, and returns the channel of the nearest deadline.
func (that *Server) armIdle(timer *time.Timer) <-chan time.Time {
	timer.Stop()

	if that.idleTimeout <= 0 {
		return nil
	}

	var awaited [2]bool
	if that.conns[0] != nil && that.conns[1] != nil {
		for _, player := range that.manager.Awaiting() {
			if player == entity.PlayerOne || player == entity.PlayerTwo {
				awaited[player-1] = true
			}
		}
	}

	now := time.Now()
	var next time.Time

	for i := range awaited {
		if !awaited[i] {
			that.waitingSince[i] = time.Time{}
			continue
		}

		if that.waitingSince[i].IsZero() {
			that.waitingSince[i] = now
		}

		deadline := that.waitingSince[i].Add(that.idleTimeout)
		if next.IsZero() || deadline.Before(next) {
			next = deadline
		}
	}

	if next.IsZero() {
		return nil
	}

	timer.Reset(time.Until(next))

	return timer.C
}

// expire - forfeits every awaited player whose idle deadline has passed.
func (that *Server) expire(ctx context.Context, now time.Time) {
	log := that.logger.With("method", "expire")

	for i, since := range that.waitingSince {
		if since.IsZero() || now.Before(since.Add(that.idleTimeout)) {
			continue
		}

		player := i + 1
		that.waitingSince[i] = time.Time{}

		metrics.Connections.WithLabelValues(strconv.Itoa(player), "idle").Inc()
		log.Info("player idle, match forfeited", "player", player, "waited", now.Sub(since).String())

		that.deliver(that.manager.Disconnect(ctx, player))
	}
}

// read - forwards every non-blank line of conn to the loop, then reports the close.
func (that *Server) read(player int, conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, MaxLineSize), MaxLineSize)

	for scanner.Scan() {
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		if !that.send(event{kind: eventLine, player: player, conn: conn, text: text}) {
			return
		}
	}

	that.send(event{kind: eventClosed, player: player, conn: conn, err: closeReason(scanner.Err())})
}

func closeReason(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bufio.ErrTooLong):
		return ErrLineTooLong
	default:
		return err
	}
}

// send - returns false once the loop has stopped.
func (that *Server) send(ev event) bool {
	select {
	case that.events <- ev:
		return true
	case <-that.done:
		return false
	}
}

// deliver - writes replies to their players. A missing or broken connection is skipped,
// its reader reports the close.
func (that *Server) deliver(replies []battleship.Reply) {
	log := that.logger.With("method", "deliver")

	for _, reply := range replies {
		if reply.To != entity.PlayerOne && reply.To != entity.PlayerTwo {
			log.Error("reply to unknown player dropped", "error", errUnknownPlayer, "player", reply.To)
			continue
		}

		conn := that.conns[reply.To-1]
		if conn == nil {
			continue
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if _, err := conn.Write([]byte(reply.Text + "\n")); err != nil {
			log.Warn("failed to write reply", "player", reply.To, "error", err)
		}
	}
}

// shutdown - closes listeners and connections exactly once and releases blocked goroutines.
func (that *Server) shutdown() {
	that.closeOnce.Do(func() {
		close(that.done)
		that.closeListeners()

		for i, conn := range that.conns {
			if conn == nil {
				continue
			}

			metrics.Connections.WithLabelValues(strconv.Itoa(i+1), "closed").Inc()
			_ = conn.Close()
			that.conns[i] = nil
		}
	})
}

func (that *Server) closeListeners() {
	for _, listener := range that.listeners {
		if listener != nil {
			_ = listener.Close()
		}
	}
}
