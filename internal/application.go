package application

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/battleship-backend/internal/config"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/repository/storage"
	"github.com/rocketscienceinc/battleship-backend/internal/transport/tcp"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
	"github.com/rocketscienceinc/battleship-backend/transport/rest"
)

// RunApp - runs one match: the player gateway and the admin HTTP server. It returns when the
// match is over, on SIGINT/SIGTERM, or on the first server error.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	archive := repository.NewNopMatchRepository()
	checks := map[string]rest.HealthCheck{}

	if conf.Redis.Enabled {
		client, err := storage.NewRedis(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		archive = repository.NewMatchRepository(client, conf.Redis.ArchiveTTL)
		checks["redis"] = redisCheck(client)
	}

	manager := usecase.NewMatchManager(logger, archive)

	gateway := tcp.New(logger, manager, conf.IdleTimeout)
	if err := gateway.Listen(net.JoinHostPort("", conf.Player1Port), net.JoinHostPort("", conf.Player2Port)); err != nil {
		return err
	}

	httpServer := rest.New(logger, conf.HTTPPort, rest.NewRouter(rest.NewHandlers(manager, archive, checks)))
	listener, err := httpServer.Listen()
	if err != nil {
		gateway.Close()
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	httpCtx, stopHTTP := context.WithCancel(groupCtx)

	group.Go(func() error {
		defer stopHTTP()

		log.Info("Starting player gateway", "player1", gateway.Addr(entity.PlayerOne).String(), "player2", gateway.Addr(entity.PlayerTwo).String())
		if err := gateway.Serve(groupCtx); err != nil {
			return fmt.Errorf("player gateway error: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		if err := httpServer.Start(httpCtx, listener); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	status := manager.Status()
	log.Info("Application stopped", "matchID", status.MatchID, "status", status.Status, "winner", status.Winner)

	return nil
}

func redisCheck(client *redis.Client) rest.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
