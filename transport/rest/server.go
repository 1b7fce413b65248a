package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// NewRouter - admin routes: liveness, health checks, match status, archived matches and metrics.
func NewRouter(handlers *Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", handlers.Ping)
	router.GET("/healthz", handlers.Health)
	router.GET("/status", handlers.Status)
	router.GET("/matches/:id", handlers.GetMatch)
	router.DELETE("/matches/:id", handlers.DeleteMatch)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

type Server struct {
	logger *slog.Logger
	server *http.Server
}

func New(logger *slog.Logger, port string, handler http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		server: &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       30 * time.Second,
		},
	}
}

// Start - serves on listener until ctx is done, then shuts the server down gracefully.
func (that *Server) Start(ctx context.Context, listener net.Listener) error {
	log := that.logger.With("method", "Start")

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "addr", listener.Addr().String())
		errCh <- that.server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	log.Info("HTTP server stopped")

	return nil
}

// Listen - binds the configured port.
func (that *Server) Listen() (net.Listener, error) {
	listener, err := net.Listen("tcp", that.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", that.server.Addr, err)
	}

	return listener, nil
}
