package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/usecase"
)

const checkTimeout = 2 * time.Second

type statusSource interface {
	Status() usecase.Status
}

type matchArchive interface {
	GetByID(ctx context.Context, id string) (*entity.MatchRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handlers struct {
	match     statusSource
	archive   matchArchive
	checks    map[string]HealthCheck
	startTime time.Time
}

type HealthResponse struct {
	Status string            `json:"status"`
	Uptime string            `json:"uptime"`
	Checks map[string]string `json:"checks,omitempty"`
}

func NewHandlers(match statusSource, archive matchArchive, checks map[string]HealthCheck) *Handlers {
	return &Handlers{
		match:     match,
		archive:   archive,
		checks:    checks,
		startTime: time.Now(),
	}
}

func (that *Handlers) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Health - runs every registered check, 503 if any of them fails.
func (that *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	response := HealthResponse{
		Status: "healthy",
		Uptime: time.Since(that.startTime).Round(time.Second).String(),
		Checks: make(map[string]string, len(that.checks)),
	}
	code := http.StatusOK

	for name, check := range that.checks {
		if err := check(ctx); err != nil {
			response.Checks[name] = "unhealthy: " + err.Error()
			response.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}

		response.Checks[name] = "healthy"
	}

	c.JSON(code, response)
}

func (that *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, that.match.Status())
}

// GetMatch - returns an archived match record.
func (that *Handlers) GetMatch(c *gin.Context) {
	record, err := that.archive.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get match"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (that *Handlers) DeleteMatch(c *gin.Context) {
	err := that.archive.DeleteByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrMatchNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete match"})
		return
	}

	c.Status(http.StatusNoContent)
}
