package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/storefront-server/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the database answers.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Check responds 200 when the database answers a ping and 503 otherwise.
func (h *Health) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Error("Health handler: database ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
		return
	}

	c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}
