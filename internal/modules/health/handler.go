package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/renaspress/publisher/internal/pkg/redis"
	"github.com/renaspress/publisher/internal/pkg/response"
	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

const probeTimeout = 3 * time.Second

// Handler reports liveness and dependency health.
type Handler struct {
	wp     *wordpress.Client
	rdb    *redis.Client
	logger *zap.Logger
}

func NewHandler(wp *wordpress.Client, rdb *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{wp: wp, rdb: rdb, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", h.ping)
	rg.GET("/health", h.health)
}

// ping GET /ping
func (h *Handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// health GET /health
func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	status := http.StatusOK
	checks := gin.H{"upstream": "ok", "redis": "ok"}

	if err := h.wp.Ping(ctx); err != nil {
		h.logger.Warn("upstream health probe failed", zap.Error(err))
		checks["upstream"] = "unreachable"
		status = http.StatusServiceUnavailable
	}
	if h.rdb == nil {
		checks["redis"] = "disabled"
	} else if err := h.rdb.Raw().Ping(ctx).Err(); err != nil {
		h.logger.Warn("redis health probe failed", zap.Error(err))
		checks["redis"] = "unreachable"
		// degraded, not down: idempotence and rate limits fail open
	}

	c.JSON(status, response.Envelope{
		Success: status == http.StatusOK,
		Data:    checks,
	})
}
