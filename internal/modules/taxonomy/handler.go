package taxonomy

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/renaspress/publisher/internal/pkg/response"
	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

// Handler serves the category list the editor's picker is built from.
type Handler struct {
	wp     *wordpress.Client
	logger *zap.Logger
}

func NewHandler(wp *wordpress.Client, logger *zap.Logger) *Handler {
	return &Handler{wp: wp, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.list)
}

// list GET /categories
func (h *Handler) list(c *gin.Context) {
	terms, err := h.wp.Categories(c.Request.Context())
	if err != nil {
		var upErr *wordpress.UpstreamError
		if errors.As(err, &upErr) {
			response.Upstream(c, upErr.StatusCode, upErr.Message, upErr.Details())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, response.Envelope{Data: terms})
}
