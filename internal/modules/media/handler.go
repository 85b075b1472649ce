package media

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/renaspress/publisher/internal/middleware"
	"github.com/renaspress/publisher/internal/pkg/response"
	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

const defaultPerPage = 20

// Handler proxies the author's media library. Uploads happen elsewhere; the
// application only lists what is already stored upstream so the editor can
// reference it.
type Handler struct {
	wp     *wordpress.Client
	logger *zap.Logger
}

func NewHandler(wp *wordpress.Client, logger *zap.Logger) *Handler {
	return &Handler{wp: wp, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/media", authMW, h.list)
}

// list GET /media  [auth]
func (h *Handler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))

	mediaType := c.Query("media_type")
	switch mediaType {
	case "", "image", "video":
	default:
		response.BadRequest(c, "media_type must be image or video")
		return
	}

	items, totals, err := h.wp.ListMedia(c.Request.Context(), middleware.Token(c), page, perPage, mediaType)
	if err != nil {
		var upErr *wordpress.UpstreamError
		if errors.As(err, &upErr) {
			response.Upstream(c, upErr.StatusCode, upErr.Message, upErr.Details())
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, response.Envelope{
		Media: items,
		Total: &totals.Total,
		Pages: &totals.TotalPages,
	})
}
