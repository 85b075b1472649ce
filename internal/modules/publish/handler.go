package publish

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/renaspress/publisher/internal/middleware"
	"github.com/renaspress/publisher/internal/pkg/response"
	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

// Handler exposes the publishing pipeline over HTTP.
type Handler struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

func NewHandler(pipeline *Pipeline, logger *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, logger: logger}
}

// RegisterRoutes mounts the authenticated publishing routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	authed := rg.Group("/posts", authMW)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
}

// create POST /posts  [auth]
func (h *Handler) create(c *gin.Context) {
	var draft PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.pipeline.Create(pipelineContext(c), middleware.Token(c), &draft)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, response.Envelope{
		Post:    res.Post,
		Message: "Post created successfully",
		Warning: res.Warning,
	})
}

// update PUT /posts/:id  [auth]
func (h *Handler) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid post id")
		return
	}

	var draft PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	res, err := h.pipeline.Update(pipelineContext(c), middleware.Token(c), id, &draft)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, response.Envelope{
		Post:    res.Post,
		Message: "Post updated successfully",
		Warning: res.Warning,
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		response.BadRequest(c, "Title and content are required")
		return
	}
	var sErr *UnknownStatusError
	if errors.As(err, &sErr) {
		response.BadRequest(c, sErr.Error())
		return
	}
	var upErr *wordpress.UpstreamError
	if errors.As(err, &upErr) {
		response.Upstream(c, upErr.StatusCode, upErr.Message, upErr.Details())
		return
	}
	response.InternalError(c, err)
}

// pipelineContext detaches the run from the request context: once a
// submission is in flight, a client disconnect must not cancel the upstream
// write and strand a half-applied post. Each upstream call stays bounded by
// the client's own timeout.
func pipelineContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
