package posts

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/renaspress/publisher/internal/middleware"
	"github.com/renaspress/publisher/internal/pkg/response"
	"github.com/renaspress/publisher/internal/wordpress"
	"go.uber.org/zap"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// Handler exposes the post browsing and deletion routes.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the routes. Listing and single-post reads are public;
// the author's own feed and deletion require a token.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/posts")
	g.GET("", h.list)
	g.GET("/user", authMW, h.userPosts)
	g.GET("/:id", h.get)
	g.DELETE("/:id", authMW, h.delete)
}

// list GET /posts
func (h *Handler) list(c *gin.Context) {
	page, perPage := pagination(c)

	posts, totals, err := h.svc.List(c.Request.Context(), ListParams{
		Page:         page,
		PerPage:      perPage,
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, response.Envelope{
		Posts: posts,
		Total: &totals.Total,
		Pages: &totals.TotalPages,
	})
}

// userPosts GET /posts/user  [auth]
func (h *Handler) userPosts(c *gin.Context) {
	page, perPage := pagination(c)

	posts, totals, err := h.svc.UserPosts(c.Request.Context(), middleware.Token(c), page, perPage, c.DefaultQuery("status", "publish,draft,pending"))
	if err != nil {
		h.fail(c, err)
		return
	}

	response.OK(c, response.Envelope{
		Posts: posts,
		Total: &totals.Total,
		Pages: &totals.TotalPages,
	})
}

// get GET /posts/:id
func (h *Handler) get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.svc.Get(c.Request.Context(), middleware.Token(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, response.Envelope{Post: post})
}

// delete DELETE /posts/:id  [auth]
func (h *Handler) delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	force := c.Query("force") == "true"

	result, err := h.svc.Delete(c.Request.Context(), middleware.Token(c), id, force)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, response.Envelope{
		Data:    result,
		Message: "Post deleted successfully",
	})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var upErr *wordpress.UpstreamError
	if errors.As(err, &upErr) {
		response.Upstream(c, upErr.StatusCode, upErr.Message, upErr.Details())
		return
	}
	response.InternalError(c, err)
}

func postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid post id")
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = defaultPerPage
	}
	return page, perPage
}
