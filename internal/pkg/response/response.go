package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the application-facing response contract: every endpoint answers
// with success plus optional payload, warning and error fields.
type Envelope struct {
	Success bool        `json:"success"`
	Post    interface{} `json:"post,omitempty"`
	Posts   interface{} `json:"posts,omitempty"`
	Media   interface{} `json:"media,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Total   *int        `json:"total,omitempty"`
	Pages   *int        `json:"pages,omitempty"`
	Message string      `json:"message,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, env Envelope) {
	env.Success = true
	c.JSON(http.StatusOK, env)
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, env Envelope) {
	env.Success = true
	c.JSON(http.StatusCreated, env)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Error: message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Error: "Authentication required"})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Not Found"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Error: message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{Error: "Method Not Allowed"})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, Envelope{Error: message})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, Envelope{Error: "Too many requests"})
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Error: err.Error()})
}

// Upstream relays an upstream CMS rejection: its status code passes through
// and its error payload is attached verbatim under details.
func Upstream(c *gin.Context, status int, message string, details interface{}) {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	c.AbortWithStatusJSON(status, Envelope{Error: message, Details: details})
}
