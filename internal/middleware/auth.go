package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/renaspress/publisher/internal/pkg/response"
)

const (
	contextKeyToken    = "upstream_token"
	contextKeyAuthorID = "author_id"
)

// RequireToken enforces a bearer token on the request. The token itself is
// validated by the upstream CMS on every write; here we only reject requests
// that carry none, and stash the raw token for the upstream client.
func RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyToken, token)
		if uid := peekAuthorID(token); uid != "" {
			c.Set(contextKeyAuthorID, uid)
		}
		c.Next()
	}
}

// BearerToken extracts the bearer token from the Authorization header.
func BearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if auth == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

// Token returns the bearer token stored by RequireToken.
func Token(c *gin.Context) string {
	v, _ := c.Get(contextKeyToken)
	token, _ := v.(string)
	return token
}

// AuthorID returns the upstream user id peeked from the token, if any.
func AuthorID(c *gin.Context) string {
	v, _ := c.Get(contextKeyAuthorID)
	id, _ := v.(string)
	return id
}

// peekAuthorID decodes the JWT payload without verifying the signature, purely
// so logs can carry the upstream author id. Signature verification belongs to
// the upstream CMS, which holds the secret.
func peekAuthorID(token string) string {
	parser := jwtlib.NewParser()
	claims := jwtlib.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return ""
	}
	// jwt-auth tokens nest the user as data.user.id.
	data, _ := claims["data"].(map[string]interface{})
	user, _ := data["user"].(map[string]interface{})
	switch id := user["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.Itoa(int(id))
	}
	return ""
}
