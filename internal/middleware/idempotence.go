package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/renaspress/publisher/internal/pkg/response"
)

const (
	idempotenceHeader = "x-idempotence"
	idempotenceTTL    = 60 * time.Second
)

// Idempotence prevents duplicate non-GET requests from double-submitting to
// the upstream CMS. The upstream offers no atomic find-or-create, so the only
// cross-request protection available is this request-level guard.
func Idempotence(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			c.Next()
			return
		}

		key := idempotenceKey(c)
		if key == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("publisher:idempotence:%s", key)
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, redisKey).Result()
		if err == nil {
			msg := "Duplicate request: an identical submission succeeded within the last 60 seconds"
			if val == "0" {
				msg = "An identical submission is still being processed"
			}
			response.Conflict(c, msg)
			return
		}
		if !errors.Is(err, redis.Nil) {
			// Redis down: let the request through rather than block publishing.
			c.Next()
			return
		}

		if setErr := rdb.Set(ctx, redisKey, "0", idempotenceTTL).Err(); setErr != nil {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, "1", redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

// idempotenceKey prefers an explicit client-supplied key; without one the
// request is fingerprinted by method, path, body and caller identity, so two
// different drafts from the same author never collide.
func idempotenceKey(c *gin.Context) string {
	if key := c.GetHeader(idempotenceHeader); key != "" {
		return key
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	token := BearerToken(c)
	if len(body) == 0 && token == "" {
		return ""
	}

	raw := c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body) + "|" + token
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
