package middleware

import (
	"context"
	"net/http"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/cache"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dedupHeader = "X-Dedup-Token"

// Dedup drops replayed send requests. Appends are not idempotent, so a
// client that retries a send must attach a de-duplication token; a
// token seen inside the TTL window means the original send already
// landed and the replay is rejected with 409.
//
// Without a token (or without Redis) the request passes through;
// de-duplication stays a caller responsibility, not a core guarantee.
func Dedup(cacheSvc cache.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(dedupHeader)
		if token == "" || cacheSvc == nil {
			c.Next()
			return
		}

		if _, err := uuid.Parse(token); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid de-duplication token", err)
			c.Abort()
			return
		}

		fresh, err := cacheSvc.RememberDedupToken(context.Background(), token)
		if err != nil {
			// Redis down degrades to no de-duplication rather than
			// blocking sends.
			logger.GetLogger().Warn().Err(err).Msg("dedup token check failed")
			c.Next()
			return
		}
		if !fresh {
			common.ErrorResponse(c, http.StatusConflict, "Duplicate send (token already used)", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
