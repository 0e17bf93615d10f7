package middleware

import (
	"errors"
	"strings"

	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/common"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/internal/domain"
	"github.com/leonsilipetar/cadenza-school-managment-sub004/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware. The token carries the caller's
// id and participant kind, which downstream handlers read back as a
// domain.ParticipantRef.
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "Missing authorization header", common.ErrUnauthorized)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "Invalid authorization header format", common.ErrUnauthorized)
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "Token expired", common.ErrExpiredToken)
			} else {
				common.ErrorResponse(c, 401, "Invalid token", common.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		kind := domain.ParticipantKind(claims.Kind)
		if !kind.Valid() {
			common.ErrorResponse(c, 401, "Invalid token", common.ErrInvalidToken)
			c.Abort()
			return
		}

		// 4. Store participant info in context
		c.Set("participantID", claims.UserID)
		c.Set("participantKind", kind)
		c.Set("participantName", claims.Name)

		c.Next()
	}
}

// GetParticipant extracts the authenticated participant reference from context
func GetParticipant(c *gin.Context) (domain.ParticipantRef, bool) {
	id, idOK := c.Get("participantID")
	kind, kindOK := c.Get("participantKind")
	if !idOK || !kindOK {
		return domain.ParticipantRef{}, false
	}

	ref := domain.ParticipantRef{}
	if v, ok := id.(int); ok {
		ref.ID = v
	} else {
		return domain.ParticipantRef{}, false
	}
	if v, ok := kind.(domain.ParticipantKind); ok {
		ref.Kind = v
	} else {
		return domain.ParticipantRef{}, false
	}
	return ref, true
}

// GetParticipantName extracts the authenticated participant's display name
func GetParticipantName(c *gin.Context) string {
	name, exists := c.Get("participantName")
	if !exists {
		return ""
	}
	if str, ok := name.(string); ok {
		return str
	}
	return ""
}
