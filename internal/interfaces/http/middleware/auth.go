// Package middleware provides the gin middleware guarding the API:
// bearer-token authentication, role whitelisting and request ids.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/whizdome/promorama-backend/internal/domain/shared"
	"github.com/whizdome/promorama-backend/internal/infrastructure/auth"
	"github.com/whizdome/promorama-backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// Context keys set by the auth middleware
const (
	ClaimsKey = "auth_claims"
	ActorKey  = "auth_actor"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// Authenticate validates the bearer token and stores the claims and resolved
// actor in the gin context.
func Authenticate(tokens *auth.JWTService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Authentication required")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			if err == auth.ErrExpiredToken {
				abortUnauthorized(c, "Token has expired")
				return
			}
			logger.Warn("token rejected",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
			)
			abortUnauthorized(c, "Invalid token")
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// RequireRoles allows only the listed actor kinds through. It must run after
// Authenticate.
func RequireRoles(roles ...shared.ActorKind) gin.HandlerFunc {
	allowed := make(map[shared.ActorKind]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if _, ok := allowed[actor.Kind]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewFailResponse("You do not have permission to perform this action"))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the validated claims from the gin context
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// GetActor retrieves the authenticated actor from the gin context
func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewFailResponse(message))
}
