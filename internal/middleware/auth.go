package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebook/backend/internal/auth"
	"github.com/pageza/recipebook/backend/internal/types"
)

const actorKey = "actor"

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// AuthMiddleware validates the bearer token and attaches the caller as an auth.Actor.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			AbortWithError(c, http.StatusUnauthorized, "missing authorization header", nil)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			AbortWithError(c, http.StatusUnauthorized, "invalid authorization header format", nil)
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			AbortWithError(c, http.StatusUnauthorized, "invalid or expired token", nil)
			return
		}

		SetActor(c, auth.Actor{ID: claims.Username(), Roles: claims.Roles})
		c.Next()
	}
}

// SetActor attaches actor to the request.
func SetActor(c *gin.Context, actor auth.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the authenticated caller, if any.
func ActorFrom(c *gin.Context) (auth.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return auth.Actor{}, false
	}
	actor, ok := v.(auth.Actor)
	return actor, ok
}
