package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/authz"
	repo "github.com/revuehub/api/internal/domain/repository"
	"github.com/revuehub/api/pkg/helpers"
	"github.com/revuehub/api/pkg/response"
)

const actorKey = "actor"

// bearerToken extracts the token from the Authorization header.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth validates the Bearer access token and loads the caller's user record.
// It sets the actor and userID in the Gin context on success.
func Auth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			// A token for a deleted user is an auth failure, not a 404.
			status := http.StatusUnauthorized
			if apperr.KindOf(err) != apperr.KindNotFound {
				status = http.StatusInternalServerError
			}
			response.Error[any](c, status, "invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(actorKey, authz.Actor{User: user})
		c.Set("userID", user.ID)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present and proceeds
// anonymously otherwise. Used on routes whose reads are public but whose
// behavior is richer for known callers.
func OptionalAuth(users repo.UserRepository, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			c.Next()
			return
		}
		if user, err := users.GetByID(c.Request.Context(), claims.UserID); err == nil {
			c.Set(actorKey, authz.Actor{User: user})
			c.Set("userID", user.ID)
		}
		c.Next()
	}
}

// ActorFrom returns the resolved actor, or the anonymous actor when the route
// ran without Auth.
func ActorFrom(c *gin.Context) authz.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(authz.Actor); ok {
			return a
		}
	}
	return authz.Anonymous
}
