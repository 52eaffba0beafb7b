package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"xaty/auth"
	"xaty/domain"
	"xaty/repositories"
)

const actorKey = "actor"

// RequireAuth validates the Bearer token and loads the account fresh from
// storage, so staff and display-name changes take effect on the next request.
func RequireAuth(secret []byte, users repositories.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveActor(c, secret, users)
		if !ok || !actor.IsAuthenticated {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Cal iniciar sessió",
			})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// OptionalAuth resolves the actor when a token is present and falls back to
// the anonymous identity otherwise. Used by the polling read endpoint, which
// is open but still tailors can_delete to the viewer.
func OptionalAuth(secret []byte, users repositories.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := resolveActor(c, secret, users); ok {
			c.Set(actorKey, actor)
		} else {
			c.Set(actorKey, domain.Anonymous)
		}
		c.Next()
	}
}

func resolveActor(c *gin.Context, secret []byte, users repositories.IUserRepository) (domain.Actor, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return domain.Anonymous, false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return domain.Anonymous, false
	}

	claims, err := auth.ValidateToken(secret, parts[1])
	if err != nil {
		return domain.Anonymous, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Anonymous, false
	}

	user, err := users.GetByID(userID)
	if err != nil {
		return domain.Anonymous, false
	}
	return user.Actor(), true
}

// CurrentActor returns the identity attached by the auth middleware.
func CurrentActor(c *gin.Context) domain.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(domain.Actor); ok {
			return actor
		}
	}
	return domain.Anonymous
}
