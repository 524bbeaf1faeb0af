package http

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// authenticate requires a valid bearer token and stores the caller on the
// context.
func (h *Handler) authenticate(c *gin.Context) {
	token, err := auth.BearerToken(c.GetHeader("Authorization"))
	if err != nil {
		writeError(c, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err))
		return
	}
	claims, err := h.tokens.Parse(token)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(actorKey, services.Actor{UserID: claims.UserID, Role: claims.Role})
	c.Next()
}

func requireAdmin(c *gin.Context) {
	if !actor(c).Admin() {
		writeError(c, fmt.Errorf("%w: admin only", domain.ErrForbidden))
		return
	}
	c.Next()
}

func actor(c *gin.Context) services.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(services.Actor); ok {
			return a
		}
	}
	return services.Actor{}
}

// timeout bounds every request's context; repositories surface the deadline
// as a DB timeout.
func timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
