package http

import (
	"net/http"

	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

// registerContent mounts list/get for everyone and create/update/delete for
// admins on g.
func registerContent[T any, P services.ContentPtr[T]](g *gin.RouterGroup, svc *services.ContentService[T, P], admin []gin.HandlerFunc) {
	if svc == nil {
		return
	}

	g.GET("", func(c *gin.Context) {
		p := page(c)
		items, total, err := svc.List(c.Request.Context(), p)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, http.StatusOK, paged(items, total, p))
	})

	g.GET("/:id", func(c *gin.Context) {
		v, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, http.StatusOK, v)
	})

	g.POST("", append(admin, func(c *gin.Context) {
		v := new(T)
		if err := c.ShouldBindJSON(v); err != nil {
			bindError(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), v)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, http.StatusCreated, created)
	})...)

	g.PUT("/:id", append(admin, func(c *gin.Context) {
		v := new(T)
		if err := c.ShouldBindJSON(v); err != nil {
			bindError(c, err)
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), v)
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, http.StatusOK, updated)
	})...)

	g.DELETE("/:id", append(admin, func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
	})...)
}
