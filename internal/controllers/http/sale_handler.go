package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSale returns the most recent live sale (null when none runs), or every
// live sale with ?mode=all.
func (h *Handler) GetSale(c *gin.Context) {
	if c.Query("mode") == "all" {
		sales, err := h.svc.Sales.ActiveAll(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		ok(c, http.StatusOK, sales)
		return
	}
	sale, err := h.svc.Sales.Current(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if sale == nil {
		okNull(c, http.StatusOK)
		return
	}
	ok(c, http.StatusOK, sale)
}

func (h *Handler) CreateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sale, err := h.svc.Sales.Create(c.Request.Context(), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, sale)
}

func (h *Handler) UpdateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	id := req.ID
	if id == "" {
		id = c.Query("id")
	}
	sale, err := h.svc.Sales.Update(c.Request.Context(), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, sale)
}
