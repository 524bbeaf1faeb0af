package http

import (
	"net/http"
	"strconv"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListProducts(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.Query("featured"))
	f := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Featured: featured,
		Page:     page(c),
	}
	items, total, err := h.svc.Products.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, paged(items, total, f.Page))
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.svc.Products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.svc.Products.Create(c.Request.Context(), &p)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		bindError(c, err)
		return
	}
	updated, err := h.svc.Products.Update(c.Request.Context(), c.Param("slug"), &p)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.svc.Products.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": c.Param("slug")})
}

func (h *Handler) QuoteProduct(c *gin.Context) {
	var req services.LineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	b, err := h.svc.Products.Quote(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, b)
}

func (h *Handler) ListReviews(c *gin.Context) {
	reviews, err := h.svc.Reviews.List(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, reviews)
}

func (h *Handler) CreateReview(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	r, sum, err := h.svc.Reviews.Create(c.Request.Context(), c.Param("slug"), actor(c).UserID, in)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, ReviewResponse{Review: r, Rating: sum.Average, NumReviews: sum.Count})
}

func (h *Handler) ListCategories(c *gin.Context) {
	cats, err := h.svc.Categories.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.svc.Categories.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var cat domain.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		bindError(c, err)
		return
	}
	created, err := h.svc.Categories.Create(c.Request.Context(), &cat)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusCreated, created)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var cat domain.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		bindError(c, err)
		return
	}
	updated, err := h.svc.Categories.Update(c.Request.Context(), c.Param("slug"), &cat)
	if err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, updated)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.svc.Categories.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		writeError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"deleted": c.Param("slug")})
}
