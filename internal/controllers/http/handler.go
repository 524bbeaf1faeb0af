package http

import (
	"net/http"
	"strconv"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Orders       *services.OrderService
	Products     *services.ProductService
	Sales        *services.SaleService
	Reviews      *services.ReviewService
	Auth         *services.AuthService
	Wishlist     *services.WishlistService
	Categories   *services.CategoryService
	Blogs        *services.ContentService[domain.Blog, *domain.Blog]
	Projects     *services.ContentService[domain.Project, *domain.Project]
	Testimonials *services.ContentService[domain.Testimonial, *domain.Testimonial]
}

type Handler struct {
	svc     Services
	tokens  *auth.Tokens
	timeout time.Duration
}

func NewHandler(svc Services, tokens *auth.Tokens, requestTimeout time.Duration) *Handler {
	return &Handler{svc: svc, tokens: tokens, timeout: requestTimeout}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { ok(c, http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api", timeout(h.timeout))
	authed := h.authenticate
	admin := []gin.HandlerFunc{h.authenticate, requireAdmin}

	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.POST("", append(admin, h.CreateProduct)...)
	products.GET("/:slug", h.GetProduct)
	products.PUT("/:slug", append(admin, h.UpdateProduct)...)
	products.DELETE("/:slug", append(admin, h.DeleteProduct)...)
	products.POST("/:slug/quote", h.QuoteProduct)
	products.GET("/:slug/reviews", h.ListReviews)
	products.POST("/:slug/reviews", authed, h.CreateReview)

	categories := api.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", append(admin, h.CreateCategory)...)
	categories.GET("/:slug", h.GetCategory)
	categories.PUT("/:slug", append(admin, h.UpdateCategory)...)
	categories.DELETE("/:slug", append(admin, h.DeleteCategory)...)

	orders := api.Group("/orders", authed)
	orders.POST("", h.Checkout)
	orders.GET("", h.ListOrders)
	orders.GET("/:id", h.GetOrder)
	orders.GET("/:id/status", h.GetOrderStatus)
	orders.PUT("/:id/status", requireAdmin, h.UpdateOrderStatus)
	orders.PUT("/:id/cancel", h.CancelOrder)
	orders.POST("/:id/payment", h.CreatePayment)
	orders.POST("/:id/payment/verify", h.VerifyPayment)

	api.GET("/sale", h.GetSale)
	api.POST("/sale", append(admin, h.CreateSale)...)
	api.PUT("/sale", append(admin, h.UpdateSale)...)

	a := api.Group("/auth")
	a.POST("/signup", h.SignUp)
	a.POST("/signin", h.SignIn)
	a.GET("/me", authed, h.Me)
	a.POST("/password/forgot", h.ForgotPassword)
	a.GET("/password/reset/:token", h.ValidateResetToken)
	a.POST("/password/reset", h.ResetPassword)
	a.PUT("/password", authed, h.ChangePassword)

	wishlist := api.Group("/wishlist", authed)
	wishlist.GET("", h.GetWishlist)
	wishlist.POST("", h.AddToWishlist)
	wishlist.DELETE("/:productId", h.RemoveFromWishlist)

	registerContent(api.Group("/blogs"), h.svc.Blogs, admin)
	registerContent(api.Group("/projects"), h.svc.Projects, admin)
	registerContent(api.Group("/testimonials"), h.svc.Testimonials, admin)
}

// page reads the page and limit query parameters.
func page(c *gin.Context) repository.Page {
	p, _ := strconv.Atoi(c.Query("page"))
	l, _ := strconv.Atoi(c.Query("limit"))
	return repository.Page{Page: p, Limit: l}.Normalize()
}

func paged(items any, total int64, p repository.Page) Paged {
	return Paged{Items: items, Total: total, Page: p.Page, Limit: p.Limit}
}
