package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/mocks"
	"storefront-service/internal/services"
	"storefront-service/internal/stock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	router    *gin.Engine
	tokens    *auth.Tokens
	orders    *mocks.MockOrderRepository
	products  *mocks.MockProductRepository
	sales     *mocks.MockSaleRepository
	users     *mocks.MockUserRepository
	publisher *mocks.MockPublisher
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		tokens:    auth.NewTokens("handler-secret", time.Hour),
		orders:    new(mocks.MockOrderRepository),
		products:  new(mocks.MockProductRepository),
		sales:     new(mocks.MockSaleRepository),
		users:     new(mocks.MockUserRepository),
		publisher: new(mocks.MockPublisher),
	}
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	saleSvc := services.NewSaleService(f.sales, cache.Nop{}, time.Minute)
	productSvc := services.NewProductService(f.products, saleSvc, cache.Nop{}, time.Minute)
	sm := stock.NewManager(f.products, productSvc.Invalidate)
	svc := Services{
		Orders:     services.NewOrderService(f.orders, f.products, saleSvc, sm, f.publisher, nil),
		Products:   productSvc,
		Sales:      saleSvc,
		Reviews:    services.NewReviewService(new(mocks.MockReviewRepository), f.products, f.users, nil),
		Auth:       services.NewAuthService(f.users, new(mocks.MockPasswordResetRepository), f.tokens, f.publisher, time.Hour),
		Wishlist:   services.NewWishlistService(f.users, f.products),
		Categories: services.NewCategoryService(new(mocks.MockCategoryRepository)),
		Blogs:      services.NewContentService[domain.Blog](new(mocks.MockContentRepository[domain.Blog])),
	}

	f.router = gin.New()
	NewHandler(svc, f.tokens, time.Second).RegisterRoutes(f.router)
	return f
}

func (f *fixture) token(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	tok, err := f.tokens.Issue(&domain.User{ID: id, Role: role})
	require.NoError(t, err)
	return tok
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestHealthz(t *testing.T) {
	f := setup(t)
	w, env := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "not found"},
		{"timeout", domain.ErrTimeout, http.StatusGatewayTimeout, "DB timeout"},
		{"internal is masked", errors.New("dial tcp 10.0.0.3:3306: refused"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.products.On("FindBySlug", mock.Anything, "lamp").Return(nil, tt.err)

			w, env := f.do(t, http.MethodGet, "/api/products/lamp", "", nil)
			assert.Equal(t, tt.code, w.Code)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, tt.message)
			assert.NotContains(t, env.Error, "10.0.0.3")
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	order := func() *domain.Order {
		return &domain.Order{ID: "o1", OrderID: "ORD-1", UserID: "u1", Status: domain.StatusOrdered}
	}

	t.Run("requires a token", func(t *testing.T) {
		f := setup(t)
		w, env := f.do(t, http.MethodPut, "/api/orders/o1/status", "", StatusRequest{Status: "shipped"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, env.Success)
	})

	t.Run("requires an admin", func(t *testing.T) {
		f := setup(t)
		w, _ := f.do(t, http.MethodPut, "/api/orders/o1/status", f.token(t, "u1", domain.RoleUser), StatusRequest{Status: "shipped"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		f.orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("status from body", func(t *testing.T) {
		f := setup(t)
		o := order()
		f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)
		f.orders.On("Update", mock.Anything, o).Return(nil)

		w, env := f.do(t, http.MethodPut, "/api/orders/o1/status", f.token(t, "a1", domain.RoleAdmin), StatusRequest{Status: "delivered"})
		require.Equal(t, http.StatusOK, w.Code)
		data := env.Data.(map[string]any)
		assert.Equal(t, "delivered", data["status"])
		assert.Equal(t, true, data["isConfirmed"])
		assert.Equal(t, true, data["isShipped"])
		assert.Equal(t, true, data["isDelivered"])
	})

	t.Run("status from query", func(t *testing.T) {
		f := setup(t)
		o := order()
		f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)
		f.orders.On("Update", mock.Anything, o).Return(nil)

		w, _ := f.do(t, http.MethodPut, "/api/orders/o1/status?status=confirmed", f.token(t, "a1", domain.RoleAdmin), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, o.IsConfirmed)
	})

	t.Run("unknown status", func(t *testing.T) {
		f := setup(t)
		w, _ := f.do(t, http.MethodPut, "/api/orders/o1/status", f.token(t, "a1", domain.RoleAdmin), StatusRequest{Status: "lost"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("owner cancels and gets the stock report", func(t *testing.T) {
		f := setup(t)
		p := &domain.Product{ID: "p1", Slug: "lamp", Stock: 1}
		o := &domain.Order{ID: "o1", OrderID: "ORD-1", UserID: "u1", Status: domain.StatusConfirmed, IsConfirmed: true,
			Items: []domain.OrderItem{{ProductID: "p1", Name: "Lamp", Quantity: 2}}}
		f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)
		f.orders.On("Update", mock.Anything, o).Return(nil)
		f.products.On("FindByID", mock.Anything, "p1").Return(p, nil)
		f.products.On("UpdateStock", mock.Anything, p).Return(nil)

		w, env := f.do(t, http.MethodPut, "/api/orders/o1/cancel", f.token(t, "u1", domain.RoleUser), CancelRequest{CancellationReason: "wrong size"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.True(t, env.Success)
		assert.Equal(t, 3, p.Stock)

		data := env.Data.(map[string]any)
		assert.Equal(t, true, data["order"].(map[string]any)["isCancelled"])
		assert.Equal(t, "wrong size", data["order"].(map[string]any)["cancellationReason"])
		assert.Equal(t, float64(1), data["stock"].(map[string]any)["restored"])
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		f := setup(t)
		at := time.Now()
		o := &domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusCancelled, IsCancelled: true, CancelledAt: &at}
		f.orders.On("FindByID", mock.Anything, "o1").Return(o, nil)

		w, env := f.do(t, http.MethodPut, "/api/orders/o1/cancel", f.token(t, "u1", domain.RoleUser), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, env.Error, "cancelled")
		assert.Equal(t, at, *o.CancelledAt)
	})

	t.Run("strangers are forbidden", func(t *testing.T) {
		f := setup(t)
		f.orders.On("FindByID", mock.Anything, "o1").Return(&domain.Order{ID: "o1", UserID: "u1", Status: domain.StatusOrdered}, nil)

		w, _ := f.do(t, http.MethodPut, "/api/orders/o1/cancel", f.token(t, "u2", domain.RoleUser), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestSaleEndpoints(t *testing.T) {
	live := domain.Sale{ID: "s1", Name: "Spring", DiscountPercent: 10, Active: true, ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("no sale returns null data", func(t *testing.T) {
		f := setup(t)
		f.sales.On("Active", mock.Anything).Return([]domain.Sale{}, nil)
		w, env := f.do(t, http.MethodGet, "/api/sale", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		assert.Nil(t, env.Data)
		assert.JSONEq(t, `{"success":true,"data":null}`, w.Body.String())
	})

	t.Run("mode=all lists every live sale", func(t *testing.T) {
		f := setup(t)
		f.sales.On("Active", mock.Anything).Return([]domain.Sale{live, live}, nil)
		w, env := f.do(t, http.MethodGet, "/api/sale?mode=all", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, env.Data, 2)
	})

	t.Run("discount above the cap is rejected", func(t *testing.T) {
		f := setup(t)
		w, _ := f.do(t, http.MethodPost, "/api/sale", f.token(t, "a1", domain.RoleAdmin), SaleRequest{
			Name: "Huge", DiscountPercent: 99, ExpiresAt: time.Now().Add(time.Hour),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.sales.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("update without id", func(t *testing.T) {
		f := setup(t)
		w, _ := f.do(t, http.MethodPut, "/api/sale", f.token(t, "a1", domain.RoleAdmin), SaleRequest{Name: "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSignUpRejectsMalformedBody(t *testing.T) {
	f := setup(t)
	w, env := f.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "a@b.co"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "invalid request")
}
