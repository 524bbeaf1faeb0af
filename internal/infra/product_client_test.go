package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/api/products/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"success":false,"error":"not found"}`))
		case r.URL.Path == "/api/products/lamp":
			w.Write([]byte(`{"success":true,"data":{"id":"p1","slug":"lamp","name":"Lamp","price":1000,"salePrice":900,"discountPercent":10}}`))
		case r.URL.Path == "/api/orders":
			assert.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
			assert.Equal(t, "true", r.URL.Query().Get("all"))
			assert.Equal(t, "50", r.URL.Query().Get("limit"))
			w.Write([]byte(`{"success":true,"data":{"items":[{"id":"o1","orderId":"ORD-1","status":"shipped"}],"total":1,"page":1,"limit":50}}`))
		case r.URL.Path == "/api/sale" && r.Method == http.MethodPost:
			var body SaleSpec
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			if body.DiscountPercent > 95 {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"success":false,"error":"validation failed"}`))
				return
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"id":"s1","name":"Spring","discountPercent":10}}`))
		default:
			w.WriteHeader(http.StatusTeapot)
			w.Write([]byte(`{"success":false,"error":"unexpected"}`))
		}
	}))
	defer srv.Close()

	c := NewStoreClient(srv.URL+"/", "admin-token", 2*time.Second)
	ctx := context.Background()

	p, err := c.GetProduct(ctx, "lamp")
	require.NoError(t, err)
	assert.Equal(t, int64(900), p.SalePrice)
	assert.Equal(t, "Lamp", p.Name)

	p, err = c.GetProduct(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, p)

	orders, err := c.ListOrders(ctx, 1, 50)
	require.NoError(t, err)
	require.Len(t, orders.Items, 1)
	assert.Equal(t, domain.StatusShipped, orders.Items[0].Status)

	sale, err := c.CreateSale(ctx, SaleSpec{Name: "Spring", DiscountPercent: 10, ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "s1", sale.ID)

	_, err = c.CreateSale(ctx, SaleSpec{Name: "Huge", DiscountPercent: 99})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = c.ActiveSales(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTeapot, apiErr.Status)
}
