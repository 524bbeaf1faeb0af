package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-service/internal/domain"
)

// ProductInfo is a catalog product as the API lists it, with its current
// selling price.
type ProductInfo struct {
	domain.Product
	SalePrice       int64  `json:"salePrice"`
	DiscountPercent int    `json:"discountPercent"`
	SaleID          string `json:"saleId,omitempty"`
}

type ProductPage struct {
	Items []ProductInfo `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type OrderPage struct {
	Items []domain.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type SaleSpec struct {
	Name            string    `json:"name"`
	Categories      []string  `json:"categories,omitempty"`
	Products        []string  `json:"products,omitempty"`
	DiscountPercent int       `json:"discountPercent"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// APIError is a non-2xx answer from the storefront API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api returned status %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type StoreClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewStoreClient(baseURL, token string, timeout time.Duration) *StoreClient {
	return &StoreClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *StoreClient) ListProducts(ctx context.Context, page, limit int) (*ProductPage, error) {
	var out ProductPage
	if err := c.call(ctx, http.MethodGet, "/api/products?"+pageQuery(page, limit).Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct returns nil without error when the slug does not exist.
func (c *StoreClient) GetProduct(ctx context.Context, slug string) (*ProductInfo, error) {
	var out ProductInfo
	err := c.call(ctx, http.MethodGet, "/api/products/"+url.PathEscape(slug), nil, &out)
	if apiErr, ok := err.(*APIError); ok && apiErr.Status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StoreClient) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	var out domain.Product
	if err := c.call(ctx, http.MethodPost, "/api/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StoreClient) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := c.call(ctx, http.MethodPost, "/api/categories", cat, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StoreClient) ActiveSales(ctx context.Context) ([]domain.Sale, error) {
	var out []domain.Sale
	if err := c.call(ctx, http.MethodGet, "/api/sale?mode=all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StoreClient) CreateSale(ctx context.Context, s SaleSpec) (*domain.Sale, error) {
	var out domain.Sale
	if err := c.call(ctx, http.MethodPost, "/api/sale", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListOrders lists every order; the token must belong to an admin.
func (c *StoreClient) ListOrders(ctx context.Context, page, limit int) (*OrderPage, error) {
	q := pageQuery(page, limit)
	q.Set("all", "true")
	var out OrderPage
	if err := c.call(ctx, http.MethodGet, "/api/orders?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *StoreClient) call(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	return q
}
