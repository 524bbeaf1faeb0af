package infra

import (
	"context"

	"storefront-service/internal/domain"
)

// StoreClientInterface is the part of the storefront API the admin tooling
// calls.
type StoreClientInterface interface {
	ListProducts(ctx context.Context, page, limit int) (*ProductPage, error)
	GetProduct(ctx context.Context, slug string) (*ProductInfo, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error)
	ActiveSales(ctx context.Context) ([]domain.Sale, error)
	CreateSale(ctx context.Context, s SaleSpec) (*domain.Sale, error)
	ListOrders(ctx context.Context, page, limit int) (*OrderPage, error)
}

var _ StoreClientInterface = (*StoreClient)(nil)
