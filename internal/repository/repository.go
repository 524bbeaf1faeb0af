package repository

import (
	"context"

	"storefront-service/internal/domain"
)

type Page struct {
	Page  int
	Limit int
}

func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

type ProductFilter struct {
	Category string
	Search   string
	Featured bool
	Page
}

type OrderFilter struct {
	UserID string
	Status domain.OrderStatus
	Page
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context, f ProductFilter) ([]domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	// UpdateStock writes back the stock counters and the variant tree only.
	UpdateStock(ctx context.Context, p *domain.Product) error
	UpdateRating(ctx context.Context, id string, s domain.RatingSummary) error
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Save(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, int64, error)
	Update(ctx context.Context, o *domain.Order) error
}

type SaleRepository interface {
	Create(ctx context.Context, s *domain.Sale) error
	FindByID(ctx context.Context, id string) (*domain.Sale, error)
	// Active returns live sales, most recently created first.
	Active(ctx context.Context) ([]domain.Sale, error)
	Update(ctx context.Context, s *domain.Sale) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByProductAndUser(ctx context.Context, productID, userID string) (*domain.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	Summary(ctx context.Context, productID string) (domain.RatingSummary, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdateWishlist(ctx context.Context, id string, productIDs []string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, r *domain.PasswordReset) error
	FindByTokenHash(ctx context.Context, hash string) (*domain.PasswordReset, error)
	MarkUsed(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
}

// ContentRepository stores the flat CMS records (blogs, projects,
// testimonials) keyed by id, newest first.
type ContentRepository[T any] interface {
	Create(ctx context.Context, v *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context, p Page) ([]T, int64, error)
	Update(ctx context.Context, id string, v *T) error
	Delete(ctx context.Context, id string) error
}

// Store bundles every repository of one backend.
type Store struct {
	Products     ProductRepository
	Orders       OrderRepository
	Sales        SaleRepository
	Reviews      ReviewRepository
	Users        UserRepository
	Resets       PasswordResetRepository
	Categories   CategoryRepository
	Blogs        ContentRepository[domain.Blog]
	Projects     ContentRepository[domain.Project]
	Testimonials ContentRepository[domain.Testimonial]
	Close        func(ctx context.Context) error
}
