package services

import (
	"context"
	"log"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
)

type SaleInput struct {
	Name            string    `json:"name"`
	Categories      []string  `json:"categories"`
	Products        []string  `json:"products"`
	DiscountPercent int       `json:"discountPercent"`
	ExpiresAt       time.Time `json:"expiresAt"`
	Active          *bool     `json:"active"`
}

type SaleService struct {
	repo  repository.SaleRepository
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewSaleService(repo repository.SaleRepository, c cache.Cache, ttl time.Duration) *SaleService {
	if c == nil {
		c = cache.Nop{}
	}
	return &SaleService{repo: repo, cache: c, ttl: ttl, now: time.Now}
}

// ActiveAll returns every live sale, most recently created first.
func (s *SaleService) ActiveAll(ctx context.Context) ([]domain.Sale, error) {
	var sales []domain.Sale
	hit, err := s.cache.Get(ctx, cache.ActiveSalesKey, &sales)
	if err != nil {
		log.Printf("sale cache read failed: %v", err)
	}
	if !hit {
		sales, err = s.repo.Active(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, cache.ActiveSalesKey, sales, s.ttl); err != nil {
			log.Printf("sale cache write failed: %v", err)
		}
	}

	now := s.now()
	live := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale.Live(now) {
			live = append(live, sale)
		}
	}
	return live, nil
}

// Current returns the most recently created live sale, or nil when none runs.
func (s *SaleService) Current(ctx context.Context) (*domain.Sale, error) {
	sales, err := s.ActiveAll(ctx)
	if err != nil || len(sales) == 0 {
		return nil, err
	}
	return &sales[0], nil
}

// ForProduct picks the sale that prices p. When several sales match, the
// most recently created one wins.
func (s *SaleService) ForProduct(ctx context.Context, p *domain.Product) (*domain.Sale, error) {
	sales, err := s.ActiveAll(ctx)
	if err != nil {
		return nil, err
	}
	return saleFor(sales, p, s.now()), nil
}

func saleFor(sales []domain.Sale, p *domain.Product, now time.Time) *domain.Sale {
	for i := range sales {
		if sales[i].Applies(p, now) {
			return &sales[i]
		}
	}
	return nil
}

func (s *SaleService) Create(ctx context.Context, in SaleInput) (*domain.Sale, error) {
	now := s.now()
	sale := &domain.Sale{
		ID:        uuid.NewString(),
		Active:    true,
		CreatedAt: now,
	}
	if err := s.apply(sale, in, now); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sale, nil
}

func (s *SaleService) Update(ctx context.Context, id string, in SaleInput) (*domain.Sale, error) {
	if id == "" {
		return nil, invalid("sale id is required")
	}
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(sale, in, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return sale, nil
}

func (s *SaleService) apply(sale *domain.Sale, in SaleInput, now time.Time) error {
	sale.Name = in.Name
	sale.Categories = nonNil(in.Categories)
	sale.Products = nonNil(in.Products)
	sale.DiscountPercent = in.DiscountPercent
	sale.ExpiresAt = in.ExpiresAt
	if in.Active != nil {
		sale.Active = *in.Active
	}
	sale.UpdatedAt = now
	if err := validateStruct(sale); err != nil {
		return err
	}
	if sale.Active && !sale.ExpiresAt.After(now) {
		return invalid("expiresAt must be in the future")
	}
	return nil
}

func (s *SaleService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.ActiveSalesKey); err != nil {
		log.Printf("sale cache invalidate failed: %v", err)
	}
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
