package services

import (
	"context"
	"errors"
	"log"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/pricing"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// PricedProduct is a catalog product together with the price it currently
// sells at.
type PricedProduct struct {
	domain.Product
	SalePrice       int64  `json:"salePrice"`
	DiscountPercent int    `json:"discountPercent"`
	SaleID          string `json:"saleId,omitempty"`
}

type AddOnRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// LineRequest describes one cart line as the client sends it. Option prices
// are always taken from the catalog, not from the request.
type LineRequest struct {
	ProductID string             `json:"product"`
	Quantity  int                `json:"quantity"`
	Variants  []domain.Selection `json:"variants"`
	AddOns    []AddOnRequest     `json:"addOns"`
}

type ProductService struct {
	repo  repository.ProductRepository
	sales *SaleService
	cache cache.Cache
	ttl   time.Duration
	group singleflight.Group
	now   func() time.Time
}

func NewProductService(repo repository.ProductRepository, sales *SaleService, c cache.Cache, ttl time.Duration) *ProductService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ProductService{repo: repo, sales: sales, cache: c, ttl: ttl, now: time.Now}
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]PricedProduct, int64, error) {
	products, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	sales := s.liveSales(ctx)
	now := s.now()
	out := make([]PricedProduct, 0, len(products))
	for i := range products {
		out = append(out, price(&products[i], saleFor(sales, &products[i], now)))
	}
	return out, total, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*PricedProduct, error) {
	p, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	priced := price(p, saleFor(s.liveSales(ctx), p, s.now()))
	return &priced, nil
}

// load reads a product through the cache. Concurrent misses for the same
// slug share one repository call.
func (s *ProductService) load(ctx context.Context, slug string) (*domain.Product, error) {
	key := cache.ProductKey(slug)
	var cached domain.Product
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("product cache read failed for %s: %v", slug, err)
	}
	if hit {
		return &cached, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		p, err := s.repo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, p, s.ttl); err != nil {
			log.Printf("product cache write failed for %s: %v", slug, err)
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p := *v.(*domain.Product)
	return &p, nil
}

func (s *ProductService) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	if p.Slug == "" {
		p.Slug = domain.Slugify(p.Name)
	} else {
		p.Slug = domain.Slugify(p.Slug)
	}
	if p.Slug == "" {
		return nil, invalid("name must contain letters or digits")
	}
	if err := validateStruct(p); err != nil {
		return nil, err
	}
	now := s.now()
	p.ID = uuid.NewString()
	p.Rating, p.NumReviews = 0, 0
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the editable fields of the product stored under slug.
// Review aggregates are kept.
func (s *ProductService) Update(ctx context.Context, slug string, in *domain.Product) (*domain.Product, error) {
	cur, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	in.ID = cur.ID
	in.Slug = domain.Slugify(in.Slug)
	if in.Slug == "" {
		in.Slug = cur.Slug
	}
	in.Rating, in.NumReviews = cur.Rating, cur.NumReviews
	in.CreatedAt, in.UpdatedAt = cur.CreatedAt, s.now()
	if in.Images == nil {
		in.Images = []string{}
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, in); err != nil {
		return nil, err
	}
	s.forget(ctx, cur.Slug, in.Slug)
	return in, nil
}

func (s *ProductService) Delete(ctx context.Context, slug string) error {
	cur, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, cur.ID); err != nil {
		return err
	}
	s.forget(ctx, cur.Slug)
	return nil
}

// Quote prices a prospective cart line without touching stock.
func (s *ProductService) Quote(ctx context.Context, slug string, req LineRequest) (*pricing.Breakdown, error) {
	p, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	sale := saleFor(s.liveSales(ctx), p, s.now())
	_, b, err := buildLine(p, req, discountOf(sale))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Invalidate drops the cached copy of p; it is the stock manager's change hook.
func (s *ProductService) Invalidate(ctx context.Context, p *domain.Product) {
	s.forget(ctx, p.Slug)
}

func (s *ProductService) forget(ctx context.Context, slugs ...string) {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		keys = append(keys, cache.ProductKey(slug))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("product cache invalidate failed: %v", err)
	}
}

// liveSales never fails the read path: without sales the catalog sells at
// list price.
func (s *ProductService) liveSales(ctx context.Context) []domain.Sale {
	if s.sales == nil {
		return nil
	}
	sales, err := s.sales.ActiveAll(ctx)
	if err != nil {
		log.Printf("loading sales failed, pricing without discount: %v", err)
		return nil
	}
	return sales
}

func price(p *domain.Product, sale *domain.Sale) PricedProduct {
	pct := discountOf(sale)
	out := PricedProduct{
		Product:         *p,
		SalePrice:       pricing.CalculateSalePrice(p.Price, pct),
		DiscountPercent: pricing.ClampDiscount(pct),
	}
	if sale != nil {
		out.SaleID = sale.ID
	}
	return out
}

func discountOf(sale *domain.Sale) int {
	if sale == nil {
		return 0
	}
	return sale.DiscountPercent
}

// buildLine resolves req against the catalog entry p and prices it.
func buildLine(p *domain.Product, req LineRequest, discount int) (domain.OrderItem, pricing.Breakdown, error) {
	if req.Quantity <= 0 {
		return domain.OrderItem{}, pricing.Breakdown{}, invalid("quantity for %s must be at least 1", p.Name)
	}
	selections, err := p.ResolveSelections(req.Variants)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.OrderItem{}, pricing.Breakdown{}, invalid("%s: %v", p.Name, err)
		}
		return domain.OrderItem{}, pricing.Breakdown{}, err
	}

	var addOns []domain.SelectedAddOn
	for _, a := range req.AddOns {
		if a.Quantity <= 0 {
			continue
		}
		known, ok := p.FindAddOn(a.ID)
		if !ok {
			return domain.OrderItem{}, pricing.Breakdown{}, invalid("%s has no add-on %q", p.Name, a.ID)
		}
		addOns = append(addOns, domain.SelectedAddOn{ID: known.ID, Name: known.Name, Price: known.Price, Quantity: a.Quantity})
	}

	b := pricing.Compose(pricing.Quote{
		BasePrice:       p.Price,
		Selections:      selections,
		AddOns:          addOns,
		DiscountPercent: discount,
		Quantity:        req.Quantity,
	})
	item := domain.OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  b.Quantity,
		UnitPrice: b.UnitPrice,
		Variants:  selections,
		AddOns:    addOns,
	}
	if len(p.Images) > 0 {
		item.Image = p.Images[0]
	}
	return item, b, nil
}
