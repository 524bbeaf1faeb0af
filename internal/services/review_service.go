package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
)

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
	users    repository.UserRepository
	cache    cache.Cache
	now      func() time.Time
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository, users repository.UserRepository, c cache.Cache) *ReviewService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ReviewService{reviews: reviews, products: products, users: users, cache: c, now: time.Now}
}

func (s *ReviewService) List(ctx context.Context, slug string) ([]domain.Review, error) {
	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.reviews.ListByProduct(ctx, p.ID)
}

// Create stores the user's review of the product and recomputes the
// product's rating and review count. A user reviews a product once.
func (s *ReviewService) Create(ctx context.Context, slug, userID string, in ReviewInput) (*domain.Review, domain.RatingSummary, error) {
	var none domain.RatingSummary
	p, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, none, err
	}

	_, err = s.reviews.FindByProductAndUser(ctx, p.ID, userID)
	switch {
	case err == nil:
		return nil, none, fmt.Errorf("%w: product already reviewed", domain.ErrConflict)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, none, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, none, err
	}

	now := s.now()
	r := &domain.Review{
		ID:        uuid.NewString(),
		ProductID: p.ID,
		UserID:    userID,
		Name:      u.Name,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validateStruct(r); err != nil {
		return nil, none, err
	}
	if err := s.reviews.Create(ctx, r); err != nil {
		return nil, none, err
	}

	sum, err := s.reviews.Summary(ctx, p.ID)
	if err != nil {
		return nil, none, err
	}
	sum.Average = math.Round(sum.Average*10) / 10
	if err := s.products.UpdateRating(ctx, p.ID, sum); err != nil {
		return nil, none, err
	}
	if err := s.cache.Delete(ctx, cache.ProductKey(p.Slug)); err != nil {
		log.Printf("product cache invalidate failed for %s: %v", p.Slug, err)
	}
	return r, sum, nil
}
