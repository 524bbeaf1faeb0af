package services

import (
	"context"
	"errors"
	"log"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"
)

type WishlistService struct {
	users    repository.UserRepository
	products repository.ProductRepository
}

func NewWishlistService(users repository.UserRepository, products repository.ProductRepository) *WishlistService {
	return &WishlistService{users: users, products: products}
}

// List returns the wished-for products that still exist.
func (s *WishlistService) List(ctx context.Context, userID string) ([]domain.Product, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(u.Wishlist))
	for _, id := range u.Wishlist {
		p, err := s.products.FindByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			log.Printf("wishlist of %s references missing product %s", userID, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID string) ([]string, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range u.Wishlist {
		if id == productID {
			return u.Wishlist, nil
		}
	}
	ids := append(u.Wishlist, productID)
	if err := s.users.UpdateWishlist(ctx, userID, ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID string) ([]string, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(u.Wishlist))
	for _, id := range u.Wishlist {
		if id != productID {
			ids = append(ids, id)
		}
	}
	if len(ids) == len(u.Wishlist) {
		return ids, nil
	}
	if err := s.users.UpdateWishlist(ctx, userID, ids); err != nil {
		return nil, err
	}
	return ids, nil
}
