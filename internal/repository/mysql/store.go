package mysql

import (
	"context"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"gorm.io/gorm"
)

// NewStore wires every gorm-backed repository onto db.
func NewStore(db *gorm.DB) *repository.Store {
	return &repository.Store{
		Products:     NewProductRepository(db),
		Orders:       NewOrderRepository(db),
		Sales:        NewSaleRepository(db),
		Reviews:      NewReviewRepository(db),
		Users:        NewUserRepository(db),
		Resets:       NewPasswordResetRepository(db),
		Categories:   NewCategoryRepository(db),
		Blogs:        NewContentRepository[domain.Blog](db),
		Projects:     NewContentRepository[domain.Project](db),
		Testimonials: NewContentRepository[domain.Testimonial](db),
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
